package agent

import (
	"context"
	"fmt"

	"github.com/vbail/debtbook"
	"github.com/vbail/debtbook/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Books gives the experts read access to the user's files. Load is a
// callback so the CLI keeps ownership of paths and decoding; every call
// rereads the files, the assistant always sees the latest state.
type Books struct {
	Load     func() (*debtbook.Register, *debtbook.LedgerStore, error)
	Currency string
}

// newFacilitator creates the expert that owns the conversation and routes
// questions to the others.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to understand his debts: what he owes, what each year costs him,
			and when each loan ends. Check the debt register first so you know which debts
			exist before answering.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the expert wired to Google Search, for rate and market
// context the ledgers cannot answer.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a credit market analyst,
		well aware of lending institutions, reference interest rates and refinancing conditions.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in consumer credit and lending markets. You can search and find
			anything related to banks, interest rates, refinancing and debt regulation.
			You leverage Google Search to ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewBookkeeper creates the expert in charge of reading the user's debt
// register and year ledgers, through the same renderers the CLI uses.
func NewBookkeeper(books Books) *Expert {
	lib := []Function{listDebts(books), yearLedger(books), debtSchedule(books)}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's debt register and year ledgers.
		He can list the recorded debts, show the ledger of any provisioned year, and lay out the
		full amortization schedule of a single debt.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's debts.
				You know how to use the Tools to extract relevant information about the user's loans.
				You are part of a team of experts, yours is everything recorded in the user's files.
				They might ask approximative questions, pardon their language and figure out what they meant.

				Use the available tools to get information about the user's debts
				  - the register of all recorded loans
				  - the ledger of a given year
				  - the amortization schedule of a single loan
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// listDebts exposes the debt register as a tool.
func listDebts(books Books) Function {
	const name = "list_debts"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `list_debts lists every loan recorded in the user's debt register:
			id, principal, yearly rate, term in years and origin year. Incomplete records are
			flagged as such.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all recorded debts.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			reg, _, err := books.Load()
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.RenderRegister(renderer.NewRegisterView(reg, books.Currency)))
		},
	}
}

// yearLedger exposes one provisioned year of the debt book as a tool.
func yearLedger(books Books) Function {
	const name = "year_ledger"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `year_ledger shows one provisioned year of the debt book: the loans issued
			that year, and the state of every debt through that year (starting balance, payment,
			principal paid, ending balance).`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"year": {
						Type:        genai.TypeInteger,
						Description: "The calendar year of the ledger to show.",
					},
				},
				Required: []string{"year"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report of the year's ledger.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			year, err := intArg(args, "year")
			if err != nil {
				return errorResponse(id, name, err)
			}
			_, store, err := books.Load()
			if err != nil {
				return errorResponse(id, name, err)
			}
			l, ok := store.Year(year)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("no ledger provisioned for %d", year))
			}
			view, err := renderer.NewLedgerView(l, debtbook.Recalc{}, books.Currency)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.RenderLedger(view))
		},
	}
}

// debtSchedule exposes the full amortization of one debt as a tool.
func debtSchedule(books Books) Function {
	const name = "debt_schedule"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: name,
			Description: `debt_schedule lays out the full amortization of a single debt, year by
			year from origin to expiry: starting balance, interest, principal paid, ending
			balance, and whether a ledger is provisioned for the year.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id": {
						Type:        genai.TypeString,
						Description: "The identifier of the debt, as listed by list_debts.",
					},
				},
				Required: []string{"id"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted amortization schedule.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			debtID, err := stringArg(args, "id")
			if err != nil {
				return errorResponse(id, name, err)
			}
			reg, store, err := books.Load()
			if err != nil {
				return errorResponse(id, name, err)
			}
			rec, ok := reg.Get(debtID)
			if !ok {
				return errorResponse(id, name, fmt.Errorf("no debt %q in the register", debtID))
			}
			view, err := renderer.NewScheduleView(rec, store, books.Currency)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, renderer.ScheduleMarkdown(view))
		},
	}
}

// intArg reads an integer argument. The SDK delivers JSON numbers as float64.
func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("argument %q is missing", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("argument %q is not a number as expected but %T", key, v)
	}
	return int(f), nil
}

// stringArg reads a string argument.
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("argument %q is missing", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q is not a string as expected but %T", key, v)
	}
	return s, nil
}
