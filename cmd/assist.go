package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
	"github.com/vbail/debtbook/agent"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `assist [<question>]

  Starts an interactive session with the AI assistant. The assistant reads
  the debt book through the same reports as the other commands, and can
  search the web for rates and lending news. Requires Gemini credentials in
  the environment.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	books := agent.Books{
		Load: func() (*debtbook.Register, *debtbook.LedgerStore, error) {
			reg, err := DecodeRegister()
			if err != nil {
				return nil, nil, err
			}
			store, err := DecodeLedgers()
			if err != nil {
				return nil, nil, err
			}
			return reg, store, nil
		},
		Currency: *defaultCurrency,
	}

	bookkeeper := agent.NewBookkeeper(books)
	analyst := agent.NewAnalyst()
	a := agent.New(os.Stdout, os.Stdin, bookkeeper, analyst)

	if err := a.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
