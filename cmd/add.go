package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/vbail/debtbook"
)

type addCmd struct {
	id        string
	principal string
	rate      string
	term      int
	year      int
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a debt in the register and expand it" }
func (*addCmd) Usage() string {
	return `add -id <id> -principal <amount> -rate <rate> -term <years> -year <year>

  Records a loan in the debt register, or updates the one with the same id.
  Complete records are expanded on the spot into every provisioned year of
  their life; incomplete records are kept but wait for completion.

Usage Examples:
# A 1000 loan at 5% over 3 years, taken in 2024.
$ dbk add -id=D1 -principal=1000 -rate=0.05 -term=3 -year=2024

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "identifier of the debt, unique in the register")
	f.StringVar(&c.principal, "principal", "", "amount borrowed")
	f.StringVar(&c.rate, "rate", "", "yearly interest rate, e.g. 0.05 for 5%")
	f.IntVar(&c.term, "term", 0, "life of the loan in years")
	f.IntVar(&c.year, "year", 0, "calendar year the loan was taken")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "-id is required")
		return subcommands.ExitUsageError
	}

	var principal, rate decimal.Decimal
	var err error
	if c.principal != "" {
		principal, err = decimal.NewFromString(c.principal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -principal %q: %v\n", c.principal, err)
			return subcommands.ExitUsageError
		}
	}
	if c.rate != "" {
		rate, err = decimal.NewFromString(c.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -rate %q: %v\n", c.rate, err)
			return subcommands.ExitUsageError
		}
	}

	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rec := debtbook.NewLoanRecord(c.id, principal, rate, c.term, c.year)
	row := e.Register.AppendOrUpdate(rec)
	editErr := e.HandleEdit(debtbook.RowEdit(row))

	// Save even when expansion failed: rows already written keep their
	// last-written state, and the register must not lose the record.
	if err := SaveEngine(e); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if editErr != nil {
		fmt.Fprintf(os.Stderr, "Error expanding %q: %v\n", c.id, editErr)
		return subcommands.ExitFailure
	}

	if !rec.Complete() {
		fmt.Printf("Recorded incomplete debt %q; complete it later to expand it.\n", c.id)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Recorded debt %q, expanded over %d-%d.\n", c.id, c.year, rec.ExpireYear())
	return subcommands.ExitSuccess
}
