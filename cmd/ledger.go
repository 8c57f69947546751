package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
	"github.com/vbail/debtbook/renderer"
)

type ledgerCmd struct {
	year int
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "display one year of the debt book" }
func (*ledgerCmd) Usage() string {
	return `ledger -year <year>

  Displays the ledger of a provisioned year: the loans issued that year and
  the state of every debt through that year.
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().Year(), "calendar year to display")
}

func (c *ledgerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := DecodeLedgers()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	l, ok := store.Year(c.year)
	if !ok {
		fmt.Fprintf(os.Stderr, "no ledger provisioned for %d, run 'dbk provision -year=%d' first\n", c.year, c.year)
		return subcommands.ExitFailure
	}

	view, err := renderer.NewLedgerView(l, debtbook.Recalc{}, *defaultCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderLedger(view))
	return subcommands.ExitSuccess
}
