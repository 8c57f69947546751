package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook/renderer"
)

type scheduleCmd struct{}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display the full amortization of one debt" }
func (*scheduleCmd) Usage() string {
	return `schedule <id>

  Displays the amortization of one debt, year by year from origin to expiry,
  and whether each year is provisioned in the ledgers.
`
}

func (*scheduleCmd) SetFlags(*flag.FlagSet) {}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one debt id is required")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	reg, err := DecodeRegister()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := DecodeLedgers()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rec, ok := reg.Get(id)
	if !ok {
		fmt.Fprintf(os.Stderr, "no debt %q in the register\n", id)
		return subcommands.ExitFailure
	}

	view, err := renderer.NewScheduleView(rec, store, *defaultCurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ScheduleMarkdown(view))
	return subcommands.ExitSuccess
}
