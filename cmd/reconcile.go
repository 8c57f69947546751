package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
)

type reconcileCmd struct{}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "clear ledger rows whose debt left the register" }
func (*reconcileCmd) Usage() string {
	return `reconcile

  Sweeps every provisioned year and clears the rows whose id is no longer in
  the register. Cleared rows stay in place as blank slots. Idempotent.
`
}

func (*reconcileCmd) SetFlags(*flag.FlagSet) {}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := e.HandleEdit(debtbook.BulkEdit()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedgers(e.Store, e.Eval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Ledgers reconciled.")
	return subcommands.ExitSuccess
}
