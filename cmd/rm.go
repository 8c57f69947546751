package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove debts from the register and reconcile the ledgers" }
func (*rmCmd) Usage() string {
	return `rm <id>...

  Removes debts from the register. The ledgers are reconciled: every row of a
  removed debt is cleared, leaving a blank slot in place.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one debt id is required")
		return subcommands.ExitUsageError
	}

	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, id := range f.Args() {
		if !e.Register.Remove(id) {
			fmt.Fprintf(os.Stderr, "no debt %q in the register\n", id)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("Removed debt %q.\n", id)
	}

	if err := e.HandleEdit(debtbook.BulkEdit()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveEngine(e); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return status
}
