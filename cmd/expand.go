package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
)

type expandCmd struct{}

func (*expandCmd) Name() string     { return "expand" }
func (*expandCmd) Synopsis() string { return "re-expand debts into the provisioned ledgers" }
func (*expandCmd) Usage() string {
	return `expand [<id>...]

  Re-expands complete debts into every provisioned year of their life, then
  reconciles the ledgers. Without arguments every complete debt is expanded;
  this is how records landed by 'dbk import' reach the ledgers.
`
}

func (*expandCmd) SetFlags(*flag.FlagSet) {}

func (c *expandCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var expandErr error
	if f.NArg() == 0 {
		expandErr = e.Sync()
	} else {
		var errs []error
		for _, id := range f.Args() {
			row, ok := e.Register.Row(id)
			if !ok {
				errs = append(errs, fmt.Errorf("no debt %q in the register", id))
				continue
			}
			rec, _ := e.Register.At(row)
			if !rec.Complete() {
				errs = append(errs, fmt.Errorf("debt %q is incomplete", id))
				continue
			}
			if err := e.HandleEdit(debtbook.RowEdit(row)); err != nil {
				errs = append(errs, fmt.Errorf("expanding %q: %w", id, err))
			}
		}
		expandErr = errors.Join(errs...)
	}

	if err := SaveLedgers(e.Store, e.Eval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if expandErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", expandErr)
		return subcommands.ExitFailure
	}

	fmt.Println("Ledgers expanded.")
	return subcommands.ExitSuccess
}
