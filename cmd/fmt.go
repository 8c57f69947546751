package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the register and ledgers files into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `fmt

  Validates and formats the debt book. This command reads the register and
  the ledgers, validates them, and writes them back in a canonical JSONL
  form: one object per line, ordered keys, derived columns settled.

Usage Examples:
# Rewrites both files in-place.
$ dbk fmt

`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load the debt book: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatting register %q...\n", *registerFile)
	if err := SaveRegister(e.Register); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting register: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Formatting ledgers %q...\n", *ledgersFile)
	if err := SaveLedgers(e.Store, e.Eval); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting ledgers: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "✅ Successfully formatted the debt book.\n")
	return subcommands.ExitSuccess
}
