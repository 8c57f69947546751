package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook/renderer"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the debt register" }
func (*listCmd) Usage() string {
	return `list

  Displays every debt on record, complete or not.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := DecodeRegister()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderRegister(renderer.NewRegisterView(reg, *defaultCurrency)))
	return subcommands.ExitSuccess
}
