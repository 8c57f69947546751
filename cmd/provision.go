package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
)

type provisionCmd struct {
	year     int
	to       int
	capacity int
}

func (*provisionCmd) Name() string     { return "provision" }
func (*provisionCmd) Synopsis() string { return "provision ledgers for a range of years" }
func (*provisionCmd) Usage() string {
	return `provision -year <year> [-to <year>] [-capacity <rows>]

  Creates the ledger of each year in the range that does not exist yet, then
  expands every complete debt into the new years. Existing ledgers are left
  untouched.

Usage Examples:
# Provision three years at once.
$ dbk provision -year=2024 -to=2026

`
}

func (c *provisionCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "first year to provision")
	f.IntVar(&c.to, "to", 0, "last year to provision (defaults to -year)")
	f.IntVar(&c.capacity, "capacity", debtbook.DefaultCapacity, "debt row capacity of the new ledgers")
}

func (c *provisionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.year == 0 {
		fmt.Fprintln(os.Stderr, "-year is required")
		return subcommands.ExitUsageError
	}
	if c.to == 0 {
		c.to = c.year
	}
	if c.to < c.year {
		fmt.Fprintln(os.Stderr, "-to must not precede -year")
		return subcommands.ExitUsageError
	}

	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for y := c.year; y <= c.to; y++ {
		e.Store.Provision(y, c.capacity)
	}
	syncErr := e.Sync()

	if err := SaveLedgers(e.Store, e.Eval); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if syncErr != nil {
		fmt.Fprintf(os.Stderr, "Error expanding into the new years: %v\n", syncErr)
		return subcommands.ExitFailure
	}

	fmt.Printf("Provisioned ledgers %d-%d.\n", c.year, c.to)
	return subcommands.ExitSuccess
}
