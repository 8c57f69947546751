package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
)

type importCmd struct {
	records   string
	id        string
	principal string
	rate      string
	term      string
	year      string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import loan records from a JSON export" }
func (*importCmd) Usage() string {
	return `import [-records <path>] [-id <path>] ... <file|url|->

  Imports loan records from a third-party JSON export, merging them into the
  register by id. The flags are jsonpath expressions locating the list of
  records and, relative to each record, its fields. The default mapping
  reads {"loans": [{"id":..., "principal":..., "rate":..., "term":...,
  "year":...}]}.

  Imported records do not reach the ledgers on their own: run 'dbk expand'
  once the import looks right.

Usage Examples:
# Import a bank export with a custom layout.
$ dbk import -records='$.export.items' -id='$.ref' bank.json

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	m := debtbook.DefaultMapping()
	f.StringVar(&c.records, "records", m.Records, "jsonpath to the list of records")
	f.StringVar(&c.id, "id", m.ID, "jsonpath to the record id, relative to a record")
	f.StringVar(&c.principal, "principal", m.Principal, "jsonpath to the principal")
	f.StringVar(&c.rate, "rate", m.Rate, "jsonpath to the yearly rate")
	f.StringVar(&c.term, "term", m.Term, "jsonpath to the term in years")
	f.StringVar(&c.year, "year", m.Year, "jsonpath to the origin year")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one file, url or '-' is required")
		return subcommands.ExitUsageError
	}

	m := debtbook.ImportMapping{
		Records:   c.records,
		ID:        c.id,
		Principal: c.principal,
		Rate:      c.rate,
		Term:      c.term,
		Year:      c.year,
	}

	recs, err := readRecords(f.Arg(0), m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	e, err := LoadEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, rec := range recs {
		e.Register.AppendOrUpdate(rec)
	}
	if err := e.HandleEdit(debtbook.BulkEdit()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveEngine(e); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d records into %q; run 'dbk expand' to project them into the ledgers.\n", len(recs), *registerFile)
	return subcommands.ExitSuccess
}

// readRecords pulls records from a url, a file, or stdin for "-".
func readRecords(source string, m debtbook.ImportMapping) ([]debtbook.LoanRecord, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return debtbook.FetchRecords(source, m)
	}
	if source == "-" {
		return debtbook.ImportRecords(os.Stdin, m)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("could not open import file %q: %w", source, err)
	}
	defer f.Close()
	return debtbook.ImportRecords(f, m)
}
