// dbk is the debt book manager command line: a register of loans expanded
// into per-year ledgers.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/vbail/debtbook/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()

	// Unknown subcommands fall through to dbk-<name> extensions in PATH.
	if args := flag.Args(); len(args) > 0 && !known(args[0]) {
		if found, code := cmd.RunExtension(args[0], args[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func known(name string) bool {
	for _, c := range cmd.Commands {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// completion wires shell completion; it exits the process when invoked by
// the completion machinery of the shell.
func completion() {
	sub := func(flags ...string) *complete.Command {
		c := &complete.Command{Flags: map[string]complete.Predictor{}}
		for _, f := range flags {
			c.Flags[f] = predict.Something
		}
		return c
	}

	cmp := &complete.Command{
		Sub: map[string]*complete.Command{
			"add":       sub("id", "principal", "rate", "term", "year"),
			"rm":        sub(),
			"list":      sub(),
			"ledger":    sub("year"),
			"schedule":  sub(),
			"provision": sub("year", "to", "capacity"),
			"expand":    sub(),
			"reconcile": sub(),
			"fmt":       sub(),
			"import":    sub("records", "id", "principal", "rate", "term", "year"),
			"topic":     sub(),
			"assist":    sub(),
		},
		Flags: map[string]complete.Predictor{
			"register": predict.Files("*.jsonl"),
			"ledgers":  predict.Files("*.jsonl"),
			"currency": predict.Nothing,
		},
	}
	cmp.Complete("dbk")
}
