// Package cmd implements the CLI application to manage a debt book.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/vbail/debtbook"
)

// Commands lists the subcommands in display order. A main package registers
// them all and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&rmCmd{},
	&listCmd{},
	&ledgerCmd{},
	&scheduleCmd{},
	&provisionCmd{},
	&expandCmd{},
	&reconcileCmd{},
	&fmtCmd{},
	&importCmd{},
	&topicCmd{},
	&assistCmd{},
}

// Environment fallbacks for the global flags, so scripts can configure the
// tool without repeating flags.
const (
	EnvRegisterFile    = "DBK_REGISTER"
	EnvLedgersFile     = "DBK_LEDGERS"
	EnvDefaultCurrency = "DBK_CURRENCY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var registerFile = flag.String("register", envOr(EnvRegisterFile, "register.jsonl"), "Path to the debt register file (JSONL format)")
var ledgersFile = flag.String("ledgers", envOr(EnvLedgersFile, "ledgers.jsonl"), "Path to the year ledgers file (JSONL format)")
var defaultCurrency = flag.String("currency", envOr(EnvDefaultCurrency, "USD"), "Currency used to display amounts")

// envOr returns the environment value when set, the fallback otherwise.
func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// DecodeRegister loads the master list from the register file. A missing file
// is a valid empty register.
func DecodeRegister() (*debtbook.Register, error) {
	f, err := os.Open(*registerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, register does not exist, starting from an empty one")
		return debtbook.NewRegister(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open register file %q: %w", *registerFile, err)
	}
	defer f.Close()

	reg, err := debtbook.DecodeRegister(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode register file %q: %w", *registerFile, err)
	}
	return reg, nil
}

// DecodeLedgers loads the year ledgers file. A missing file is a valid empty
// store.
func DecodeLedgers() (*debtbook.LedgerStore, error) {
	f, err := os.Open(*ledgersFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledgers do not exist, starting from an empty store")
		return debtbook.NewLedgerStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open ledgers file %q: %w", *ledgersFile, err)
	}
	defer f.Close()

	store, err := debtbook.DecodeLedgers(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledgers file %q: %w", *ledgersFile, err)
	}
	return store, nil
}

// LoadEngine loads both files into an engine wired with the built-in
// evaluator.
func LoadEngine() (*debtbook.Engine, error) {
	reg, err := DecodeRegister()
	if err != nil {
		return nil, err
	}
	store, err := DecodeLedgers()
	if err != nil {
		return nil, err
	}
	return debtbook.NewEngine(reg, store, nil), nil
}

// SaveRegister rewrites the register file in canonical form.
func SaveRegister(reg *debtbook.Register) error {
	f, err := os.Create(*registerFile)
	if err != nil {
		return fmt.Errorf("could not write register file %q: %w", *registerFile, err)
	}
	defer f.Close()
	return debtbook.EncodeRegister(f, reg)
}

// SaveLedgers rewrites the ledgers file in canonical form, settling derived
// columns through the given evaluator.
func SaveLedgers(store *debtbook.LedgerStore, ev debtbook.Evaluator) error {
	f, err := os.Create(*ledgersFile)
	if err != nil {
		return fmt.Errorf("could not write ledgers file %q: %w", *ledgersFile, err)
	}
	defer f.Close()
	return debtbook.EncodeLedgers(f, store, ev)
}

// SaveEngine rewrites both files.
func SaveEngine(e *debtbook.Engine) error {
	if err := SaveRegister(e.Register); err != nil {
		return err
	}
	return SaveLedgers(e.Store, e.Eval)
}
