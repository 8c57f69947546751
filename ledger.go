package debtbook

import (
	"iter"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// New-issued table geometry (5 columns): one row per debt issued that year.
const (
	IssuedColID = iota
	IssuedColPrincipal
	IssuedColRate
	IssuedColTerm
	IssuedColPayment // derived
	// IssuedCols is the column count of the new-issued table.
	IssuedCols
)

// Existing-debt table geometry (7 columns): one row per debt active that year.
const (
	DebtColID = iota
	DebtColBalance
	DebtColRate
	DebtColRemaining
	DebtColPayment
	DebtColPaid   // derived
	DebtColEnding // derived
	// DebtCols is the column count of the existing-debt table.
	DebtCols
)

// DefaultCapacity is the row capacity a ledger table is provisioned with
// unless the host asks for another one.
const DefaultCapacity = 64

// YearLedger is the derived view of one calendar year: the debts issued that
// year and every debt still carrying a balance through it. Its rows hold no
// identity beyond the debt id they mirror; the engine overwrites and clears
// them freely.
type YearLedger struct {
	Year   int
	Issued *Table
	Debts  *Table
}

// NewYearLedger creates an empty ledger with the given row capacity for both
// of its tables.
func NewYearLedger(year, capacity int) *YearLedger {
	return &YearLedger{
		Year:   year,
		Issued: NewTable(IssuedCols, capacity),
		Debts:  NewTable(DebtCols, capacity),
	}
}

// issuedPayment is the derived payment column of a new-issued row. It stays a
// formula so it follows later edits to the row's inputs.
func issuedPayment() Formula {
	return PaymentFormula{Principal: IssuedColPrincipal, Rate: IssuedColRate, Term: IssuedColTerm}
}

// debtPaid is the derived principal-paid column of an existing-debt row.
func debtPaid() Formula {
	return PrincipalFormula{Rate: DebtColRate, Term: DebtColRemaining, Balance: DebtColBalance}
}

// debtEnding is the derived ending-balance column of an existing-debt row.
func debtEnding() Formula {
	return DifferenceFormula{Minuend: DebtColBalance, Subtrahend: DebtColPaid}
}

// issuedRow builds the five cells of a new-issued row.
func issuedRow(id string, principal, rate decimal.Decimal, term int) []Cell {
	return []Cell{
		Text(id),
		Num(principal),
		Num(rate),
		Num(decimal.NewFromInt(int64(term))),
		Derived(issuedPayment()),
	}
}

// debtRow builds the seven cells of an existing-debt row. The payment is a
// concrete value, computed once per expansion; paid and ending stay formulas.
func debtRow(id string, balance, rate decimal.Decimal, remaining int, payment decimal.Decimal) []Cell {
	return []Cell{
		Text(id),
		Num(balance),
		Num(rate),
		Num(decimal.NewFromInt(int64(remaining))),
		Num(payment),
		Derived(debtPaid()),
		Derived(debtEnding()),
	}
}

// LedgerStore holds every provisioned year ledger. It is an explicit value
// handed to the engine; there is no ambient sheet set. A sparse store is
// expected: years nobody provisioned are simply skipped during expansion.
type LedgerStore struct {
	ledgers map[int]*YearLedger
}

// NewLedgerStore creates an empty store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{ledgers: make(map[int]*YearLedger)}
}

func (s *LedgerStore) Len() int { return len(s.ledgers) }

// Year returns the ledger for a year, if it has been provisioned.
func (s *LedgerStore) Year(year int) (*YearLedger, bool) {
	l, ok := s.ledgers[year]
	return l, ok
}

// Provision creates the ledger for a year, or returns the existing one.
func (s *LedgerStore) Provision(year, capacity int) *YearLedger {
	if l, ok := s.ledgers[year]; ok {
		return l
	}
	l := NewYearLedger(year, capacity)
	s.ledgers[year] = l
	return l
}

// Years yields the provisioned years in ascending order.
func (s *LedgerStore) Years() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, year := range slices.Sorted(maps.Keys(s.ledgers)) {
			if !yield(year) {
				return
			}
		}
	}
}

// Ledgers yields the provisioned ledgers in year order.
func (s *LedgerStore) Ledgers() iter.Seq2[int, *YearLedger] {
	return func(yield func(int, *YearLedger) bool) {
		for year := range s.Years() {
			if !yield(year, s.ledgers[year]) {
				return
			}
		}
	}
}
