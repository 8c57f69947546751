package debtbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Formula is a derived-column declaration. A formula references sibling cells
// of its own row by column index only, so a row stays self-contained and can
// be re-evaluated after any edit to its inputs.
type Formula interface {
	// Eval computes the formula. get resolves a sibling column to its
	// numeric value, recursing through other formulas of the same row.
	Eval(get func(col int) (decimal.Decimal, error)) (decimal.Decimal, error)
	String() string
}

// PaymentFormula derives the constant annual payment from a row's principal,
// rate and term columns.
type PaymentFormula struct {
	Principal int
	Rate      int
	Term      int
}

func (f PaymentFormula) Eval(get func(int) (decimal.Decimal, error)) (decimal.Decimal, error) {
	principal, err := get(f.Principal)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := get(f.Rate)
	if err != nil {
		return decimal.Zero, err
	}
	term, err := get(f.Term)
	if err != nil {
		return decimal.Zero, err
	}
	return AnnualPayment(principal, rate, int(term.IntPart()))
}

func (f PaymentFormula) String() string {
	return fmt.Sprintf("=payment(c%d,c%d,c%d)", f.Principal, f.Rate, f.Term)
}

// PrincipalFormula derives the principal paid over one year: the first
// payment of an amortization of the current balance over the remaining term.
// Re-amortizing what is left keeps the annual payment invariant and drives
// the balance to exactly zero on the last year.
type PrincipalFormula struct {
	Rate    int
	Term    int // remaining term
	Balance int // starting balance
}

func (f PrincipalFormula) Eval(get func(int) (decimal.Decimal, error)) (decimal.Decimal, error) {
	rate, err := get(f.Rate)
	if err != nil {
		return decimal.Zero, err
	}
	term, err := get(f.Term)
	if err != nil {
		return decimal.Zero, err
	}
	balance, err := get(f.Balance)
	if err != nil {
		return decimal.Zero, err
	}
	return PeriodPrincipal(rate, 1, int(term.IntPart()), balance)
}

func (f PrincipalFormula) String() string {
	return fmt.Sprintf("=principal(c%d,c%d,c%d)", f.Rate, f.Term, f.Balance)
}

// DifferenceFormula derives minuend minus subtrahend, e.g. the ending balance
// as starting balance minus principal paid.
type DifferenceFormula struct {
	Minuend    int
	Subtrahend int
}

func (f DifferenceFormula) Eval(get func(int) (decimal.Decimal, error)) (decimal.Decimal, error) {
	a, err := get(f.Minuend)
	if err != nil {
		return decimal.Zero, err
	}
	b, err := get(f.Subtrahend)
	if err != nil {
		return decimal.Zero, err
	}
	return a.Sub(b), nil
}

func (f DifferenceFormula) String() string {
	return fmt.Sprintf("=c%d-c%d", f.Minuend, f.Subtrahend)
}
