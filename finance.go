package debtbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var one = decimal.New(1, 0)

// AnnualPayment returns the constant payment amortizing principal over term
// periods at the given per-period rate: |principal * rate / (1 - (1+rate)^-term)|.
//
// A zero or negative rate or term has no amortization schedule and is
// rejected; callers validate records before expanding them.
func AnnualPayment(principal, rate decimal.Decimal, term int) (decimal.Decimal, error) {
	if term < 1 {
		return decimal.Zero, fmt.Errorf("payment needs a positive term, got %d", term)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("payment needs a positive rate, got %s", rate)
	}
	pow, err := one.Add(rate).PowInt32(int32(-term))
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing (1+rate)^-term: %w", err)
	}
	return principal.Mul(rate).Div(one.Sub(pow)).Abs(), nil
}

// PeriodPrincipal returns the principal component of the period-th payment of
// an amortization schedule of length term at the given rate on presentValue.
// The sign convention is "amount paid": the result is always non-negative.
func PeriodPrincipal(rate decimal.Decimal, period, term int, presentValue decimal.Decimal) (decimal.Decimal, error) {
	if period < 1 || period > term {
		return decimal.Zero, fmt.Errorf("period %d outside a schedule of %d payments", period, term)
	}
	payment, err := AnnualPayment(presentValue, rate, term)
	if err != nil {
		return decimal.Zero, err
	}
	growth, err := one.Add(rate).PowInt32(int32(period - 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing (1+rate)^(period-1): %w", err)
	}
	// The first payment's principal share is payment minus interest on the
	// full present value; it then grows by (1+rate) each period.
	return payment.Sub(presentValue.Mul(rate)).Mul(growth).Abs(), nil
}
