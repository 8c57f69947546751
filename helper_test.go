package debtbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

// dec parses a decimal literal for test expectations.
func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

// closeTo reports whether got is within 1e-6 of want, the tolerance the
// amortization recurrence is expected to hold under decimal division.
func closeTo(got, want decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThan(decimal.New(1, -6))
}

// testEngine returns an engine over an empty register, with ledgers
// provisioned for every year from..to at the given capacity.
func testEngine(from, to, capacity int) *Engine {
	store := NewLedgerStore()
	for year := from; year <= to; year++ {
		store.Provision(year, capacity)
	}
	return NewEngine(NewRegister(), store, Recalc{})
}

// loanD1 is the reference record used across tests: 1000 at 5% over 3 years
// from 2024. Its exact schedule is payment 367.208564631245 and balances
// 1000, 682.791435368755, 349.722442505948, 0.
func loanD1() LoanRecord {
	return NewLoanRecord("D1", decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 3, 2024)
}
