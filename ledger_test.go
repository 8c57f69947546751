package debtbook

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLedgerStoreProvision(t *testing.T) {
	store := NewLedgerStore()

	l := store.Provision(2024, 8)
	if l.Year != 2024 {
		t.Errorf("Provision(2024, 8).Year = %d, want 2024", l.Year)
	}
	if got := l.Issued.Capacity(); got != 8 {
		t.Errorf("issued capacity = %d, want 8", got)
	}
	if got := l.Debts.Capacity(); got != 8 {
		t.Errorf("debts capacity = %d, want 8", got)
	}
	if got := l.Issued.Cols(); got != IssuedCols {
		t.Errorf("issued cols = %d, want %d", got, IssuedCols)
	}
	if got := l.Debts.Cols(); got != DebtCols {
		t.Errorf("debts cols = %d, want %d", got, DebtCols)
	}

	// Provisioning again must return the same ledger untouched, whatever
	// capacity is asked for.
	again := store.Provision(2024, 99)
	if again != l {
		t.Error("second Provision(2024) returned a different ledger")
	}
	if got := again.Debts.Capacity(); got != 8 {
		t.Errorf("re-provisioned capacity = %d, want the original 8", got)
	}

	if store.Len() != 1 {
		t.Errorf("store.Len() = %d, want 1", store.Len())
	}
	if _, ok := store.Year(2025); ok {
		t.Error("Year(2025) found a ledger that was never provisioned")
	}
}

func TestLedgerStoreYearsAreSorted(t *testing.T) {
	store := NewLedgerStore()
	for _, year := range []int{2026, 2023, 2025, 2024} {
		store.Provision(year, 4)
	}

	got := slices.Collect(store.Years())
	want := []int{2023, 2024, 2025, 2026}
	if !slices.Equal(got, want) {
		t.Errorf("Years() = %v, want %v", got, want)
	}

	var fromLedgers []int
	for year, l := range store.Ledgers() {
		if l.Year != year {
			t.Errorf("Ledgers() yielded year %d holding ledger of %d", year, l.Year)
		}
		fromLedgers = append(fromLedgers, year)
	}
	if !slices.Equal(fromLedgers, want) {
		t.Errorf("Ledgers() order = %v, want %v", fromLedgers, want)
	}
}

// TestIssuedRowPayment checks the derived payment column of a new-issued row
// settles to the constant annual payment of the loan.
func TestIssuedRowPayment(t *testing.T) {
	l := NewYearLedger(2024, 4)
	ev := Recalc{}

	principal := decimal.NewFromInt(1000)
	rate := decimal.NewFromFloat(0.05)
	row, err := l.Issued.Upsert(ev, "D1", issuedRow("D1", principal, rate, 3))
	if err != nil {
		t.Fatalf("Upsert() = %v", err)
	}

	got, err := ev.SettleAndRead(l.Issued, row, IssuedColPayment)
	if err != nil {
		t.Fatalf("SettleAndRead(payment) = %v", err)
	}
	want, err := AnnualPayment(principal, rate, 3)
	if err != nil {
		t.Fatalf("AnnualPayment() = %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("issued payment = %s, want %s", got, want)
	}
	if !closeTo(got, dec(t, "367.208564631245")) {
		t.Errorf("issued payment = %s, want 367.208564631245", got)
	}
}

// TestDebtRowDerivedColumns checks paid and ending of an existing-debt row:
// paid is the first-period principal of re-amortizing the balance over the
// remaining term, ending is balance minus paid.
func TestDebtRowDerivedColumns(t *testing.T) {
	l := NewYearLedger(2024, 4)
	ev := Recalc{}

	balance := decimal.NewFromInt(1000)
	rate := decimal.NewFromFloat(0.05)
	payment := dec(t, "367.208564631245")
	row, err := l.Debts.Upsert(ev, "D1", debtRow("D1", balance, rate, 3, payment))
	if err != nil {
		t.Fatalf("Upsert() = %v", err)
	}

	paid, err := ev.SettleAndRead(l.Debts, row, DebtColPaid)
	if err != nil {
		t.Fatalf("SettleAndRead(paid) = %v", err)
	}
	if !closeTo(paid, dec(t, "317.208564631245")) {
		t.Errorf("paid = %s, want 317.208564631245", paid)
	}

	ending, err := ev.SettleAndRead(l.Debts, row, DebtColEnding)
	if err != nil {
		t.Fatalf("SettleAndRead(ending) = %v", err)
	}
	if !ending.Equal(balance.Sub(paid)) {
		t.Errorf("ending = %s, want balance-paid = %s", ending, balance.Sub(paid))
	}

	// The derived columns are live: shrinking the balance moves them both.
	l.Debts.setCell(row, DebtColBalance, Num(decimal.NewFromInt(500)))
	paid2, err := ev.SettleAndRead(l.Debts, row, DebtColPaid)
	if err != nil {
		t.Fatalf("SettleAndRead(paid) after edit = %v", err)
	}
	if paid2.Equal(paid) {
		t.Error("paid did not follow the balance edit")
	}
	ending2, err := ev.SettleAndRead(l.Debts, row, DebtColEnding)
	if err != nil {
		t.Fatalf("SettleAndRead(ending) after edit = %v", err)
	}
	if !ending2.Equal(decimal.NewFromInt(500).Sub(paid2)) {
		t.Errorf("ending after edit = %s, want %s", ending2, decimal.NewFromInt(500).Sub(paid2))
	}
}
