package debtbook

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettleAndRead(t *testing.T) {
	ev := Recalc{}
	tbl := NewTable(DebtCols, 4)
	row, err := tbl.Upsert(ev, "D1", debtRow("D1", dec(t, "1000"), dec(t, "0.05"), 3, dec(t, "367.208564631245")))
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		col  int
		want string
	}{
		{name: "concrete balance", col: DebtColBalance, want: "1000"},
		{name: "concrete payment", col: DebtColPayment, want: "367.208564631245"},
		{name: "derived principal paid", col: DebtColPaid, want: "317.208564631245"},
		{name: "derived ending balance", col: DebtColEnding, want: "682.791435368755"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ev.SettleAndRead(tbl, row, tc.col)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want := dec(t, tc.want); !closeTo(got, want) {
				t.Errorf("column %d settled to %s, want about %s", tc.col, got, want)
			}
		})
	}
}

// TestSettleBlankReadsZero covers the sheet convention that an empty cell
// counts as zero in a computation.
func TestSettleBlankReadsZero(t *testing.T) {
	tbl := NewTable(3, 2)
	tbl.grow(1)
	got, err := Recalc{}.SettleAndRead(tbl, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("blank cell settled to %s, want 0", got)
	}
}

func TestSettleTextIsAnError(t *testing.T) {
	tbl := NewTable(3, 2)
	tbl.grow(1)
	tbl.setCell(0, 0, Text("D1"))
	tbl.setCell(0, 1, Derived(DifferenceFormula{Minuend: 0, Subtrahend: 2}))
	if _, err := (Recalc{}).SettleAndRead(tbl, 0, 1); err == nil {
		t.Fatal("want an error when a formula reads a text cell")
	}
}

func TestSettleDetectsCycles(t *testing.T) {
	ev := Recalc{}
	tbl := NewTable(3, 2)
	tbl.grow(1)

	t.Run("self reference", func(t *testing.T) {
		ev.Declare(tbl, 0, 1, DifferenceFormula{Minuend: 1, Subtrahend: 2})
		_, err := ev.SettleAndRead(tbl, 0, 1)
		if !errors.Is(err, ErrDivergence) {
			t.Fatalf("err = %v, want ErrDivergence", err)
		}
	})

	t.Run("mutual reference", func(t *testing.T) {
		ev.Declare(tbl, 0, 1, DifferenceFormula{Minuend: 0, Subtrahend: 2})
		ev.Declare(tbl, 0, 2, DifferenceFormula{Minuend: 0, Subtrahend: 1})
		tbl.setCell(0, 0, Num(decimal.Zero))
		_, err := ev.SettleAndRead(tbl, 0, 1)
		if !errors.Is(err, ErrDivergence) {
			t.Fatalf("err = %v, want ErrDivergence", err)
		}
	})
}

// TestDeclaredFormulaStaysLive checks that a derived column follows later
// edits to its inputs instead of freezing its first value.
func TestDeclaredFormulaStaysLive(t *testing.T) {
	ev := Recalc{}
	tbl := NewTable(IssuedCols, 2)
	row, err := tbl.Upsert(ev, "D1", issuedRow("D1", dec(t, "1000"), dec(t, "0.05"), 3))
	if err != nil {
		t.Fatal(err)
	}
	before, err := ev.SettleAndRead(tbl, row, IssuedColPayment)
	if err != nil {
		t.Fatal(err)
	}
	if want := dec(t, "367.208564631245"); !closeTo(before, want) {
		t.Fatalf("payment settled to %s, want about %s", before, want)
	}

	// Doubling the principal doubles the payment on the next settle.
	tbl.setCell(row, IssuedColPrincipal, Num(dec(t, "2000")))
	after, err := ev.SettleAndRead(tbl, row, IssuedColPayment)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(after, before.Mul(dec(t, "2"))) {
		t.Errorf("payment settled to %s after the edit, want about %s", after, before.Mul(dec(t, "2")))
	}
}

func TestFormulaStrings(t *testing.T) {
	testCases := []struct {
		f    Formula
		want string
	}{
		{f: issuedPayment(), want: "=payment(c1,c2,c3)"},
		{f: debtPaid(), want: "=principal(c2,c3,c1)"},
		{f: debtEnding(), want: "=c1-c5"},
	}
	for _, tc := range testCases {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
