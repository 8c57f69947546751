package renderer

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vbail/debtbook"
)

// LedgerView is the renderable form of one year ledger: both tables with
// every derived column settled to a number.
type LedgerView struct {
	Year      int
	Capacity  int
	FreeSlots int // debt rows still available, blank slots included
	Issued    []IssuedRowView
	Debts     []DebtRowView
	// Table totals, in the reporting currency.
	TotalIssued   debtbook.Money
	TotalStarting debtbook.Money
	TotalEnding   debtbook.Money
}

// IssuedRowView is one row of the new-issued table.
type IssuedRowView struct {
	ID        string
	Principal debtbook.Money
	Rate      debtbook.Percent
	Term      int
	Payment   debtbook.Money
}

// DebtRowView is one row of the existing-debt table.
type DebtRowView struct {
	ID        string
	Balance   debtbook.Money
	Rate      debtbook.Percent
	Remaining int
	Payment   debtbook.Money
	Paid      debtbook.Money
	Ending    debtbook.Money
}

// NewLedgerView settles both tables of a year ledger into a view. A formula
// that refuses to settle aborts the whole view: a report never shows a
// half-settled ledger.
func NewLedgerView(l *debtbook.YearLedger, ev debtbook.Evaluator, currency string) (*LedgerView, error) {
	v := &LedgerView{
		Year:          l.Year,
		Capacity:      l.Debts.Capacity(),
		TotalIssued:   debtbook.M(0, currency),
		TotalStarting: debtbook.M(0, currency),
		TotalEnding:   debtbook.M(0, currency),
	}

	issued := tableReader{ev: ev, t: l.Issued}
	for row := 0; row < l.Issued.Len(); row++ {
		id := l.Issued.Key(row)
		if id == "" {
			continue
		}
		principal := debtbook.M(issued.num(row, debtbook.IssuedColPrincipal), currency)
		v.Issued = append(v.Issued, IssuedRowView{
			ID:        id,
			Principal: principal,
			Rate:      debtbook.NewPercent(issued.num(row, debtbook.IssuedColRate)),
			Term:      int(issued.num(row, debtbook.IssuedColTerm).IntPart()),
			Payment:   debtbook.M(issued.num(row, debtbook.IssuedColPayment), currency),
		})
		v.TotalIssued = v.TotalIssued.Add(principal)
	}
	if issued.err != nil {
		return nil, fmt.Errorf("ledger %d issued: %w", l.Year, issued.err)
	}

	debts := tableReader{ev: ev, t: l.Debts}
	occupied := 0
	for row := 0; row < l.Debts.Len(); row++ {
		id := l.Debts.Key(row)
		if id == "" {
			continue
		}
		occupied++
		balance := debtbook.M(debts.num(row, debtbook.DebtColBalance), currency)
		ending := debtbook.M(debts.num(row, debtbook.DebtColEnding), currency)
		v.Debts = append(v.Debts, DebtRowView{
			ID:        id,
			Balance:   balance,
			Rate:      debtbook.NewPercent(debts.num(row, debtbook.DebtColRate)),
			Remaining: int(debts.num(row, debtbook.DebtColRemaining).IntPart()),
			Payment:   debtbook.M(debts.num(row, debtbook.DebtColPayment), currency),
			Paid:      debtbook.M(debts.num(row, debtbook.DebtColPaid), currency),
			Ending:    ending,
		})
		v.TotalStarting = v.TotalStarting.Add(balance)
		v.TotalEnding = v.TotalEnding.Add(ending)
	}
	if debts.err != nil {
		return nil, fmt.Errorf("ledger %d debts: %w", l.Year, debts.err)
	}
	v.FreeSlots = v.Capacity - occupied

	return v, nil
}

// tableReader reads settled numbers off one table, keeping the first error so
// a row can be pulled in one expression per column.
type tableReader struct {
	ev  debtbook.Evaluator
	t   *debtbook.Table
	err error
}

func (r *tableReader) num(row, col int) decimal.Decimal {
	if r.err != nil {
		return decimal.Decimal{}
	}
	v, err := r.ev.SettleAndRead(r.t, row, col)
	if err != nil {
		r.err = err
	}
	return v
}
