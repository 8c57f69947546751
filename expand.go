package debtbook

import "fmt"

// Expand projects one loan record into every provisioned ledger of its active
// years: the new-issued row on the origin year, and one existing-debt row per
// year from origin through expiry. The balance walks the years in ascending
// order, so each iteration settles the derived ending balance of the row it
// just wrote and feeds it to the next year as the starting balance.
//
// Years without a provisioned ledger are skipped. A full table or a formula
// that will not settle aborts the expansion; rows already written keep their
// last-written state, since reconciliation and future edits stay idempotent.
func (e *Engine) Expand(rec LoanRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("cannot expand %q: %w", rec.DebtID, err)
	}
	payment, err := AnnualPayment(rec.Principal, rec.Rate, rec.Term)
	if err != nil {
		return fmt.Errorf("cannot expand %q: %w", rec.DebtID, err)
	}

	balance := rec.Principal
	for year := rec.OriginYear; year <= rec.ExpireYear(); year++ {
		ledger, ok := e.Store.Year(year)
		if !ok {
			continue
		}
		if year == rec.OriginYear {
			row := issuedRow(rec.DebtID, rec.Principal, rec.Rate, rec.Term)
			if _, err := ledger.Issued.Upsert(e.Eval, rec.DebtID, row); err != nil {
				return fmt.Errorf("expanding %q into %d issued: %w", rec.DebtID, year, err)
			}
		}
		remaining := rec.ExpireYear() - year + 1
		row, err := ledger.Debts.Upsert(e.Eval, rec.DebtID, debtRow(rec.DebtID, balance, rec.Rate, remaining, payment))
		if err != nil {
			return fmt.Errorf("expanding %q into %d debts: %w", rec.DebtID, year, err)
		}
		// Settle the row before moving on: the next year's starting
		// balance is this year's computed ending balance.
		ending, err := e.Eval.SettleAndRead(ledger.Debts, row, DebtColEnding)
		if err != nil {
			return fmt.Errorf("expanding %q into %d debts: %w", rec.DebtID, year, err)
		}
		balance = ending
	}
	return nil
}
