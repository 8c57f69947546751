package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/vbail/debtbook"
)

// ScheduleView is the year-by-year amortization of one debt, recomputed from
// its record with the same recurrence the expander writes into the ledgers.
// It does not depend on which ledgers are provisioned; unprovisioned years
// are merely flagged.
type ScheduleView struct {
	ID        string
	Principal debtbook.Money
	Rate      debtbook.Percent
	Term      int
	Origin    int
	Expire    int
	Payment   debtbook.Money
	Years     []ScheduleYear
}

// ScheduleYear is one year of the schedule.
type ScheduleYear struct {
	Year     int
	Ledgered bool // a ledger is provisioned for this year
	Balance  debtbook.Money
	Interest debtbook.Money
	Paid     debtbook.Money
	Ending   debtbook.Money
}

// NewScheduleView computes the full amortization of one record: the constant
// payment, then per year the interest, the principal paid and the ending
// balance feeding the next year.
func NewScheduleView(rec debtbook.LoanRecord, store *debtbook.LedgerStore, currency string) (*ScheduleView, error) {
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("no schedule for %q: %w", rec.DebtID, err)
	}
	payment, err := debtbook.AnnualPayment(rec.Principal, rec.Rate, rec.Term)
	if err != nil {
		return nil, fmt.Errorf("no schedule for %q: %w", rec.DebtID, err)
	}
	v := &ScheduleView{
		ID:        rec.DebtID,
		Principal: debtbook.M(rec.Principal, currency),
		Rate:      debtbook.NewPercent(rec.Rate),
		Term:      rec.Term,
		Origin:    rec.OriginYear,
		Expire:    rec.ExpireYear(),
		Payment:   debtbook.M(payment, currency),
	}

	balance := rec.Principal
	for year := rec.OriginYear; year <= rec.ExpireYear(); year++ {
		remaining := rec.ExpireYear() - year + 1
		paid, err := debtbook.PeriodPrincipal(rec.Rate, 1, remaining, balance)
		if err != nil {
			return nil, fmt.Errorf("no schedule for %q: %w", rec.DebtID, err)
		}
		ending := balance.Sub(paid)
		_, ledgered := store.Year(year)
		v.Years = append(v.Years, ScheduleYear{
			Year:     year,
			Ledgered: ledgered,
			Balance:  debtbook.M(balance, currency),
			Interest: debtbook.M(balance.Mul(rec.Rate), currency),
			Paid:     debtbook.M(paid, currency),
			Ending:   debtbook.M(ending, currency),
		})
		balance = ending
	}
	return v, nil
}

// ScheduleMarkdown renders the schedule view to a markdown string.
func ScheduleMarkdown(v *ScheduleView) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Amortization of %s", v.ID))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{
			md.Bold("Annual Payment"),
			md.Bold(v.Payment.String()),
		},
		Rows: [][]string{
			{"Principal", v.Principal.String()},
			{"Rate", v.Rate.String()},
			{"Term", fmt.Sprintf("%d years, %d-%d", v.Term, v.Origin, v.Expire)},
		},
	})

	doc.H2("Yearly Breakdown")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Year", "Starting", "Interest", "Principal", "Ending", "Ledger"},
	}
	for _, y := range v.Years {
		ledger := "provisioned"
		if !y.Ledgered {
			ledger = "missing"
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(y.Year),
			y.Balance.String(),
			y.Interest.String(),
			y.Paid.String(),
			y.Ending.String(),
			ledger,
		})
	}
	doc.Table(table)

	return doc.String()
}
