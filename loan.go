package debtbook

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// Master-list geometry: one row per loan, five recognized columns.
const (
	RegColID = iota
	RegColPrincipal
	RegColRate
	RegColTerm
	RegColYear
	// RegCols is the column count of the master list.
	RegCols
)

// LoanRecord is one row of the master list: the defining parameters of a
// debt. Ledger rows are disposable projections of it; the record is the only
// canonical definition.
type LoanRecord struct {
	DebtID     string          // unique across the register, compared trimmed
	Principal  decimal.Decimal // issued amount, positive
	Rate       decimal.Decimal // per-period rate, positive
	Term       int             // number of yearly periods
	OriginYear int             // first active year
}

// NewLoanRecord creates a record with a trimmed id.
func NewLoanRecord(id string, principal, rate decimal.Decimal, term, originYear int) LoanRecord {
	return LoanRecord{
		DebtID:     strings.TrimSpace(id),
		Principal:  principal,
		Rate:       rate,
		Term:       term,
		OriginYear: originYear,
	}
}

// ExpireYear returns the last year the loan is active.
func (r LoanRecord) ExpireYear() int { return r.OriginYear + r.Term - 1 }

// Validate reports every missing or out-of-range field. A record failing
// validation stays in the register but is never expanded.
func (r LoanRecord) Validate() error {
	var errs error
	if strings.TrimSpace(r.DebtID) == "" {
		errs = errors.Join(errs, errors.New("debt id is missing"))
	}
	if !r.Principal.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("principal must be positive, got %s", r.Principal))
	}
	if !r.Rate.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("rate must be positive, got %s", r.Rate))
	}
	if r.Term < 1 {
		errs = errors.Join(errs, fmt.Errorf("term must be at least one period, got %d", r.Term))
	}
	if r.OriginYear == 0 {
		errs = errors.Join(errs, errors.New("origin year is missing"))
	}
	return errs
}

// Complete reports whether the record has everything an expansion needs.
func (r LoanRecord) Complete() bool { return r.Validate() == nil }

// Equal compares two records field by field, ids trimmed.
func (r LoanRecord) Equal(o LoanRecord) bool {
	return strings.TrimSpace(r.DebtID) == strings.TrimSpace(o.DebtID) &&
		r.Principal.Equal(o.Principal) &&
		r.Rate.Equal(o.Rate) &&
		r.Term == o.Term &&
		r.OriginYear == o.OriginYear
}

func (r LoanRecord) String() string {
	return fmt.Sprintf("%s: %s at %s over %d years from %d",
		r.DebtID, r.Principal, NewPercent(r.Rate), r.Term, r.OriginYear)
}

// Register is the master list of loan records, the single source of truth
// for which debts should exist anywhere. Row order is the user's order;
// incomplete rows are kept, since a later edit may complete them.
type Register struct {
	records []LoanRecord
	byID    map[string]int // first row per trimmed id
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{byID: make(map[string]int)}
}

func (g *Register) Len() int { return len(g.records) }

// At returns the record at a row.
func (g *Register) At(row int) (LoanRecord, bool) {
	if row < 0 || row >= len(g.records) {
		return LoanRecord{}, false
	}
	return g.records[row], true
}

// Get returns the record holding the trimmed id.
func (g *Register) Get(id string) (LoanRecord, bool) {
	row, ok := g.byID[strings.TrimSpace(id)]
	if !ok {
		return LoanRecord{}, false
	}
	return g.records[row], true
}

// Row returns the row holding the trimmed id, for hosts that report edits by
// location.
func (g *Register) Row(id string) (int, bool) {
	row, ok := g.byID[strings.TrimSpace(id)]
	return row, ok
}

// Append adds records at the end of the register.
func (g *Register) Append(recs ...LoanRecord) {
	for _, r := range recs {
		g.records = append(g.records, r)
		id := strings.TrimSpace(r.DebtID)
		if _, dup := g.byID[id]; id != "" && !dup {
			g.byID[id] = len(g.records) - 1
		}
	}
}

// AppendOrUpdate inserts the record, or overwrites the row already holding
// its id, and returns the row acted on.
func (g *Register) AppendOrUpdate(r LoanRecord) int {
	id := strings.TrimSpace(r.DebtID)
	if row, ok := g.byID[id]; ok && id != "" {
		if !g.records[row].Equal(r) {
			log.Printf("update %q: %v", id, r)
			g.records[row] = r
		}
		return row
	}
	g.Append(r)
	return len(g.records) - 1
}

// Remove deletes the record holding the trimmed id, keeping the order of the
// remaining rows. It reports whether a record was removed.
func (g *Register) Remove(id string) bool {
	row, ok := g.byID[strings.TrimSpace(id)]
	if !ok {
		return false
	}
	g.records = append(g.records[:row], g.records[row+1:]...)
	g.reindex()
	return true
}

func (g *Register) reindex() {
	g.byID = make(map[string]int, len(g.records))
	for row, r := range g.records {
		id := strings.TrimSpace(r.DebtID)
		if _, dup := g.byID[id]; id != "" && !dup {
			g.byID[id] = row
		}
	}
}

// Records yields every row in register order.
func (g *Register) Records() iter.Seq2[int, LoanRecord] {
	return func(yield func(int, LoanRecord) bool) {
		for row, r := range g.records {
			if !yield(row, r) {
				return
			}
		}
	}
}

// ValidIDs returns the set of trimmed, non-empty debt ids: the only keys
// allowed to appear anywhere in the ledgers.
func (g *Register) ValidIDs() map[string]bool {
	ids := make(map[string]bool, len(g.records))
	for _, r := range g.records {
		if id := strings.TrimSpace(r.DebtID); id != "" {
			ids[id] = true
		}
	}
	return ids
}
