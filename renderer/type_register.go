package renderer

import (
	"fmt"
	"strconv"

	"github.com/vbail/debtbook"
)

// RegisterView is the renderable form of the master list. Incomplete records
// keep their row, with the missing fields left blank, so the report mirrors
// the register instead of hiding what will not expand.
type RegisterView struct {
	// Count is the number of records, complete or not.
	Count int
	// Expandable is the number of records eligible for expansion.
	Expandable int
	// TotalPrincipal sums the principal of the expandable records.
	TotalPrincipal debtbook.Money
	// Rows is the master list in register order.
	Rows []RegisterRow
}

// RegisterRow is one master-list row, preformatted for display. Fields the
// record does not have yet render as empty cells.
type RegisterRow struct {
	ID        string
	Principal string
	Rate      string
	Term      string
	Years     string // active span, "2024-2026"
	Status    string // "incomplete" for records that will not expand
}

// NewRegisterView builds the view in register row order.
func NewRegisterView(reg *debtbook.Register, currency string) *RegisterView {
	v := &RegisterView{TotalPrincipal: debtbook.M(0, currency)}
	for _, rec := range reg.Records() {
		v.Count++
		row := RegisterRow{ID: rec.DebtID}
		if !rec.Principal.IsZero() {
			row.Principal = debtbook.M(rec.Principal, currency).String()
		}
		if !rec.Rate.IsZero() {
			row.Rate = debtbook.NewPercent(rec.Rate).String()
		}
		if rec.Term != 0 {
			row.Term = strconv.Itoa(rec.Term)
		}
		switch {
		case rec.OriginYear != 0 && rec.Term > 0:
			row.Years = fmt.Sprintf("%d-%d", rec.OriginYear, rec.ExpireYear())
		case rec.OriginYear != 0:
			row.Years = strconv.Itoa(rec.OriginYear)
		}
		if rec.Complete() {
			v.Expandable++
			v.TotalPrincipal = v.TotalPrincipal.Add(debtbook.M(rec.Principal, currency))
		} else {
			row.Status = "incomplete"
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}
