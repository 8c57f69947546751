package debtbook

import "errors"

// Edit describes one change notified by the host: a single cell of the
// master list, or a bulk change that cannot be pinned to one record.
type Edit struct {
	Row  int
	Col  int
	Bulk bool
}

// CellEdit is an edit of a single master-list cell.
func CellEdit(row, col int) Edit { return Edit{Row: row, Col: col} }

// RowEdit is an edit rewriting one whole master-list row, like `dbk add`.
func RowEdit(row int) Edit { return Edit{Row: row, Col: RegColID} }

// BulkEdit is any change wider than a single cell: a paste, an import, a
// deletion. Bulk edits are handled by reconciliation alone.
func BulkEdit() Edit { return Edit{Bulk: true} }

// Engine couples the master register, the provisioned ledgers and the
// evaluator settling derived columns. It is single-threaded: the host
// serializes edit events, and the only blocking point is the settle barrier
// inside Expand.
type Engine struct {
	Register *Register
	Store    *LedgerStore
	Eval     Evaluator
}

// NewEngine wires an engine. A nil evaluator defaults to the built-in Recalc.
func NewEngine(reg *Register, store *LedgerStore, ev Evaluator) *Engine {
	if ev == nil {
		ev = Recalc{}
	}
	return &Engine{Register: reg, Store: store, Eval: ev}
}

// HandleEdit reacts to one edit event. An edit that cleanly maps to one
// complete record expands that record; everything else (bulk edits, locations
// outside the master list, incomplete rows) degrades to reconciliation alone.
// Reconciliation runs in every case, so the ledgers never keep rows for debts
// that left the register.
func (e *Engine) HandleEdit(ed Edit) error {
	rec, ok := e.editedRecord(ed)
	if !ok {
		e.Reconcile()
		return nil
	}
	err := e.Expand(rec)
	e.Reconcile()
	return err
}

// editedRecord maps an edit to the one complete record it touches, if any.
func (e *Engine) editedRecord(ed Edit) (LoanRecord, bool) {
	if ed.Bulk || ed.Col < 0 || ed.Col >= RegCols {
		return LoanRecord{}, false
	}
	rec, ok := e.Register.At(ed.Row)
	if !ok || !rec.Complete() {
		return LoanRecord{}, false
	}
	return rec, true
}

// Sync re-expands every complete record and reconciles once. It is the
// full-rebuild counterpart of HandleEdit, for hosts that lost track of
// individual edits (a fresh import, a hand-edited file).
func (e *Engine) Sync() error {
	var errs error
	for _, rec := range e.Register.Records() {
		if !rec.Complete() {
			continue
		}
		if err := e.Expand(rec); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	e.Reconcile()
	return errs
}
