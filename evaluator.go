package debtbook

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrDivergence is returned when a formula graph cannot settle because its
// references form a cycle.
var ErrDivergence = errors.New("formula references form a cycle")

// Evaluator is the capability to attach derived-value formulas to table cells
// and to force their evaluation. The engine writes concrete values itself and
// goes through the evaluator for everything derived, so a host with its own
// recalculation machinery can substitute it.
type Evaluator interface {
	// Declare attaches f to the cell at (row, col) of t.
	Declare(t *Table, row, col int, f Formula)
	// SettleAndRead forces every computation the cell depends on to settle
	// and returns the cell's concrete numeric value. It must detect cyclic
	// references and report ErrDivergence instead of hanging.
	SettleAndRead(t *Table, row, col int) (decimal.Decimal, error)
}

// Recalc is the built-in Evaluator. It resolves formulas against their own
// row, depth-first and deterministically; blank cells read as zero.
type Recalc struct{}

func (Recalc) Declare(t *Table, row, col int, f Formula) {
	t.setCell(row, col, Derived(f))
}

func (Recalc) SettleAndRead(t *Table, row, col int) (decimal.Decimal, error) {
	return settle(t, row, col, make(map[int]bool))
}

// settle resolves (row, col) to a number, recursing through sibling formulas.
// busy holds the columns of the current resolution path.
func settle(t *Table, row, col int, busy map[int]bool) (decimal.Decimal, error) {
	if busy[col] {
		return decimal.Zero, fmt.Errorf("row %d column %d: %w", row, col, ErrDivergence)
	}
	c := t.Cell(row, col)
	if c.IsBlank() {
		return decimal.Zero, nil
	}
	if n, ok := c.Number(); ok {
		return n, nil
	}
	f, ok := c.Formula()
	if !ok {
		return decimal.Zero, fmt.Errorf("row %d column %d holds %q, not a number", row, col, c.Text())
	}
	busy[col] = true
	defer delete(busy, col)
	v, err := f.Eval(func(ref int) (decimal.Decimal, error) {
		return settle(t, row, ref, busy)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("settling %s: %w", f, err)
	}
	return v, nil
}
