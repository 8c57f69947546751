package debtbook

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrCapacityExceeded is returned by Upsert when a table has no matching row,
// no blank slot, and no room left to append.
var ErrCapacityExceeded = errors.New("no free row left in table")

type cellKind int

const (
	blankCell cellKind = iota
	textCell
	numberCell
	formulaCell
)

// Cell is one slot of a table row: blank, a text (the key column), a concrete
// number, or a declared formula over sibling cells. The zero value is blank.
type Cell struct {
	kind cellKind
	text string
	num  decimal.Decimal
	f    Formula
}

// Text creates a text cell.
func Text(s string) Cell { return Cell{kind: textCell, text: s} }

// Num creates a concrete numeric cell.
func Num(d decimal.Decimal) Cell { return Cell{kind: numberCell, num: d} }

// Derived creates a formula cell; its value is obtained through an Evaluator.
func Derived(f Formula) Cell { return Cell{kind: formulaCell, f: f} }

// IsBlank reports whether the cell holds nothing at all.
func (c Cell) IsBlank() bool { return c.kind == blankCell }

// Text returns the cell content if it is text, "" otherwise.
func (c Cell) Text() string {
	if c.kind == textCell {
		return c.text
	}
	return ""
}

// Number returns the concrete numeric value of the cell, if it has one.
func (c Cell) Number() (decimal.Decimal, bool) { return c.num, c.kind == numberCell }

// Formula returns the formula declared on the cell, if any.
func (c Cell) Formula() (Formula, bool) { return c.f, c.kind == formulaCell }

// Equal compares two cells by kind and content.
func (c Cell) Equal(d Cell) bool {
	if c.kind != d.kind {
		return false
	}
	switch c.kind {
	case textCell:
		return c.text == d.text
	case numberCell:
		return c.num.Equal(d.num)
	case formulaCell:
		return c.f == d.f
	}
	return true
}

func (c Cell) String() string {
	switch c.kind {
	case textCell:
		return c.text
	case numberCell:
		return c.num.String()
	case formulaCell:
		return c.f.String()
	}
	return ""
}

// Table is one fixed-capacity rectangular ledger area. Rows are written up to
// an occupied extent that only grows; clearing a row blanks it in place so
// every other row keeps its location. The first column is the key column.
type Table struct {
	cols     int
	capacity int
	rows     [][]Cell
}

// NewTable creates an empty table of the given width and row capacity.
func NewTable(cols, capacity int) *Table {
	return &Table{cols: cols, capacity: capacity}
}

func (t *Table) Cols() int     { return t.cols }
func (t *Table) Capacity() int { return t.capacity }

// Len returns the occupied extent: the number of rows written at least once.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the cell at (row, col). Slots outside the occupied extent are
// blank.
func (t *Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= t.cols {
		return Cell{}
	}
	return t.rows[row][col]
}

// Key returns the trimmed key of a row.
func (t *Table) Key(row int) string { return strings.TrimSpace(t.Cell(row, 0).Text()) }

// FindRow returns the first row whose trimmed key equals the trimmed target,
// scanning top to bottom. The match is case-sensitive and exact.
func (t *Table) FindRow(key string) (int, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, false
	}
	for row := range t.rows {
		if t.Key(row) == key {
			return row, true
		}
	}
	return 0, false
}

// ClearRow blanks an entire row in place, keeping its slot for reuse.
func (t *Table) ClearRow(row int) {
	if row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row] = make([]Cell, t.cols)
}

// Upsert writes a full row of cells for the given key: into the row already
// holding the key, else into the first fully blank slot, else appended past
// the occupied extent. When the capacity leaves no room it returns
// ErrCapacityExceeded instead of touching any other row.
//
// Concrete cells are written directly; formula cells go through the
// evaluator, so a host with live recalculation sees them declared.
// Re-invoking with the same key updates the same row: no duplicates.
func (t *Table) Upsert(ev Evaluator, key string, cells []Cell) (int, error) {
	if len(cells) != t.cols {
		return 0, fmt.Errorf("upsert %q: row has %d cells, table has %d columns", key, len(cells), t.cols)
	}
	row, found := t.FindRow(key)
	if found {
		// Duplicate keys can only come from hand-edited files. Keep the
		// first row and drop the others.
		for dup := row + 1; dup < len(t.rows); dup++ {
			if t.Key(dup) == strings.TrimSpace(key) {
				log.Printf("dropping duplicate row %d for %q, keeping row %d", dup, key, row)
				t.ClearRow(dup)
			}
		}
	} else if blank, ok := t.firstBlankRow(); ok {
		row = blank
	} else if len(t.rows) < t.capacity {
		row = len(t.rows)
		t.rows = append(t.rows, make([]Cell, t.cols))
	} else {
		return 0, fmt.Errorf("upsert %q: %w", key, ErrCapacityExceeded)
	}

	for col, c := range cells {
		if f, ok := c.Formula(); ok {
			ev.Declare(t, row, col, f)
			continue
		}
		t.rows[row][col] = c
	}
	return row, nil
}

func (t *Table) setCell(row, col int, c Cell) {
	if row < 0 || row >= len(t.rows) || col < 0 || col >= t.cols {
		return
	}
	t.rows[row][col] = c
}

// grow extends the occupied extent with blank rows, up to the capacity.
func (t *Table) grow(n int) {
	for len(t.rows) < n && len(t.rows) < t.capacity {
		t.rows = append(t.rows, make([]Cell, t.cols))
	}
}

func (t *Table) isBlankRow(row int) bool {
	for _, c := range t.rows[row] {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

func (t *Table) firstBlankRow() (int, bool) {
	for row := range t.rows {
		if t.isBlankRow(row) {
			return row, true
		}
	}
	return 0, false
}
