package debtbook

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// The ledgers file is JSONL with one object per provisioned year. Rows are
// stored positionally (blank slots as null) so every row keeps its location
// across a save and load. Derived columns are stored as their settled values
// for readability; on decode they are rebuilt as formulas, which makes the
// stored numbers disposable snapshots.

// jledger mirrors one ledgers line on disk.
type jledger struct {
	Year     int               `json:"year"`
	Capacity int               `json:"capacity"`
	Issued   []json.RawMessage `json:"issued"`
	Debts    []json.RawMessage `json:"debts"`
}

// jissuedRow mirrors one row of the new-issued table on disk.
type jissuedRow struct {
	ID        string          `json:"id"`
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	Term      int             `json:"term"`
}

// jdebtRow mirrors one row of the existing-debt table on disk.
type jdebtRow struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	Rate      decimal.Decimal `json:"rate"`
	Remaining int             `json:"remaining"`
	Payment   decimal.Decimal `json:"payment"`
}

// DecodeLedgers reads every provisioned year ledger from its JSONL form.
func DecodeLedgers(r io.Reader) (*LedgerStore, error) {
	store := NewLedgerStore()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var temp jledger
		if err := json.Unmarshal(b, &temp); err != nil {
			return nil, fmt.Errorf("ledgers line %d: %w", line, err)
		}
		if temp.Capacity <= 0 {
			temp.Capacity = DefaultCapacity
		}
		if _, ok := store.Year(temp.Year); ok {
			return nil, fmt.Errorf("ledgers line %d: duplicate year %d", line, temp.Year)
		}
		ledger := store.Provision(temp.Year, temp.Capacity)
		if err := decodeIssuedRows(ledger.Issued, temp.Issued); err != nil {
			return nil, fmt.Errorf("ledgers line %d, year %d: %w", line, temp.Year, err)
		}
		if err := decodeDebtRows(ledger.Debts, temp.Debts); err != nil {
			return nil, fmt.Errorf("ledgers line %d, year %d: %w", line, temp.Year, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ledgers: %w", err)
	}
	return store, nil
}

func decodeIssuedRows(t *Table, rows []json.RawMessage) error {
	if len(rows) > t.Capacity() {
		return fmt.Errorf("%d issued rows exceed the capacity of %d", len(rows), t.Capacity())
	}
	t.grow(len(rows))
	for i, raw := range rows {
		if isNullRow(raw) {
			continue
		}
		var temp jissuedRow
		if err := json.Unmarshal(raw, &temp); err != nil {
			return fmt.Errorf("issued row %d: %w", i, err)
		}
		if temp.ID != "" {
			t.setCell(i, IssuedColID, Text(temp.ID))
		}
		if !temp.Principal.IsZero() {
			t.setCell(i, IssuedColPrincipal, Num(temp.Principal))
		}
		if !temp.Rate.IsZero() {
			t.setCell(i, IssuedColRate, Num(temp.Rate))
		}
		if temp.Term != 0 {
			t.setCell(i, IssuedColTerm, Num(decimal.NewFromInt(int64(temp.Term))))
		}
		if temp.ID != "" {
			t.setCell(i, IssuedColPayment, Derived(issuedPayment()))
		}
	}
	return nil
}

func decodeDebtRows(t *Table, rows []json.RawMessage) error {
	if len(rows) > t.Capacity() {
		return fmt.Errorf("%d debt rows exceed the capacity of %d", len(rows), t.Capacity())
	}
	t.grow(len(rows))
	for i, raw := range rows {
		if isNullRow(raw) {
			continue
		}
		var temp jdebtRow
		if err := json.Unmarshal(raw, &temp); err != nil {
			return fmt.Errorf("debt row %d: %w", i, err)
		}
		if temp.ID != "" {
			t.setCell(i, DebtColID, Text(temp.ID))
		}
		if !temp.Balance.IsZero() {
			t.setCell(i, DebtColBalance, Num(temp.Balance))
		}
		if !temp.Rate.IsZero() {
			t.setCell(i, DebtColRate, Num(temp.Rate))
		}
		if temp.Remaining != 0 {
			t.setCell(i, DebtColRemaining, Num(decimal.NewFromInt(int64(temp.Remaining))))
		}
		if !temp.Payment.IsZero() {
			t.setCell(i, DebtColPayment, Num(temp.Payment))
		}
		if temp.ID != "" {
			t.setCell(i, DebtColPaid, Derived(debtPaid()))
			t.setCell(i, DebtColEnding, Derived(debtEnding()))
		}
	}
	return nil
}

func isNullRow(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// EncodeLedgers writes the store as JSONL, one year per line in ascending
// order. Derived cells settle through ev; a value that cannot settle is
// simply omitted.
func EncodeLedgers(w io.Writer, store *LedgerStore, ev Evaluator) error {
	for _, ledger := range store.Ledgers() {
		line, err := encodeYearLedger(ledger, ev)
		if err != nil {
			return fmt.Errorf("encoding ledger %d: %w", ledger.Year, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("writing ledger %d: %w", ledger.Year, err)
		}
	}
	return nil
}

func encodeYearLedger(l *YearLedger, ev Evaluator) ([]byte, error) {
	issued, err := encodeRows(l.Issued, ev, encodeIssuedRow)
	if err != nil {
		return nil, err
	}
	debts, err := encodeRows(l.Debts, ev, encodeDebtRow)
	if err != nil {
		return nil, err
	}
	var w jsonObjectWriter
	w.Append("year", l.Year)
	w.Append("capacity", l.Issued.Capacity())
	w.Append("issued", issued)
	w.Append("debts", debts)
	return w.MarshalJSON()
}

func encodeRows(t *Table, ev Evaluator, encodeRow func(Evaluator, *Table, int) (json.RawMessage, error)) ([]json.RawMessage, error) {
	rows := make([]json.RawMessage, 0, t.Len())
	for row := 0; row < t.Len(); row++ {
		if t.isBlankRow(row) {
			rows = append(rows, json.RawMessage("null"))
			continue
		}
		b, err := encodeRow(ev, t, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		rows = append(rows, b)
	}
	return rows, nil
}

func encodeIssuedRow(ev Evaluator, t *Table, row int) (json.RawMessage, error) {
	var w jsonObjectWriter
	w.Optional("id", t.Key(row))
	appendNumericCell(&w, "principal", ev, t, row, IssuedColPrincipal)
	appendNumericCell(&w, "rate", ev, t, row, IssuedColRate)
	appendNumericCell(&w, "term", ev, t, row, IssuedColTerm)
	appendNumericCell(&w, "payment", ev, t, row, IssuedColPayment)
	return w.MarshalJSON()
}

func encodeDebtRow(ev Evaluator, t *Table, row int) (json.RawMessage, error) {
	var w jsonObjectWriter
	w.Optional("id", t.Key(row))
	appendNumericCell(&w, "balance", ev, t, row, DebtColBalance)
	appendNumericCell(&w, "rate", ev, t, row, DebtColRate)
	appendNumericCell(&w, "remaining", ev, t, row, DebtColRemaining)
	appendNumericCell(&w, "payment", ev, t, row, DebtColPayment)
	appendNumericCell(&w, "paid", ev, t, row, DebtColPaid)
	appendNumericCell(&w, "ending", ev, t, row, DebtColEnding)
	return w.MarshalJSON()
}

// appendNumericCell appends the cell's numeric value under key: concrete
// numbers directly, formulas settled through ev. Blank cells and values that
// do not settle are omitted.
func appendNumericCell(w *jsonObjectWriter, key string, ev Evaluator, t *Table, row, col int) {
	c := t.Cell(row, col)
	if n, ok := c.Number(); ok {
		w.Append(key, n)
		return
	}
	if _, ok := c.Formula(); ok {
		if v, err := ev.SettleAndRead(t, row, col); err == nil {
			w.Append(key, v)
		}
	}
}
