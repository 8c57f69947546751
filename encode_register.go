package debtbook

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jloan mirrors one register line on disk.
type jloan struct {
	ID        string          `json:"id"`
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	Term      int             `json:"term"`
	Year      int             `json:"year"`
}

// MarshalJSON implements the json.Marshaler interface for LoanRecord. Fields
// a row does not have yet are omitted, so incomplete rows survive a rewrite.
func (r LoanRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", strings.TrimSpace(r.DebtID))
	w.Optional("principal", r.Principal)
	w.Optional("rate", r.Rate)
	w.Optional("term", r.Term)
	w.Optional("year", r.OriginYear)
	return w.MarshalJSON()
}

// DecodeRegister reads the master list from its JSONL form, one record per
// line, preserving row order. Empty lines are skipped.
func DecodeRegister(r io.Reader) (*Register, error) {
	reg := NewRegister()
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var temp jloan
		if err := json.Unmarshal(b, &temp); err != nil {
			return nil, fmt.Errorf("register line %d: %w", line, err)
		}
		reg.Append(LoanRecord{
			DebtID:     strings.TrimSpace(temp.ID),
			Principal:  temp.Principal,
			Rate:       temp.Rate,
			Term:       temp.Term,
			OriginYear: temp.Year,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading register: %w", err)
	}
	return reg, nil
}

// EncodeRegister writes the register as JSONL, one record per line, in row
// order, with a canonical key order inside each line.
func EncodeRegister(w io.Writer, reg *Register) error {
	for _, rec := range reg.Records() {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %q: %w", rec.DebtID, err)
		}
		if _, err := w.Write(append(b, '\n')); err != nil {
			return fmt.Errorf("writing register: %w", err)
		}
	}
	return nil
}
