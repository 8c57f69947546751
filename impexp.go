package debtbook

// this file contains functions to import loan records from third-party JSON
// exports. The mapping is a handful of jsonpath expressions, so any
// reasonably regular export can be pulled in without a dedicated converter.

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// ImportMapping locates loan records inside a JSON document. Records selects
// the list of items; the field paths are evaluated against each item. An
// empty field path leaves the field blank: the record is kept in the register
// but stays ineligible for expansion until someone completes it.
type ImportMapping struct {
	Records   string
	ID        string
	Principal string
	Rate      string
	Term      string
	Year      string
}

// DefaultMapping reads the natural layout:
// {"loans": [{"id": ..., "principal": ..., "rate": ..., "term": ..., "year": ...}]}.
func DefaultMapping() ImportMapping {
	return ImportMapping{
		Records:   "$.loans",
		ID:        "$.id",
		Principal: "$.principal",
		Rate:      "$.rate",
		Term:      "$.term",
		Year:      "$.year",
	}
}

// ImportRecords decodes a JSON document from r and extracts one loan record
// per item selected by the mapping.
func ImportRecords(r io.Reader, m ImportMapping) ([]LoanRecord, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse import document: %w", err)
	}
	return ExtractRecords(doc, m)
}

// FetchRecords imports loan records from a remote JSON document, through the
// daily disk cache of this package.
func FetchRecords(addr string, m ImportMapping) ([]LoanRecord, error) {
	var doc any
	if err := jwget(daily(), addr, &doc); err != nil {
		return nil, fmt.Errorf("cannot fetch %q: %w", addr, err)
	}
	return ExtractRecords(doc, m)
}

// ExtractRecords extracts loan records from an already decoded JSON value.
func ExtractRecords(doc any, m ImportMapping) ([]LoanRecord, error) {
	items, err := jsonpath.Get(m.Records, doc)
	if err != nil {
		return nil, fmt.Errorf("records path %q: %w", m.Records, err)
	}
	list, ok := items.([]any)
	if !ok {
		// a path selecting a single object imports a single record
		list = []any{items}
	}
	recs := make([]LoanRecord, 0, len(list))
	for i, item := range list {
		rec := LoanRecord{
			DebtID:     stringAt(item, m.ID),
			Principal:  decimalAt(item, m.Principal),
			Rate:       decimalAt(item, m.Rate),
			Term:       intAt(item, m.Term),
			OriginYear: intAt(item, m.Year),
		}
		if !rec.Complete() {
			log.Printf("import item %d (%q) is incomplete, it will not expand", i, rec.DebtID)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// first unwraps the list-of-one answers jsonpath sometimes returns.
func first(v any) any {
	if list, ok := v.([]any); ok && len(list) > 0 {
		return list[0]
	}
	return v
}

func valueAt(item any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	v, err := jsonpath.Get(path, item)
	if err != nil {
		return nil, false
	}
	return first(v), true
}

func stringAt(item any, path string) string {
	v, ok := valueAt(item, path)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return ""
}

func decimalAt(item any, path string) decimal.Decimal {
	v, ok := valueAt(item, path)
	if !ok {
		return decimal.Decimal{}
	}
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
			return d
		}
	}
	return decimal.Decimal{}
}

func intAt(item any, path string) int {
	v, ok := valueAt(item, path)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
