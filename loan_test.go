package debtbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoanRecordValidate(t *testing.T) {
	complete := loanD1()

	testCases := []struct {
		name    string
		mutate  func(*LoanRecord)
		wantErr bool
	}{
		{name: "complete record", mutate: func(r *LoanRecord) {}},
		{name: "blank id", mutate: func(r *LoanRecord) { r.DebtID = "  " }, wantErr: true},
		{name: "zero principal", mutate: func(r *LoanRecord) { r.Principal = decimal.Zero }, wantErr: true},
		{name: "negative principal", mutate: func(r *LoanRecord) { r.Principal = dec(t, "-10") }, wantErr: true},
		{name: "zero rate", mutate: func(r *LoanRecord) { r.Rate = decimal.Zero }, wantErr: true},
		{name: "zero term", mutate: func(r *LoanRecord) { r.Term = 0 }, wantErr: true},
		{name: "missing year", mutate: func(r *LoanRecord) { r.OriginYear = 0 }, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := complete
			tc.mutate(&rec)
			err := rec.Validate()
			if tc.wantErr && err == nil {
				t.Error("want a validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if rec.Complete() != (err == nil) {
				t.Error("Complete() disagrees with Validate()")
			}
		})
	}
}

func TestLoanRecordExpireYear(t *testing.T) {
	testCases := []struct {
		term int
		want int
	}{
		{term: 1, want: 2024},
		{term: 3, want: 2026},
		{term: 30, want: 2053},
	}
	for _, tc := range testCases {
		rec := LoanRecord{OriginYear: 2024, Term: tc.term}
		if got := rec.ExpireYear(); got != tc.want {
			t.Errorf("term %d: ExpireYear() = %d, want %d", tc.term, got, tc.want)
		}
	}
}

func TestRegisterAppendOrUpdate(t *testing.T) {
	reg := NewRegister()
	reg.Append(loanD1())
	reg.Append(NewLoanRecord("D2", dec(t, "500"), dec(t, "0.04"), 10, 2025))

	// Same id overwrites in place.
	edited := loanD1()
	edited.Rate = dec(t, "0.06")
	if row := reg.AppendOrUpdate(edited); row != 0 {
		t.Errorf("update went to row %d, want 0", row)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	got, ok := reg.Get("D1")
	if !ok || !got.Rate.Equal(dec(t, "0.06")) {
		t.Errorf("Get(D1) = %v, %v", got, ok)
	}

	// The id is compared trimmed.
	padded := loanD1()
	padded.DebtID = " D1 "
	if row := reg.AppendOrUpdate(padded); row != 0 {
		t.Errorf("padded id went to row %d, want 0", row)
	}

	// A new id appends.
	if row := reg.AppendOrUpdate(NewLoanRecord("D3", dec(t, "50"), dec(t, "0.02"), 1, 2024)); row != 2 {
		t.Errorf("new record went to row %d, want 2", row)
	}
}

func TestRegisterRemove(t *testing.T) {
	reg := NewRegister()
	reg.Append(loanD1())
	reg.Append(NewLoanRecord("D2", dec(t, "500"), dec(t, "0.04"), 10, 2025))
	reg.Append(NewLoanRecord("D3", dec(t, "50"), dec(t, "0.02"), 1, 2024))

	if !reg.Remove("D2") {
		t.Fatal("Remove(D2) = false")
	}
	if reg.Remove("D2") {
		t.Error("second Remove(D2) = true")
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	// Remaining rows keep their order and stay addressable.
	if row, ok := reg.Row("D3"); !ok || row != 1 {
		t.Errorf("Row(D3) = %d, %v, want 1, true", row, ok)
	}
	if _, ok := reg.Get("D1"); !ok {
		t.Error("D1 vanished")
	}
}

func TestRegisterValidIDs(t *testing.T) {
	reg := NewRegister()
	reg.Append(loanD1())
	reg.Append(LoanRecord{DebtID: "  D2  "})  // incomplete but identified
	reg.Append(LoanRecord{Principal: one})    // no id at all
	reg.Append(LoanRecord{DebtID: "\t"})      // blank id

	got := reg.ValidIDs()
	want := map[string]bool{"D1": true, "D2": true}
	if len(got) != len(want) {
		t.Fatalf("ValidIDs() = %v, want %v", got, want)
	}
	for id := range want {
		if !got[id] {
			t.Errorf("ValidIDs() misses %q", id)
		}
	}
}

func TestRegisterRecordsOrder(t *testing.T) {
	reg := NewRegister()
	ids := []string{"D3", "D1", "D2"}
	for _, id := range ids {
		reg.Append(NewLoanRecord(id, dec(t, "100"), dec(t, "0.05"), 1, 2024))
	}
	var got []string
	for row, rec := range reg.Records() {
		if want, _ := reg.At(row); !want.Equal(rec) {
			t.Errorf("row %d yields %v, At() returns %v", row, rec, want)
		}
		got = append(got, rec.DebtID)
	}
	for i, id := range ids {
		if got[i] != id {
			t.Errorf("Records()[%d] = %s, want %s: register order is the user's order", i, got[i], id)
		}
	}
}
