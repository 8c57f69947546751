package debtbook

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("simple object", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 1)
		w.Append("b", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":1,"b":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("a", 0) // assess that a zero value is actually added.
		w.Optional("b", "")
		w.Optional("c", 0)
		w.Optional("d", "hello")
		w.Optional("e", decimal.Decimal{})
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"a":0,"d":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("unquoted decimals", func(t *testing.T) {
		// The codecs rely on the package-wide unquoted marshaling so the
		// stored lines read as plain numbers.
		var w jsonObjectWriter
		w.Append("rate", decimal.NewFromFloat(0.05))
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"rate":0.05}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
