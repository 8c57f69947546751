package debtbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Percent float64

// NewPercent turns a per-period rate (0.05) into its percent form (5%).
func NewPercent(rate decimal.Decimal) Percent {
	return Percent(rate.InexactFloat64() * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
