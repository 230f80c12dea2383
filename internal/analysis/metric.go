// Package analysis derives multi-year history and financial ratios.
package analysis

import (
	"github.com/shopspring/decimal"
)

// NotAvailable is emitted for history metrics whose operands are zero.
const NotAvailable = "N/A"

// Metric is a number or the "N/A" marker.
type Metric struct {
	value decimal.Decimal
	ok    bool
}

// NA returns an unavailable metric.
func NA() Metric {
	return Metric{}
}

// Value returns an available metric.
func Value(d decimal.Decimal) Metric {
	return Metric{value: d, ok: true}
}

// Get returns the value and whether it is available.
func (m Metric) Get() (decimal.Decimal, bool) {
	return m.value, m.ok
}

func (m Metric) String() string {
	if !m.ok {
		return NotAvailable
	}
	return m.value.String()
}

// MarshalJSON writes a JSON number, or the string "N/A".
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte(`"` + NotAvailable + `"`), nil
	}
	return []byte(m.value.String()), nil
}
