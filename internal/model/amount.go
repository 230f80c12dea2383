package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value decoded leniently from an export.
// Bare numbers, numeric strings and objects carrying an "amount" field are
// accepted; anything else decodes to zero instead of failing.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// MustAmount parses s with ParseAmount. Intended for fixtures and tests.
func MustAmount(s string) Amount {
	return Amount{Decimal: ParseAmount(s)}
}

// UnmarshalJSON never returns an error: malformed values become zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Decimal = parseRaw(data)
	return nil
}

// MarshalJSON writes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func parseRaw(data []byte) decimal.Decimal {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return decimal.Zero
	}
	switch data[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return decimal.Zero
		}
		raw, ok := obj["amount"]
		if !ok {
			return decimal.Zero
		}
		return parseRaw(raw)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return decimal.Zero
		}
		return ParseAmount(s)
	default:
		return ParseAmount(string(data))
	}
}

// ParseAmount parses a numeric string, accepting a decimal comma and
// thousands separated by spaces. When both a dot and a comma occur, the last
// one is the decimal separator and the other groups thousands. Unparseable
// input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero
	}
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot > comma:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
