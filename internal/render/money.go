package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount formats a decimal in the currency's conventions, rounded to the
// currency's minor unit. Unknown currencies fall back to two decimals and the code.
func Amount(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.StringFixed(2) + " " + currency
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := d.Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// OptionalAmount formats d, or a dash when it is absent.
func OptionalAmount(d *decimal.Decimal, currency string) string {
	if d == nil {
		return "-"
	}
	return Amount(*d, currency)
}
