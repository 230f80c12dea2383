package accounts

import (
	"strings"

	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
)

// Range maps a half-open interval of account numbers to a type.
type Range struct {
	Lo, Hi int
	Type   model.AccountType
	Split  bool // liability/equity accounts later re-bucketed by class
}

// RangeTable is an ordered list of ranges; the first match wins.
type RangeTable []Range

// BASRanges is the first-digit BAS convention used for chart entries without a type tag.
var BASRanges = RangeTable{
	{Lo: 1000, Hi: 2000, Type: model.AccountTypeAsset},
	{Lo: 2000, Hi: 3000, Type: model.AccountTypeLiability, Split: true},
	{Lo: 3000, Hi: 4000, Type: model.AccountTypeIncome},
	{Lo: 4000, Hi: 9000, Type: model.AccountTypeExpense},
}

// BalanceSheetRanges places accounts missing from the chart on the balance sheet.
// 3xxx maps to Liability here, not Income; exports in the wild rely on it.
var BalanceSheetRanges = RangeTable{
	{Lo: 1000, Hi: 2000, Type: model.AccountTypeAsset},
	{Lo: 2000, Hi: 3000, Type: model.AccountTypeEquity},
	{Lo: 3000, Hi: 4000, Type: model.AccountTypeLiability},
}

// LedgerRanges types accounts that only appear in transactions.
var LedgerRanges = RangeTable{
	{Lo: 1000, Hi: 2000, Type: model.AccountTypeAsset},
	{Lo: 2000, Hi: 3000, Type: model.AccountTypeEquity},
	{Lo: 3000, Hi: 4000, Type: model.AccountTypeLiability},
	{Lo: 5000, Hi: 8000, Type: model.AccountTypeExpense},
}

// equityClasses are the liability/equity classes reported as equity.
var equityClasses = map[string]bool{"20": true, "21": true}

// Classification is the result of classifying one account number.
type Classification struct {
	Type      model.AccountType
	Class     string
	ClassName string
	Split     bool
	Explicit  bool
}

// Classify maps an account number and optional type tag to a classification.
// A recognised tag wins; otherwise the fallback table is consulted. Never fails.
func Classify(number, explicitType string, fallback RangeTable) Classification {
	class := id.AccountClass(number)
	c := Classification{Class: class, ClassName: ClassName(class)}
	if t, split, ok := NormalizeType(explicitType); ok {
		c.Type, c.Split, c.Explicit = t, split, true
		return c
	}
	r := fallback.lookup(number)
	c.Type, c.Split = r.Type, r.Split
	return c
}

// InferType applies a range table to an account number. Unmatched numbers are Other.
func InferType(number string, table RangeTable) model.AccountType {
	return table.lookup(number).Type
}

func (t RangeTable) lookup(number string) Range {
	n, ok := id.AccountInt(number)
	if ok {
		for _, r := range t {
			if n >= r.Lo && n < r.Hi {
				return r
			}
		}
	}
	return Range{Type: model.AccountTypeOther}
}

// SplitTypeLabel is the type tag of liability accounts later re-bucketed by class.
const SplitTypeLabel = "Liability/Equity"

// NormalizeType maps a raw type tag to an AccountType.
// "Liability/Equity" and its spellings classify as Liability with split set.
func NormalizeType(raw string) (t model.AccountType, split bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asset", "assets", "t":
		return model.AccountTypeAsset, false, true
	case "liability", "liabilities", "s":
		return model.AccountTypeLiability, false, true
	case "equity":
		return model.AccountTypeEquity, false, true
	case "income", "revenue", "i":
		return model.AccountTypeIncome, false, true
	case "expense", "expenses", "k":
		return model.AccountTypeExpense, false, true
	case "other":
		return model.AccountTypeOther, false, true
	case "liability/equity", "equity_or_liability", "liability_or_equity":
		return model.AccountTypeLiability, true, true
	}
	return "", false, false
}

// IsEquityClass reports whether a split liability/equity account in class belongs to equity.
func IsEquityClass(class string) bool {
	return equityClasses[class]
}
