package model

import "strings"

// AccountType classifies accounts for statement placement.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeIncome    AccountType = "Income"
	AccountTypeExpense   AccountType = "Expense"
	AccountTypeOther     AccountType = "Other"
)

// AccountTypes lists the known types in statement order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
	AccountTypeOther,
}

// IsBalanceSheet reports whether the type belongs on the balance sheet.
func (t AccountType) IsBalanceSheet() bool {
	return t == AccountTypeAsset || t == AccountTypeLiability || t == AccountTypeEquity
}

// IsResult reports whether the type belongs on the income statement.
func (t AccountType) IsResult() bool {
	return t == AccountTypeIncome || t == AccountTypeExpense
}

// Account is one entry of the exported chart of accounts.
// Type holds the raw tag from the export, possibly empty.
type Account struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
}

// DisplayName returns the account name, or "Account <number>" when it has none.
func (a Account) DisplayName() string {
	if strings.TrimSpace(a.Name) != "" {
		return a.Name
	}
	return SyntheticName(a.Number)
}

// SyntheticName is the name given to accounts missing from the chart.
func SyntheticName(number string) string {
	return "Account " + number
}
