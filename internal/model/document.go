package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when the export does not name one.
const DefaultCurrency = "SEK"

// FiscalYear is the date range of one relative year.
type FiscalYear struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Metadata describes the export. Every field may be absent.
type Metadata struct {
	CompanyName             string                `json:"company_name,omitempty"`
	OrganizationNumber      string                `json:"organization_number,omitempty"`
	Currency                string                `json:"currency,omitempty"`
	FinancialYearStart      string                `json:"financial_year_start,omitempty"`
	FinancialYearEnd        string                `json:"financial_year_end,omitempty"`
	CompanyFinancialYearEnd string                `json:"company_financial_year_end,omitempty"`
	FiscalYears             map[string]FiscalYear `json:"fiscal_years,omitempty"`
	Program                 string                `json:"program,omitempty"`
	ProgramVersion          string                `json:"program_version,omitempty"`
	GenerationDate          string                `json:"generation_date,omitempty"`
	FileName                string                `json:"file_name,omitempty"`
}

// CurrencyCode returns the export currency or DefaultCurrency.
func (m Metadata) CurrencyCode() string {
	if c := strings.TrimSpace(m.Currency); c != "" {
		return strings.ToUpper(c)
	}
	return DefaultCurrency
}

// BalanceMap maps a relative year key to per-account amounts.
type BalanceMap map[string]map[string]Amount

// Get returns the amount for an account in a year and whether it was present.
func (b BalanceMap) Get(year, account string) (decimal.Decimal, bool) {
	accts, ok := b[year]
	if !ok {
		return decimal.Zero, false
	}
	amt, ok := accts[account]
	if !ok {
		return decimal.Zero, false
	}
	return amt.Decimal, true
}

// Years returns the year keys sorted numerically; non-numeric keys sort last.
func (b BalanceMap) Years() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	SortYearKeys(keys)
	return keys
}

// SortYearKeys sorts relative year keys ascending by their integer value.
func SortYearKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// StatementLine is one account under income_statement.income or .expenses.
// The export writes either an object with name and amount or a bare amount.
type StatementLine struct {
	Name   string `json:"name,omitempty"`
	Amount Amount `json:"amount"`
}

// UnmarshalJSON accepts both the object and the bare amount form.
func (l *StatementLine) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var obj struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(data, &obj)
		l.Name = obj.Name
	}
	return l.Amount.UnmarshalJSON(data)
}

// IncomeStatementInput is the pre-computed income statement some exports carry.
type IncomeStatementInput struct {
	Income          map[string]StatementLine `json:"income,omitempty"`
	Expenses        map[string]StatementLine `json:"expenses,omitempty"`
	OperatingProfit *Amount                  `json:"operating_profit,omitempty"`
	EBIT            *Amount                  `json:"ebit,omitempty"`
	ProfitBeforeTax *Amount                  `json:"profit_before_tax,omitempty"`
}

// Document is a decoded bookkeeping export.
type Document struct {
	Metadata        Metadata              `json:"metadata"`
	Accounts        map[string]Account    `json:"accounts"`
	Verifications   []Verification        `json:"verifications"`
	OpeningBalances BalanceMap            `json:"opening_balances"`
	ClosingBalances BalanceMap            `json:"closing_balances"`
	Results         BalanceMap            `json:"results"`
	IncomeStatement *IncomeStatementInput `json:"income_statement,omitempty"`
}

// Normalize defaults missing collections and fills account numbers from map keys.
func (d *Document) Normalize() {
	if d.Accounts == nil {
		d.Accounts = make(map[string]Account)
	}
	for num, acct := range d.Accounts {
		if acct.Number == "" {
			acct.Number = num
			d.Accounts[num] = acct
		}
	}
	if d.Verifications == nil {
		d.Verifications = []Verification{}
	}
	if d.OpeningBalances == nil {
		d.OpeningBalances = BalanceMap{}
	}
	if d.ClosingBalances == nil {
		d.ClosingBalances = BalanceMap{}
	}
	if d.Results == nil {
		d.Results = BalanceMap{}
	}
}

// TransactionCount returns the number of transactions across all verifications.
func (d *Document) TransactionCount() int {
	n := 0
	for _, v := range d.Verifications {
		n += len(v.Transactions)
	}
	return n
}
