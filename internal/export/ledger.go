package export

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

// Export ledger categories, in output order.
const (
	CategoryAssets            = "Tillgångar"
	CategoryLiabilitiesEquity = "Skulder och Eget Kapital"
	CategoryIncome            = "Intäkter"
	CategoryExpenses          = "Kostnader"
	CategoryOther             = "Övrigt"
)

var categoryOrder = []string{CategoryAssets, CategoryLiabilitiesEquity, CategoryIncome, CategoryExpenses, CategoryOther}

func category(t model.AccountType) string {
	switch t {
	case model.AccountTypeAsset:
		return CategoryAssets
	case model.AccountTypeLiability, model.AccountTypeEquity:
		return CategoryLiabilitiesEquity
	case model.AccountTypeIncome:
		return CategoryIncome
	case model.AccountTypeExpense:
		return CategoryExpenses
	}
	return CategoryOther
}

// LedgerMetadata describes an aggregated ledger.
type LedgerMetadata struct {
	ReportType    string `json:"report_type"`
	CompanyName   string `json:"company_name"`
	FiscalYear    string `json:"fiscal_year"`
	AccountsCount int    `json:"accounts_count"`
	Description   string `json:"description"`
}

// LedgerEntry is one account of the aggregated ledger.
type LedgerEntry struct {
	Number            string          `json:"number"`
	Name              string          `json:"name"`
	Balance           decimal.Decimal `json:"balance"`
	TransactionsCount int             `json:"transactions_count"`
}

// LedgerClass groups accounts of one BAS class.
type LedgerClass struct {
	Key               string          `json:"key"`
	ClassName         string          `json:"class_name"`
	Accounts          []LedgerEntry   `json:"accounts"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalTransactions int             `json:"total_transactions"`
}

// LedgerCategory groups classes under a Swedish category heading.
type LedgerCategory struct {
	Category string        `json:"category"`
	Classes  []LedgerClass `json:"classes"`
}

// AggregatedLedger lists accounts with a non-zero balance and their
// transaction counts, without individual transactions.
type AggregatedLedger struct {
	AsOfDate   string           `json:"as_of_date"`
	Currency   string           `json:"currency"`
	Metadata   LedgerMetadata   `json:"metadata"`
	Categories []LedgerCategory `json:"data"`
}

func buildAggregatedLedger(rc *report.Context, year string) *AggregatedLedger {
	if year == "" {
		year = "0"
	}
	_, end := rc.Period(year)
	out := &AggregatedLedger{
		AsOfDate: end,
		Currency: rc.Currency,
		Metadata: LedgerMetadata{
			ReportType:  "Aggregated Ledger (Huvudbok)",
			CompanyName: orUnknown(rc.Doc.Metadata.CompanyName),
			FiscalYear:  fiscal.Label(rc.Doc.Metadata),
		},
		Categories: []LedgerCategory{},
	}

	byCategory := make(map[string]*LedgerCategory)
	for _, agg := range rc.Balances(year).Sorted() {
		if agg.Closing.IsZero() {
			continue
		}
		acct := rc.Chart.Lookup(agg.Number, accounts.BASRanges)
		name := category(acct.BalanceSheetType())
		cat, ok := byCategory[name]
		if !ok {
			cat = &LedgerCategory{Category: name}
			byCategory[name] = cat
		}

		key := acct.Class + "xx"
		idx := -1
		for i := range cat.Classes {
			if cat.Classes[i].Key == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			cat.Classes = append(cat.Classes, LedgerClass{Key: key, ClassName: acct.ClassName, TotalBalance: decimal.Zero})
			idx = len(cat.Classes) - 1
		}
		cls := &cat.Classes[idx]
		cls.Accounts = append(cls.Accounts, LedgerEntry{
			Number:            agg.Number,
			Name:              acct.Name,
			Balance:           agg.Closing,
			TransactionsCount: agg.TransactionCount,
		})
		cls.TotalBalance = cls.TotalBalance.Add(agg.Closing)
		cls.TotalTransactions += agg.TransactionCount
		out.Metadata.AccountsCount++
	}

	for _, name := range categoryOrder {
		if cat, ok := byCategory[name]; ok {
			out.Categories = append(out.Categories, *cat)
		}
	}
	out.Metadata.Description = fmt.Sprintf("Contains %d accounts with non-zero balances grouped by account class", out.Metadata.AccountsCount)
	return out
}

// BalanceEntry is one account's current saldo.
type BalanceEntry struct {
	Number      string            `json:"number"`
	Name        string            `json:"name"`
	AccountType model.AccountType `json:"account_type"`
	Saldo       decimal.Decimal   `json:"saldo"`
	Description string            `json:"description"`
}

// BalanceTotals sums saldos per account type.
type BalanceTotals struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
}

// AccountBalances lists current non-zero saldos with per-type totals.
type AccountBalances struct {
	AsOfDate    string         `json:"as_of_date"`
	Currency    string         `json:"currency"`
	Description string         `json:"description"`
	Metadata    LedgerMetadata `json:"metadata"`
	Accounts    []BalanceEntry `json:"accounts"`
	Totals      BalanceTotals  `json:"totals"`
}

// buildAccountBalances buckets liability/equity accounts by the sign of
// their saldo: negative is a liability, anything else equity.
func buildAccountBalances(rc *report.Context, year string) *AccountBalances {
	if year == "" {
		year = "0"
	}
	_, end := rc.Period(year)
	out := &AccountBalances{
		AsOfDate:    end,
		Currency:    rc.Currency,
		Description: "Current account balances as of " + end,
		Metadata: LedgerMetadata{
			ReportType:  "Account Balances (Kontosaldon)",
			CompanyName: orUnknown(rc.Doc.Metadata.CompanyName),
			FiscalYear:  fiscal.Label(rc.Doc.Metadata),
		},
		Accounts: []BalanceEntry{},
		Totals: BalanceTotals{
			Assets:      decimal.Zero,
			Liabilities: decimal.Zero,
			Equity:      decimal.Zero,
			Income:      decimal.Zero,
			Expenses:    decimal.Zero,
		},
	}

	for _, agg := range rc.Balances(year).Sorted() {
		saldo := agg.Closing
		if saldo.IsZero() {
			continue
		}
		acct := rc.Chart.Lookup(agg.Number, accounts.BASRanges)
		out.Accounts = append(out.Accounts, BalanceEntry{
			Number:      agg.Number,
			Name:        acct.Name,
			AccountType: acct.Type,
			Saldo:       saldo,
			Description: acct.ClassName,
		})

		t := &out.Totals
		switch {
		case acct.Type == model.AccountTypeAsset:
			t.Assets = t.Assets.Add(saldo)
		case acct.Type == model.AccountTypeLiability && acct.Split:
			if saldo.IsNegative() {
				t.Liabilities = t.Liabilities.Add(saldo)
			} else {
				t.Equity = t.Equity.Add(saldo)
			}
		case acct.Type == model.AccountTypeLiability:
			t.Liabilities = t.Liabilities.Add(saldo)
		case acct.Type == model.AccountTypeEquity:
			t.Equity = t.Equity.Add(saldo)
		case acct.Type == model.AccountTypeIncome:
			t.Income = t.Income.Add(saldo)
		case acct.Type == model.AccountTypeExpense:
			t.Expenses = t.Expenses.Add(saldo)
		}
	}
	out.Metadata.AccountsCount = len(out.Accounts)
	out.Metadata.Description = fmt.Sprintf("Contains %d accounts with non-zero balances", len(out.Accounts))
	return out
}
