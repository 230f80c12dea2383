package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siereport/internal/logger"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixtureContext(t *testing.T) *report.Context {
	t.Helper()
	data, err := os.ReadFile("../../testdata/document.json")
	require.NoError(t, err)
	var doc model.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return report.NewContext(&doc, now)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got)
}

func quietContext() context.Context {
	return logger.WithContext(context.Background(), logger.NewWithWriter(&bytes.Buffer{}, "error"))
}

func TestBuild_AllSections(t *testing.T) {
	rc := fixtureContext(t)
	out := Build(quietContext(), rc, Options{Flags: AllFlags(), Report: report.DefaultOptions(), Now: now})

	_, err := uuid.Parse(out.ExportID)
	assert.NoError(t, err)
	assert.Equal(t, "2026-03-01T12:00:00Z", out.GeneratedAt)
	assert.Equal(t, "Exempelbolaget AB", out.CompanyInfo.Name)
	assert.Equal(t, "556677-8899", out.CompanyInfo.OrganizationNumber)
	assert.Equal(t, "SEK", out.Currency)
	assert.NotEmpty(t, out.AccountingContext.Source)
	assert.Empty(t, out.Errors)

	require.NotNil(t, out.Summary)
	require.NotNil(t, out.IncomeStatement)
	require.NotNil(t, out.BalanceSheet)
	require.NotNil(t, out.Ledger)
	require.NotNil(t, out.AccountBalances)
	require.NotNil(t, out.KeyRatios)
	require.NotNil(t, out.History)
	require.NotNil(t, out.Transactions)
	assert.Nil(t, out.AnalysisHints)
	assert.Empty(t, out.UserDescription)
}

func TestBuild_FlagsOmitSections(t *testing.T) {
	rc := fixtureContext(t)
	out := Build(quietContext(), rc, Options{Flags: Flags{IncludeBalance: true}, ID: "fixed", Now: now})

	assert.Equal(t, "fixed", out.ExportID)
	assert.NotNil(t, out.BalanceSheet)
	assert.Nil(t, out.Summary)
	assert.Nil(t, out.IncomeStatement)
	assert.Nil(t, out.Ledger)
	assert.Nil(t, out.AccountBalances)
	assert.Nil(t, out.KeyRatios)
	assert.Nil(t, out.History)
	assert.Nil(t, out.Transactions)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "balance_sheet")
	assert.Contains(t, raw, "accounting_context")
	assert.NotContains(t, raw, "summary")
	assert.NotContains(t, raw, "transactions")
	assert.NotContains(t, raw, "errors")
}

func TestBuild_FailingSectionIsIsolated(t *testing.T) {
	rc := fixtureContext(t)
	rc.Chart = nil

	var logs bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&logs, "error"))
	out := Build(ctx, rc, Options{Flags: Flags{IncludeSummary: true, IncludeTransactions: true}, Now: now})

	assert.Nil(t, out.Summary)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, "summary", out.Errors[0].Section)
	assert.Equal(t, "transactions", out.Errors[1].Section)
	assert.NotEmpty(t, out.Errors[0].Message)
	assert.Contains(t, logs.String(), `"section":"summary"`)
}

func TestSummary(t *testing.T) {
	rc := fixtureContext(t)
	out := Build(quietContext(), rc, Options{Flags: Flags{IncludeSummary: true}, Now: now})
	s := out.Summary
	require.NotNil(t, s)

	assert.Equal(t, "Exempelbolaget AB", s.CompanyName)
	assert.Equal(t, "2022-01-01 to 2022-12-31", s.Period)
	assert.Equal(t, 9, s.TotalAccounts)
	assert.Equal(t, 4, s.TotalVerifications)
	assert.Equal(t, 11, s.TotalTransactions)
	assert.Equal(t, map[string]int{"Asset": 2, "Liability": 4, "Income": 1, "Expense": 2}, s.AccountTypes)
	assertDec(t, "10000", s.TotalIncome)
	assertDec(t, "4500", s.TotalExpenses)
	assertDec(t, "5500", s.NetResult)
}

func TestPeriod_Fallbacks(t *testing.T) {
	assert.Equal(t, "Unknown period", period(model.Metadata{}))
	assert.Equal(t, "2023-07-01 to Unknown", period(model.Metadata{FinancialYearStart: "2023-07-01"}))
}

func TestAggregatedLedger(t *testing.T) {
	rc := fixtureContext(t)
	l := buildAggregatedLedger(rc, "")

	assert.Equal(t, "2022-12-31", l.AsOfDate)
	assert.Equal(t, "Aggregated Ledger (Huvudbok)", l.Metadata.ReportType)
	assert.Equal(t, 6, l.Metadata.AccountsCount)

	var cats []string
	for _, c := range l.Categories {
		cats = append(cats, c.Category)
	}
	assert.Equal(t, []string{CategoryAssets, CategoryLiabilitiesEquity, CategoryIncome, CategoryExpenses}, cats)

	assets := l.Categories[0]
	require.Len(t, assets.Classes, 1)
	assert.Equal(t, "19xx", assets.Classes[0].Key)
	assertDec(t, "58000", assets.Classes[0].TotalBalance)
	assert.Equal(t, 3, assets.Classes[0].TotalTransactions)

	var keys []string
	for _, c := range l.Categories[1].Classes {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"20xx", "26xx"}, keys)

	for _, c := range l.Categories {
		for _, cls := range c.Classes {
			for _, a := range cls.Accounts {
				assert.False(t, a.Balance.IsZero(), "account %s has zero balance", a.Number)
			}
		}
	}
}

func TestAccountBalances(t *testing.T) {
	rc := fixtureContext(t)
	b := buildAccountBalances(rc, "0")

	assert.Equal(t, "Account Balances (Kontosaldon)", b.Metadata.ReportType)
	require.Len(t, b.Accounts, 6)
	assert.Equal(t, "1930", b.Accounts[0].Number)
	assert.Equal(t, "Företagskonto", b.Accounts[0].Name)
	assert.NotEmpty(t, b.Accounts[0].Description)

	assertDec(t, "58000", b.Totals.Assets)
	assertDec(t, "-52500", b.Totals.Liabilities)
	assertDec(t, "0", b.Totals.Equity)
	assertDec(t, "-10000", b.Totals.Income)
	assertDec(t, "4500", b.Totals.Expenses)
}

func TestTransactions_FullList(t *testing.T) {
	rc := fixtureContext(t)
	tx := buildTransactions(rc, DefaultSampleSize, DefaultFullListLimit)

	assert.Equal(t, 11, tx.Count)
	assert.Len(t, tx.Samples, 11)
	require.Len(t, tx.All, 11)
	assert.Nil(t, tx.Aggregates)

	first := tx.All[0]
	assert.Equal(t, "A1", first.Verification)
	assert.Equal(t, "20220115", first.Date)
	assert.Equal(t, "Kundfordringar", first.AccountName)
	assert.Equal(t, "Faktura 1001", first.Text)
	assertDec(t, "12500", first.Amount)
}

func TestTransactions_MonthlyAggregates(t *testing.T) {
	rc := fixtureContext(t)
	tx := buildTransactions(rc, 4, 5)

	assert.Equal(t, 11, tx.Count)
	assert.Len(t, tx.Samples, 4)
	assert.Nil(t, tx.All)

	var accts []string
	var cash MonthlyAggregate
	for _, a := range tx.Aggregates {
		accts = append(accts, a.Account)
		if a.Account == "1930" {
			cash = a
		}
	}
	assert.Equal(t, []string{"1510", "1930", "2611", "3001", "5010", "6110"}, accts)
	assertDec(t, "12000", cash.MonthlyTotals["202201"])
	assertDec(t, "-4000", cash.MonthlyTotals["202202"])
	assertDec(t, "8000", cash.Total)
}

func TestAggregate_UnknownMonth(t *testing.T) {
	got := Aggregate([]TransactionLine{
		{Account: "1930", Amount: decimal.NewFromInt(5)},
		{Account: "1930", Date: "20240301", Amount: decimal.NewFromInt(7)},
	})
	require.Len(t, got, 1)
	assertDec(t, "5", got[0].MonthlyTotals["unknown"])
	assertDec(t, "7", got[0].MonthlyTotals["202403"])
	assertDec(t, "12", got[0].Total)
}

func TestSample(t *testing.T) {
	lines := make([]TransactionLine, 10)
	for i := range lines {
		lines[i].Account = string(rune('a' + i))
	}
	got := Sample(lines, 3)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "d", "g"}, []string{got[0].Account, got[1].Account, got[2].Account})
	assert.Len(t, Sample(lines, 20), 10)
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"analyze", "profit", "cash", "flow", "please"},
		Keywords("Analyze the profit and cash flow for Q4, please. Profit!"))
	assert.Empty(t, Keywords(""))

	long := "alpha bravo charlie delta echoes foxtrot golf hotel india juliet kilo lima"
	assert.Len(t, Keywords(long), maxKeywords)
}

func TestBuild_DescriptionHints(t *testing.T) {
	rc := fixtureContext(t)
	out := Build(quietContext(), rc, Options{
		Flags:       Flags{IncludeSummary: true},
		Description: "Why is our cash position weak?",
		Now:         now,
	})
	assert.Equal(t, "Why is our cash position weak?", out.UserDescription)
	require.NotNil(t, out.AnalysisHints)
	assert.Equal(t, []string{"cash", "position", "weak"}, out.AnalysisHints.Keywords)
	assert.Equal(t, []string{FocusFinancialAnalysis}, out.AnalysisHints.FocusAreas)
}

func TestBuildHints_Focus(t *testing.T) {
	loss := &Summary{NetResult: decimal.NewFromInt(-1)}
	h := buildHints("nothing relevant here", 1001, loss)
	assert.Equal(t, []string{FocusTransactionVolume, FocusProfitability}, h.FocusAreas)

	h = buildHints("nothing relevant here", 10, nil)
	assert.Empty(t, h.FocusAreas)
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"summary", " Key_Ratios", "transactions"})
	require.NoError(t, err)
	assert.Equal(t, Flags{IncludeSummary: true, IncludeKeyRatios: true, IncludeTransactions: true}, f)

	f, err = ParseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, Flags{}, f)

	_, err = ParseFlags([]string{"summary", "cashflow"})
	assert.ErrorContains(t, err, `unknown export section "cashflow"`)
}
