package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siereport/internal/model"
)

func TestBuildIncomeStatement(t *testing.T) {
	is := BuildIncomeStatement(fixtureContext(t), DefaultOptions())

	assertDec(t, "10000", is.TotalIncome)
	assertDec(t, "4500", is.TotalExpenses)
	assertDec(t, "5500", is.NetResult)
	assertDec(t, "5500", is.OperatingProfit)
	require.NotNil(t, is.ProfitBeforeTax)
	assertDec(t, "5500", *is.ProfitBeforeTax)

	require.Len(t, is.Expenses.Classes, 2)
	assert.Equal(t, "Lokalkostnader", is.Expenses.Classes[0].Name)
	assert.Equal(t, "Kontorsmaterial och trycksaker", is.Expenses.Classes[1].Name)
}

func TestBuildIncomeStatement_UnnamedIncomeLine(t *testing.T) {
	doc := &model.Document{
		IncomeStatement: &model.IncomeStatementInput{
			Income: map[string]model.StatementLine{"3001": {Amount: model.MustAmount("-5000")}},
		},
	}
	is := BuildIncomeStatement(NewContext(doc, now), DefaultOptions())

	assertDec(t, "5000", is.TotalIncome)
	assertDec(t, "-5000", is.Income.Total)
	lines := is.Income.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Account 3001", lines[0].Name)
	assertDec(t, "-5000", lines[0].Amount)
	require.NotNil(t, lines[0].Display)
	assertDec(t, "5000", *lines[0].Display)
	assertDec(t, "5000", is.NetResult)
}

func TestBuildIncomeStatement_MergesSourcesWithoutDuplicates(t *testing.T) {
	doc := &model.Document{
		Accounts: map[string]model.Account{
			"3001": {Name: "Försäljning", Type: "Income"},
			"3740": {Name: "Öresavrundning", Type: "Income"},
		},
		Verifications: []model.Verification{{Transactions: []model.Transaction{
			{Account: "3740", Amount: model.MustAmount("-1")},
			{Account: "3001", Amount: model.MustAmount("-999")},
		}}},
		IncomeStatement: &model.IncomeStatementInput{
			Income: map[string]model.StatementLine{"3001": {Amount: model.MustAmount("-2000")}},
		},
	}
	is := BuildIncomeStatement(NewContext(doc, now), DefaultOptions())

	lines := is.Income.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "3001", lines[0].Number)
	assertDec(t, "-2000", lines[0].Amount)
	assertDec(t, "-1", lines[1].Amount)
	assertDec(t, "2001", is.TotalIncome)
}

func TestBuildIncomeStatement_OperatingProfitPrefersCanonicalField(t *testing.T) {
	op := model.MustAmount("100")
	ebit := model.MustAmount("200")
	doc := &model.Document{IncomeStatement: &model.IncomeStatementInput{OperatingProfit: &op, EBIT: &ebit}}
	is := BuildIncomeStatement(NewContext(doc, now), DefaultOptions())
	assertDec(t, "100", is.OperatingProfit)
	assert.Nil(t, is.ProfitBeforeTax)
}

func TestBuildIncomeStatement_PriorYearUsesResults(t *testing.T) {
	doc := loadFixture(t)
	doc.Results["-1"] = map[string]model.Amount{"3001": model.MustAmount("-8000"), "5010": model.MustAmount("3000")}
	is := BuildIncomeStatement(NewContext(doc, now), Options{Year: "-1", NonZeroOnly: true})

	assertDec(t, "8000", is.TotalIncome)
	assertDec(t, "3000", is.TotalExpenses)
	assertDec(t, "0", is.OperatingProfit)
}
