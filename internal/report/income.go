package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/model"
)

// IncomeStatement lists income and expense accounts by class.
// Account amounts keep their sign; display amounts are absolute.
type IncomeStatement struct {
	Header
	Income          Section          `json:"income"`
	Expenses        Section          `json:"expenses"`
	TotalIncome     decimal.Decimal  `json:"total_income"`
	TotalExpenses   decimal.Decimal  `json:"total_expenses"`
	NetResult       decimal.Decimal  `json:"net_result"`
	OperatingProfit decimal.Decimal  `json:"operating_profit"`
	ProfitBeforeTax *decimal.Decimal `json:"profit_before_tax,omitempty"`
}

// BuildIncomeStatement merges the export's income_statement lines with the
// accounts classified as Income or Expense, keyed by account number.
// Statement lines take precedence; other accounts use results[year] when
// present, else the aggregated closing balance.
func BuildIncomeStatement(ctx *Context, opts Options) *IncomeStatement {
	year := opts.year()
	balances := ctx.Balances(year)

	amounts := make(map[string]decimal.Decimal)
	for _, a := range ctx.Chart.All() {
		if !a.Type.IsResult() {
			continue
		}
		if v, ok := ctx.Doc.Results.Get(year, a.Number); ok {
			amounts[a.Number] = v
			continue
		}
		amounts[a.Number] = balances.Closing(a.Number)
	}

	is := ctx.Doc.IncomeStatement
	if is != nil && year == "0" {
		for num, line := range is.Income {
			amounts[num] = line.Amount.Decimal
		}
		for num, line := range is.Expenses {
			amounts[num] = line.Amount.Decimal
		}
	}

	var income, expenses []entry
	for num, amt := range amounts {
		acct := ctx.Chart.Lookup(num, accounts.BASRanges)
		e := entry{account: acct, amount: amt, display: true}
		switch {
		case is != nil && year == "0" && hasLine(is.Income, num):
			income = append(income, e)
		case is != nil && year == "0" && hasLine(is.Expenses, num):
			expenses = append(expenses, e)
		case acct.Type == model.AccountTypeIncome:
			income = append(income, e)
		case acct.Type == model.AccountTypeExpense:
			expenses = append(expenses, e)
		}
	}

	out := &IncomeStatement{
		Header:   ctx.header(year),
		Income:   group(income, opts.NonZeroOnly),
		Expenses: group(expenses, opts.NonZeroOnly),
	}
	out.TotalIncome = out.Income.Total.Abs()
	out.TotalExpenses = out.Expenses.Total
	out.NetResult = out.TotalIncome.Sub(out.TotalExpenses)
	out.OperatingProfit = decimal.Zero
	if is != nil && year == "0" {
		switch {
		case is.OperatingProfit != nil:
			out.OperatingProfit = is.OperatingProfit.Decimal
		case is.EBIT != nil:
			out.OperatingProfit = is.EBIT.Decimal
		}
		if is.ProfitBeforeTax != nil {
			pbt := is.ProfitBeforeTax.Decimal
			out.ProfitBeforeTax = &pbt
		}
	}
	return out
}

func hasLine(lines map[string]model.StatementLine, num string) bool {
	_, ok := lines[num]
	return ok
}
