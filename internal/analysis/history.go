package analysis

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

// BalanceRow is one balance sheet account in a history year.
// Opening or closing is nil when the export has no value for it.
type BalanceRow struct {
	Number  string           `json:"account_number"`
	Name    string           `json:"account_name"`
	Opening *decimal.Decimal `json:"opening_balance"`
	Closing *decimal.Decimal `json:"closing_balance"`
}

// BalanceTotals sums one side (opening or closing) of a history year.
type BalanceTotals struct {
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
}

// ResultRow is one income or expense account in a history year.
type ResultRow struct {
	Number string          `json:"account_number"`
	Name   string          `json:"account_name"`
	Amount decimal.Decimal `json:"amount"`
}

// Results are the income statement totals of a history year. Account
// amounts are signed; TotalIncome is absolute, as on the income statement.
type Results struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetResult     decimal.Decimal `json:"net_result"`
	Income        []ResultRow     `json:"income_accounts"`
	Expenses      []ResultRow     `json:"expense_accounts"`
}

// KeyMetrics compare a year's opening and closing balances.
type KeyMetrics struct {
	AssetGrowth            Metric `json:"asset_growth"`
	AssetGrowthPercentage  Metric `json:"asset_growth_percentage"`
	EquityGrowth           Metric `json:"equity_growth"`
	EquityGrowthPercentage Metric `json:"equity_growth_percentage"`
	DebtToEquityRatio      Metric `json:"debt_to_equity_ratio"`
	CurrentRatio           Metric `json:"current_ratio"`
}

// YearHistory is everything known about one relative year.
type YearHistory struct {
	YearLabel    string         `json:"year_label"`
	RelativeYear string         `json:"relative_year"`
	ActualYear   int            `json:"actual_year"`
	Opening      *BalanceTotals `json:"opening_balances,omitempty"`
	Closing      *BalanceTotals `json:"closing_balances,omitempty"`
	Assets       []BalanceRow   `json:"assets"`
	Liabilities  []BalanceRow   `json:"liabilities"`
	Equity       []BalanceRow   `json:"equity"`
	Results      *Results       `json:"results,omitempty"`
	KeyMetrics   KeyMetrics     `json:"key_metrics"`
}

// History is the multi-year comparison, most recent year first.
type History struct {
	CompanyName        string        `json:"company_name"`
	OrganizationNumber string        `json:"organization_number"`
	FiscalYear         string        `json:"fiscal_year"`
	Currency           string        `json:"currency"`
	YearsAnalyzed      int           `json:"years_analyzed"`
	Years              []YearHistory `json:"balance_history"`
}

// BuildHistory collects every valid relative year of the opening, closing
// and results maps. Balances are taken from the export as given.
func BuildHistory(ctx *report.Context) *History {
	doc := ctx.Doc
	set := make(map[int]bool)
	for _, m := range []model.BalanceMap{doc.OpeningBalances, doc.ClosingBalances, doc.Results} {
		for key := range m {
			if rel, ok := id.ParseRelativeYear(key); ok {
				set[rel] = true
			}
		}
	}
	rels := make([]int, 0, len(set))
	for rel := range set {
		rels = append(rels, rel)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rels)))

	h := &History{
		CompanyName:        orUnknown(doc.Metadata.CompanyName),
		OrganizationNumber: orUnknown(doc.Metadata.OrganizationNumber),
		FiscalYear:         fiscal.Label(doc.Metadata),
		Currency:           ctx.Currency,
		YearsAnalyzed:      len(rels),
		Years:              make([]YearHistory, 0, len(rels)),
	}
	for _, rel := range rels {
		h.Years = append(h.Years, buildYear(ctx, rel))
	}
	return h
}

func buildYear(ctx *report.Context, rel int) YearHistory {
	key := strconv.Itoa(rel)
	actual := fiscal.ActualYear(ctx.Reference.Year, rel)
	y := YearHistory{
		YearLabel:    strconv.Itoa(actual),
		RelativeYear: key,
		ActualYear:   actual,
		Assets:       []BalanceRow{},
		Liabilities:  []BalanceRow{},
		Equity:       []BalanceRow{},
	}

	rows := make(map[string]*BalanceRow)
	types := make(map[string]model.AccountType)
	var order []string
	touch := func(num string) *BalanceRow {
		if r, ok := rows[num]; ok {
			return r
		}
		acct := ctx.Chart.Lookup(num, accounts.BASRanges)
		r := &BalanceRow{Number: num, Name: acct.Name}
		rows[num] = r
		types[num] = acct.BalanceSheetType()
		order = append(order, num)
		return r
	}

	if accts, ok := ctx.Doc.OpeningBalances[key]; ok {
		totals := &BalanceTotals{}
		for num, amt := range accts {
			if !ctx.Chart.Lookup(num, accounts.BASRanges).BalanceSheetType().IsBalanceSheet() {
				continue
			}
			v := amt.Decimal
			touch(num).Opening = &v
			totals.add(types[num], v)
		}
		y.Opening = totals
	}
	if accts, ok := ctx.Doc.ClosingBalances[key]; ok {
		totals := &BalanceTotals{}
		for num, amt := range accts {
			if !ctx.Chart.Lookup(num, accounts.BASRanges).BalanceSheetType().IsBalanceSheet() {
				continue
			}
			v := amt.Decimal
			touch(num).Closing = &v
			totals.add(types[num], v)
		}
		y.Closing = totals
	}

	sort.Slice(order, func(i, j int) bool { return id.LessAccount(order[i], order[j]) })
	for _, num := range order {
		switch types[num] {
		case model.AccountTypeAsset:
			y.Assets = append(y.Assets, *rows[num])
		case model.AccountTypeLiability:
			y.Liabilities = append(y.Liabilities, *rows[num])
		case model.AccountTypeEquity:
			y.Equity = append(y.Equity, *rows[num])
		}
	}

	if accts, ok := ctx.Doc.Results[key]; ok {
		y.Results = buildResults(ctx, accts)
	}
	y.KeyMetrics = keyMetrics(y)
	return y
}

func (t *BalanceTotals) add(typ model.AccountType, v decimal.Decimal) {
	switch typ {
	case model.AccountTypeAsset:
		t.TotalAssets = t.TotalAssets.Add(v)
	case model.AccountTypeLiability:
		t.TotalLiabilities = t.TotalLiabilities.Add(v)
	case model.AccountTypeEquity:
		t.TotalEquity = t.TotalEquity.Add(v)
	}
}

func buildResults(ctx *report.Context, accts map[string]model.Amount) *Results {
	r := &Results{Income: []ResultRow{}, Expenses: []ResultRow{}}
	nums := make([]string, 0, len(accts))
	for num := range accts {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return id.LessAccount(nums[i], nums[j]) })
	for _, num := range nums {
		acct := ctx.Chart.Lookup(num, accounts.BASRanges)
		row := ResultRow{Number: num, Name: acct.Name, Amount: accts[num].Decimal}
		switch acct.Type {
		case model.AccountTypeIncome:
			r.Income = append(r.Income, row)
			r.TotalIncome = r.TotalIncome.Add(row.Amount)
		case model.AccountTypeExpense:
			r.Expenses = append(r.Expenses, row)
			r.TotalExpenses = r.TotalExpenses.Add(row.Amount)
		}
	}
	r.TotalIncome = r.TotalIncome.Abs()
	r.NetResult = r.TotalIncome.Sub(r.TotalExpenses)
	return r
}

var hundred = decimal.NewFromInt(100)

// keyMetrics is computed only when the year has non-zero opening and closing
// asset totals; each ratio is also "N/A" when either of its operands is zero.
func keyMetrics(y YearHistory) KeyMetrics {
	km := KeyMetrics{
		AssetGrowth:            NA(),
		AssetGrowthPercentage:  NA(),
		EquityGrowth:           NA(),
		EquityGrowthPercentage: NA(),
		DebtToEquityRatio:      NA(),
		CurrentRatio:           NA(),
	}
	if y.Opening == nil || y.Closing == nil || y.Opening.TotalAssets.IsZero() || y.Closing.TotalAssets.IsZero() {
		return km
	}
	open, closing := y.Opening, y.Closing

	km.AssetGrowth = Value(closing.TotalAssets.Sub(open.TotalAssets))
	km.AssetGrowthPercentage = growth(open.TotalAssets, closing.TotalAssets)
	km.EquityGrowth = Value(closing.TotalEquity.Sub(open.TotalEquity))
	km.EquityGrowthPercentage = growth(open.TotalEquity, closing.TotalEquity)
	if !closing.TotalLiabilities.IsZero() && !closing.TotalEquity.IsZero() {
		km.DebtToEquityRatio = Value(closing.TotalLiabilities.Div(closing.TotalEquity).Round(2))
	}
	km.CurrentRatio = currentRatio(y)
	return km
}

func growth(from, to decimal.Decimal) Metric {
	if from.IsZero() || to.IsZero() {
		return NA()
	}
	return Value(to.Sub(from).Div(from.Abs()).Mul(hundred).Round(2))
}

// currentRatio divides closing 1xxx assets by closing 2xxx liabilities.
func currentRatio(y YearHistory) Metric {
	var assets, liabilities decimal.Decimal
	for _, r := range y.Assets {
		if r.Closing != nil && len(r.Number) > 0 && r.Number[0] == '1' {
			assets = assets.Add(*r.Closing)
		}
	}
	for _, r := range y.Liabilities {
		if r.Closing != nil && len(r.Number) > 0 && r.Number[0] == '2' {
			liabilities = liabilities.Add(*r.Closing)
		}
	}
	if assets.IsZero() || liabilities.IsZero() {
		return NA()
	}
	return Value(assets.Div(liabilities).Round(2))
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
