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

// TableRow holds one account's value per column; nil where the export has none.
type TableRow struct {
	Number string             `json:"account_number"`
	Name   string             `json:"account_name"`
	Values []*decimal.Decimal `json:"values"`
}

// TableTotals sums each column per balance sheet side.
type TableTotals struct {
	Assets               []decimal.Decimal `json:"assets"`
	LiabilitiesAndEquity []decimal.Decimal `json:"liabilities_and_equity"`
}

// Table is the balance history: IB and UB columns per year, one row per account.
type Table struct {
	Columns []fiscal.Column `json:"columns"`
	Rows    []TableRow      `json:"rows"`
	Totals  TableTotals     `json:"totals"`
}

// BuildTable lays out the export's opening and closing balances by calendar year.
func BuildTable(ctx *report.Context) *Table {
	doc := ctx.Doc
	cols := fiscal.Columns(doc.Metadata, ctx.Reference.Year, doc.OpeningBalances, doc.ClosingBalances)
	t := &Table{Columns: cols, Rows: []TableRow{}, Totals: TableTotals{
		Assets:               make([]decimal.Decimal, len(cols)),
		LiabilitiesAndEquity: make([]decimal.Decimal, len(cols)),
	}}
	if len(cols) == 0 {
		return t
	}

	rows := make(map[string]*TableRow)
	for i, c := range cols {
		src := doc.OpeningBalances
		if c.Kind == fiscal.Closing {
			src = doc.ClosingBalances
		}
		for num, amt := range src[strconv.Itoa(c.Relative)] {
			r, ok := rows[num]
			if !ok {
				r = &TableRow{
					Number: num,
					Name:   ctx.Chart.Lookup(num, accounts.BASRanges).Name,
					Values: make([]*decimal.Decimal, len(cols)),
				}
				rows[num] = r
			}
			v := amt.Decimal
			r.Values[i] = &v
		}
	}

	nums := make([]string, 0, len(rows))
	for num := range rows {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return id.LessAccount(nums[i], nums[j]) })
	for _, num := range nums {
		t.Rows = append(t.Rows, *rows[num])
	}
	for i := range cols {
		t.Totals.Assets[i] = t.ColumnTotal(ctx, i, model.AccountTypeAsset)
		t.Totals.LiabilitiesAndEquity[i] = t.ColumnTotal(ctx, i, model.AccountTypeLiability, model.AccountTypeEquity)
	}
	return t
}

// ColumnTotal sums the values of one column over rows of the given types.
func (t *Table) ColumnTotal(ctx *report.Context, col int, types ...model.AccountType) decimal.Decimal {
	want := make(map[model.AccountType]bool, len(types))
	for _, typ := range types {
		want[typ] = true
	}
	total := decimal.Zero
	for _, r := range t.Rows {
		if r.Values[col] == nil {
			continue
		}
		if len(types) > 0 && !want[ctx.Chart.Lookup(r.Number, accounts.BASRanges).BalanceSheetType()] {
			continue
		}
		total = total.Add(*r.Values[col])
	}
	return total
}
