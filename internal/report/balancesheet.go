package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/model"
)

// BalanceSheet lists asset, liability and equity closing balances by class.
type BalanceSheet struct {
	Header
	AsOfDate                  string          `json:"as_of_date"`
	Assets                    Section         `json:"assets"`
	Liabilities               Section         `json:"liabilities"`
	Equity                    Section         `json:"equity"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"total_liabilities_and_equity"`
}

// BuildBalanceSheet places every balance sheet account's closing balance.
// Accounts known only from opening balances are typed with BalanceSheetRanges.
// TotalLiabilitiesAndEquity is not compared with the asset total.
func BuildBalanceSheet(ctx *Context, opts Options) *BalanceSheet {
	year := opts.year()
	balances := ctx.Balances(year)

	buckets := make(map[model.AccountType][]entry)
	for _, agg := range balances.Sorted() {
		acct := ctx.Chart.Lookup(agg.Number, accounts.BalanceSheetRanges)
		if acct.Synthesized {
			if _, inOpening := ctx.Doc.OpeningBalances.Get(year, agg.Number); inOpening {
				acct = acct.WithFallback(accounts.BalanceSheetRanges)
			}
		}
		t := acct.BalanceSheetType()
		if !t.IsBalanceSheet() {
			continue
		}
		buckets[t] = append(buckets[t], entry{account: acct, amount: agg.Closing})
	}

	bs := &BalanceSheet{
		Header:      ctx.header(year),
		Assets:      group(buckets[model.AccountTypeAsset], opts.NonZeroOnly),
		Liabilities: group(buckets[model.AccountTypeLiability], opts.NonZeroOnly),
		Equity:      group(buckets[model.AccountTypeEquity], opts.NonZeroOnly),
	}
	bs.AsOfDate = bs.PeriodEnd
	bs.TotalLiabilitiesAndEquity = bs.Liabilities.Total.Add(bs.Equity.Total)
	return bs
}
