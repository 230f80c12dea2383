package export

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/report"
)

// TransactionLine is one flattened transaction.
type TransactionLine struct {
	Verification string          `json:"verification"`
	Date         string          `json:"date"`
	Account      string          `json:"account"`
	AccountName  string          `json:"account_name"`
	Amount       decimal.Decimal `json:"amount"`
	Text         string          `json:"text"`
}

// MonthlyAggregate sums one account's transactions per YYYYMM.
type MonthlyAggregate struct {
	Account       string                     `json:"account"`
	Name          string                     `json:"name"`
	MonthlyTotals map[string]decimal.Decimal `json:"monthly_totals"`
	Total         decimal.Decimal            `json:"total"`
}

// Transactions carries samples and either the full list or monthly aggregates.
type Transactions struct {
	Count      int                `json:"transaction_count"`
	Samples    []TransactionLine  `json:"transaction_samples"`
	All        []TransactionLine  `json:"all_transactions,omitempty"`
	Aggregates []MonthlyAggregate `json:"transaction_aggregates,omitempty"`
}

func flatten(rc *report.Context) []TransactionLine {
	var out []TransactionLine
	for _, v := range rc.Doc.Verifications {
		ref := id.FormatVerificationRef(v.ID, v.Series, v.Number)
		for _, t := range v.Transactions {
			name := t.AccountName
			if name == "" {
				name = rc.Chart.Lookup(t.Account, accounts.BASRanges).Name
			}
			out = append(out, TransactionLine{
				Verification: ref,
				Date:         fiscal.NormalizeDate(v.EffectiveDate(t)),
				Account:      t.Account,
				AccountName:  name,
				Amount:       t.Amount.Decimal,
				Text:         v.EffectiveText(t),
			})
		}
	}
	return out
}

// Sample picks at most max lines spread evenly over all.
func Sample(all []TransactionLine, max int) []TransactionLine {
	if max <= 0 {
		return nil
	}
	if len(all) <= max {
		return all
	}
	step := len(all) / max
	out := make([]TransactionLine, 0, max)
	for i := 0; i < len(all) && len(out) < max; i += step {
		out = append(out, all[i])
	}
	return out
}

// Aggregate sums lines per account and month, ordered by account.
func Aggregate(lines []TransactionLine) []MonthlyAggregate {
	byAccount := make(map[string]*MonthlyAggregate)
	for _, l := range lines {
		agg, ok := byAccount[l.Account]
		if !ok {
			agg = &MonthlyAggregate{
				Account:       l.Account,
				Name:          l.AccountName,
				MonthlyTotals: make(map[string]decimal.Decimal),
				Total:         decimal.Zero,
			}
			byAccount[l.Account] = agg
		}
		month := "unknown"
		if len(l.Date) >= 6 {
			month = l.Date[:6]
		}
		agg.MonthlyTotals[month] = agg.MonthlyTotals[month].Add(l.Amount)
		agg.Total = agg.Total.Add(l.Amount)
	}

	nums := make([]string, 0, len(byAccount))
	for num := range byAccount {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return id.LessAccount(nums[i], nums[j]) })
	out := make([]MonthlyAggregate, 0, len(nums))
	for _, num := range nums {
		out = append(out, *byAccount[num])
	}
	return out
}

func buildTransactions(rc *report.Context, sampleSize, fullListLimit int) *Transactions {
	all := flatten(rc)
	out := &Transactions{
		Count:   len(all),
		Samples: Sample(all, sampleSize),
	}
	if out.Samples == nil {
		out.Samples = []TransactionLine{}
	}
	if len(all) <= fullListLimit {
		out.All = all
	} else {
		out.Aggregates = Aggregate(all)
	}
	return out
}
