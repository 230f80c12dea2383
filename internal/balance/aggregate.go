package balance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
)

// Aggregated is one account's balances for a relative year.
// Closing is always Opening + Movement.
type Aggregated struct {
	Number           string          `json:"number"`
	Opening          decimal.Decimal `json:"opening_balance"`
	Movement         decimal.Decimal `json:"movement"`
	Closing          decimal.Decimal `json:"closing_balance"`
	TransactionCount int             `json:"transaction_count"`
	Zero             bool            `json:"zero,omitempty"`
}

// Balances maps account numbers to their aggregation for one year.
type Balances map[string]Aggregated

// Aggregate computes opening, movement and closing for every account in the
// chart, in opening_balances[year], or with postings in year. Zero accounts
// are kept and flagged.
func Aggregate(chart *accounts.Service, ix *Index, opening model.BalanceMap, year string) Balances {
	numbers := make(map[string]bool)
	if chart != nil {
		for _, a := range chart.All() {
			numbers[a.Number] = true
		}
	}
	for num := range opening[year] {
		numbers[num] = true
	}
	for _, num := range ix.Accounts(year) {
		numbers[num] = true
	}

	out := make(Balances, len(numbers))
	for num := range numbers {
		agg := Aggregated{Number: num}
		for _, p := range ix.Postings(num, year) {
			agg.Movement = agg.Movement.Add(p.Amount)
			agg.TransactionCount++
		}
		if ob, ok := opening.Get(year, num); ok {
			agg.Opening = ob
		}
		agg.Closing = agg.Opening.Add(agg.Movement)
		agg.Zero = agg.Opening.IsZero() && agg.Movement.IsZero() && agg.Closing.IsZero()
		out[num] = agg
	}
	return out
}

// AggregateAll aggregates every relative year found in the balance maps,
// the fiscal years, or the postings.
func AggregateAll(chart *accounts.Service, ix *Index, doc *model.Document) map[string]Balances {
	out := make(map[string]Balances)
	for _, year := range Years(doc, ix) {
		out[year] = Aggregate(chart, ix, doc.OpeningBalances, year)
	}
	return out
}

// Years returns the sorted relative year keys present anywhere in the document.
func Years(doc *model.Document, ix *Index) []string {
	set := make(map[string]bool)
	for _, m := range []model.BalanceMap{doc.OpeningBalances, doc.ClosingBalances, doc.Results} {
		for k := range m {
			set[k] = true
		}
	}
	for k := range doc.Metadata.FiscalYears {
		set[k] = true
	}
	if ix != nil {
		for _, k := range ix.Years() {
			set[k] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	model.SortYearKeys(keys)
	return keys
}

// Sorted returns the aggregations ordered by account number.
func (b Balances) Sorted() []Aggregated {
	out := make([]Aggregated, 0, len(b))
	for _, a := range b {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return id.LessAccount(out[i].Number, out[j].Number) })
	return out
}

// Closing returns an account's closing balance, zero when absent.
func (b Balances) Closing(number string) decimal.Decimal {
	return b[number].Closing
}
