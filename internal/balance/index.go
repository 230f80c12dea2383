// Package balance aggregates transactions and opening balances per account and year.
package balance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
)

// Posting is one transaction as seen from its account.
type Posting struct {
	Account      string          `json:"account"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Text         string          `json:"text"`
	Verification string          `json:"verification"`
	Year         string          `json:"year"`
	Seq          int             `json:"-"`
}

// Index maps account numbers to their postings. Built once per document.
type Index struct {
	byAccount map[string][]Posting
	total     int
}

// NewIndex scans all verifications once and attributes every transaction to
// the relative year whose fiscal range contains its date.
func NewIndex(doc *model.Document) *Index {
	ix := &Index{byAccount: make(map[string][]Posting)}
	for _, v := range doc.Verifications {
		ref := id.FormatVerificationRef(v.ID, v.Series, v.Number)
		for _, t := range v.Transactions {
			date := fiscal.NormalizeDate(v.EffectiveDate(t))
			p := Posting{
				Account:      t.Account,
				Amount:       t.Amount.Decimal,
				Date:         date,
				Text:         v.EffectiveText(t),
				Verification: ref,
				Year:         fiscal.AttributeYear(doc.Metadata, date),
				Seq:          ix.total,
			}
			ix.byAccount[t.Account] = append(ix.byAccount[t.Account], p)
			ix.total++
		}
	}
	return ix
}

// Postings returns an account's postings in a relative year, in document order.
// The current year "0" counts every posting; earlier and later years only
// those dated inside their own fiscal range.
func (ix *Index) Postings(account, year string) []Posting {
	if year == "0" {
		return ix.byAccount[account]
	}
	var out []Posting
	for _, p := range ix.byAccount[account] {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out
}

// All returns every posting of an account regardless of year.
func (ix *Index) All(account string) []Posting {
	return ix.byAccount[account]
}

// Accounts returns the account numbers with at least one posting in year, sorted.
func (ix *Index) Accounts(year string) []string {
	var out []string
	for acct, ps := range ix.byAccount {
		for _, p := range ps {
			if year == "0" || p.Year == year {
				out = append(out, acct)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return id.LessAccount(out[i], out[j]) })
	return out
}

// Years returns the relative years that have postings, sorted.
func (ix *Index) Years() []string {
	set := make(map[string]bool)
	for _, ps := range ix.byAccount {
		for _, p := range ps {
			set[p.Year] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	model.SortYearKeys(keys)
	return keys
}

// Len returns the number of indexed transactions.
func (ix *Index) Len() int {
	return ix.total
}

// SortByDate orders postings by date, keeping document order for equal dates.
func SortByDate(ps []Posting) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Date != ps[j].Date {
			return ps[i].Date < ps[j].Date
		}
		return ps[i].Seq < ps[j].Seq
	})
}
