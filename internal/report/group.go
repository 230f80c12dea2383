package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/id"
)

// AccountLine is one account within a class group.
type AccountLine struct {
	Number      string           `json:"number"`
	Name        string           `json:"name"`
	Amount      decimal.Decimal  `json:"amount"`
	Display     *decimal.Decimal `json:"display_amount,omitempty"`
	Synthesized bool             `json:"synthesized,omitempty"`
}

// ClassGroup sums the accounts of one BAS class.
type ClassGroup struct {
	Class    string          `json:"class"`
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Accounts []AccountLine   `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// Section is one type of a report, grouped by class.
type Section struct {
	Classes []ClassGroup    `json:"classes"`
	Total   decimal.Decimal `json:"total"`
}

type entry struct {
	account accounts.ClassifiedAccount
	amount  decimal.Decimal
	display bool
}

// group sums entries by class. Totals always cover every entry; with
// nonZeroOnly, zero lines and empty classes are left out of the listing.
func group(entries []entry, nonZeroOnly bool) Section {
	sort.SliceStable(entries, func(i, j int) bool {
		return id.LessAccount(entries[i].account.Number, entries[j].account.Number)
	})

	sec := Section{Classes: []ClassGroup{}, Total: decimal.Zero}
	byClass := make(map[string]int)
	for _, e := range entries {
		sec.Total = sec.Total.Add(e.amount)

		idx, ok := byClass[e.account.Class]
		if !ok {
			sec.Classes = append(sec.Classes, ClassGroup{
				Class:    e.account.Class,
				Key:      e.account.Class + "xx",
				Name:     e.account.ClassName,
				Accounts: []AccountLine{},
				Total:    decimal.Zero,
			})
			idx = len(sec.Classes) - 1
			byClass[e.account.Class] = idx
		}
		cg := &sec.Classes[idx]
		cg.Total = cg.Total.Add(e.amount)

		if nonZeroOnly && e.amount.IsZero() {
			continue
		}
		line := AccountLine{
			Number:      e.account.Number,
			Name:        e.account.Name,
			Amount:      e.amount,
			Synthesized: e.account.Synthesized,
		}
		if e.display {
			abs := e.amount.Abs()
			line.Display = &abs
		}
		cg.Accounts = append(cg.Accounts, line)
	}

	if nonZeroOnly {
		kept := sec.Classes[:0]
		for _, cg := range sec.Classes {
			if len(cg.Accounts) > 0 {
				kept = append(kept, cg)
			}
		}
		sec.Classes = kept
	}
	sort.SliceStable(sec.Classes, func(i, j int) bool {
		return id.LessAccount(sec.Classes[i].Class, sec.Classes[j].Class)
	})
	return sec
}

// Lines returns every listed account line of the section.
func (s Section) Lines() []AccountLine {
	var out []AccountLine
	for _, cg := range s.Classes {
		out = append(out, cg.Accounts...)
	}
	return out
}
