package accounts

import (
	"sort"

	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
)

// ClassifiedAccount is an account with its resolved type and BAS class.
type ClassifiedAccount struct {
	Number      string            `json:"number"`
	Name        string            `json:"name"`
	Type        model.AccountType `json:"type"`
	Class       string            `json:"account_class"`
	ClassName   string            `json:"class_name"`
	Split       bool              `json:"split,omitempty"`
	Explicit    bool              `json:"-"`
	Synthesized bool              `json:"synthesized,omitempty"`
}

// BalanceSheetType returns the balance sheet bucket. Split accounts in
// classes 20 and 21 move to Equity.
func (a ClassifiedAccount) BalanceSheetType() model.AccountType {
	if a.Split && a.Type == model.AccountTypeLiability && IsEquityClass(a.Class) {
		return model.AccountTypeEquity
	}
	return a.Type
}

// WithFallback re-types a synthesized account with a builder's own range table.
// Accounts from the chart are returned unchanged.
func (a ClassifiedAccount) WithFallback(table RangeTable) ClassifiedAccount {
	if !a.Synthesized {
		return a
	}
	r := table.lookup(a.Number)
	a.Type, a.Split = r.Type, r.Split
	return a
}

// Service provides in-memory lookup over the classified chart of accounts.
type Service struct {
	accounts []ClassifiedAccount
	byNumber map[string]ClassifiedAccount
}

// NewService creates a Service from classified accounts, sorted by number.
func NewService(accts []ClassifiedAccount) *Service {
	sorted := make([]ClassifiedAccount, len(accts))
	copy(sorted, accts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return id.LessAccount(sorted[i].Number, sorted[j].Number)
	})
	byNumber := make(map[string]ClassifiedAccount, len(sorted))
	for _, a := range sorted {
		byNumber[a.Number] = a
	}
	return &Service{accounts: sorted, byNumber: byNumber}
}

// Build classifies every account number the document mentions, once.
//
// Chart entries use their type tag or the BAS first-digit convention.
// Accounts listed only under income_statement.income or .expenses default to
// Income or Expense. Anything else seen in transactions or balance maps is
// synthesized with the BAS convention and flagged.
func Build(doc *model.Document) *Service {
	seen := make(map[string]ClassifiedAccount)

	for key, acct := range doc.Accounts {
		num := acct.Number
		if num == "" {
			num = key
		}
		acct.Number = num
		c := Classify(num, acct.Type, BASRanges)
		seen[num] = fromClassification(num, acct.DisplayName(), c, false)
	}

	if is := doc.IncomeStatement; is != nil {
		addStatementLines(seen, is.Income, model.AccountTypeIncome)
		addStatementLines(seen, is.Expenses, model.AccountTypeExpense)
	}

	synth := func(num, name string) {
		if num == "" {
			return
		}
		if _, ok := seen[num]; ok {
			return
		}
		if name == "" {
			name = model.SyntheticName(num)
		}
		seen[num] = fromClassification(num, name, Classify(num, "", BASRanges), true)
	}
	for _, v := range doc.Verifications {
		for _, t := range v.Transactions {
			synth(t.Account, t.AccountName)
		}
	}
	for _, m := range []model.BalanceMap{doc.OpeningBalances, doc.ClosingBalances, doc.Results} {
		for _, year := range m.Years() {
			for num := range m[year] {
				synth(num, "")
			}
		}
	}

	list := make([]ClassifiedAccount, 0, len(seen))
	for _, a := range seen {
		list = append(list, a)
	}
	return NewService(list)
}

func addStatementLines(seen map[string]ClassifiedAccount, lines map[string]model.StatementLine, t model.AccountType) {
	for num, line := range lines {
		if existing, ok := seen[num]; ok {
			if !existing.Explicit && !existing.Type.IsResult() {
				existing.Type, existing.Split = t, false
				seen[num] = existing
			}
			continue
		}
		name := line.Name
		if name == "" {
			name = model.SyntheticName(num)
		}
		class := id.AccountClass(num)
		seen[num] = ClassifiedAccount{
			Number:    num,
			Name:      name,
			Type:      t,
			Class:     class,
			ClassName: ClassName(class),
		}
	}
}

func fromClassification(number, name string, c Classification, synthesized bool) ClassifiedAccount {
	return ClassifiedAccount{
		Number:      number,
		Name:        name,
		Type:        c.Type,
		Class:       c.Class,
		ClassName:   c.ClassName,
		Split:       c.Split,
		Explicit:    c.Explicit,
		Synthesized: synthesized,
	}
}

// All returns all accounts ordered by number.
func (s *Service) All() []ClassifiedAccount {
	return s.accounts
}

// Get returns an account by number.
func (s *Service) Get(number string) (ClassifiedAccount, bool) {
	a, ok := s.byNumber[number]
	return a, ok
}

// Lookup returns the account, or a synthesized one classified with table.
func (s *Service) Lookup(number string, table RangeTable) ClassifiedAccount {
	if a, ok := s.byNumber[number]; ok {
		return a
	}
	return fromClassification(number, model.SyntheticName(number), Classify(number, "", table), true)
}

// Exists reports whether an account number exists.
func (s *Service) Exists(number string) bool {
	_, ok := s.byNumber[number]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []ClassifiedAccount {
	var result []ClassifiedAccount
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Synthesized returns the accounts that were missing from the chart.
func (s *Service) Synthesized() []ClassifiedAccount {
	var result []ClassifiedAccount
	for _, a := range s.accounts {
		if a.Synthesized {
			result = append(result, a)
		}
	}
	return result
}
