package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/balance"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/model"
)

// Row kinds of a ledger account.
const (
	RowOpening     = "opening"
	RowTransaction = "transaction"
	RowClosing     = "closing"
)

// LedgerRow is one line of an account's ledger with its running balance.
type LedgerRow struct {
	Kind         string          `json:"kind"`
	Date         string          `json:"date"`
	Verification string          `json:"verification,omitempty"`
	Text         string          `json:"text"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
}

// LedgerAccount is the ledger of one account for a year.
type LedgerAccount struct {
	Number           string            `json:"number"`
	Name             string            `json:"name"`
	Type             model.AccountType `json:"type"`
	Class            string            `json:"account_class"`
	ClassName        string            `json:"class_name"`
	OpeningBalance   decimal.Decimal   `json:"opening_balance"`
	Movement         decimal.Decimal   `json:"movement"`
	ClosingBalance   decimal.Decimal   `json:"closing_balance"`
	TransactionCount int               `json:"transaction_count"`
	Rows             []LedgerRow       `json:"rows"`
}

// GeneralLedger lists every account with at least one transaction in the year.
type GeneralLedger struct {
	Header
	Accounts []LedgerAccount `json:"accounts"`
}

// BuildGeneralLedger threads a running balance from the opening balance
// through the year's transactions, sorted by date.
func BuildGeneralLedger(ctx *Context, opts Options) *GeneralLedger {
	year := opts.year()
	gl := &GeneralLedger{Header: ctx.header(year), Accounts: []LedgerAccount{}}

	for _, num := range ctx.Index.Accounts(year) {
		acct := ctx.Chart.Lookup(num, accounts.LedgerRanges).WithFallback(accounts.LedgerRanges)
		opening := LedgerOpening(ctx.Doc.OpeningBalances, year, num)

		postings := ctx.Index.Postings(num, year)
		balance.SortByDate(postings)

		la := LedgerAccount{
			Number:           num,
			Name:             acct.Name,
			Type:             acct.Type,
			Class:            acct.Class,
			ClassName:        acct.ClassName,
			OpeningBalance:   opening,
			Movement:         decimal.Zero,
			TransactionCount: len(postings),
			Rows:             make([]LedgerRow, 0, len(postings)+2),
		}
		la.Rows = append(la.Rows, LedgerRow{
			Kind:    RowOpening,
			Date:    gl.PeriodStart,
			Text:    "Ingående balans",
			Amount:  opening,
			Balance: opening,
		})

		running := opening
		for _, p := range postings {
			running = running.Add(p.Amount)
			la.Movement = la.Movement.Add(p.Amount)
			la.Rows = append(la.Rows, LedgerRow{
				Kind:         RowTransaction,
				Date:         fiscal.FormatDate(p.Date),
				Verification: p.Verification,
				Text:         p.Text,
				Amount:       p.Amount,
				Balance:      running,
			})
		}

		la.ClosingBalance = running
		la.Rows = append(la.Rows, LedgerRow{
			Kind:    RowClosing,
			Date:    gl.PeriodEnd,
			Text:    "Utgående balans",
			Amount:  running,
			Balance: running,
		})
		gl.Accounts = append(gl.Accounts, la)
	}
	return gl
}

// LedgerOpening returns the opening balance of an account for a year. When
// the year has no entry for the account, the earliest year that does is
// used; zero when none has.
func LedgerOpening(opening model.BalanceMap, year, number string) decimal.Decimal {
	if v, ok := opening.Get(year, number); ok {
		return v
	}
	for _, y := range opening.Years() {
		if v, ok := opening.Get(y, number); ok {
			return v
		}
	}
	return decimal.Zero
}
