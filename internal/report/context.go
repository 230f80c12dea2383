// Package report builds the balance sheet, income statement and general ledger.
package report

import (
	"time"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/balance"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/model"
)

// Context holds everything derived once per document. Builders read it and
// never modify it.
type Context struct {
	Doc       *model.Document
	Chart     *accounts.Service
	Index     *balance.Index
	Reference fiscal.Resolution
	Currency  string
}

// NewContext classifies every account and indexes every transaction.
// doc is normalized in place.
func NewContext(doc *model.Document, now time.Time) *Context {
	doc.Normalize()
	return &Context{
		Doc:       doc,
		Chart:     accounts.Build(doc),
		Index:     balance.NewIndex(doc),
		Reference: fiscal.ResolveReferenceYear(doc.Metadata, doc.ClosingBalances, now),
		Currency:  doc.Metadata.CurrencyCode(),
	}
}

// Options select the year and filtering of a report.
type Options struct {
	Year        string
	NonZeroOnly bool
}

// DefaultOptions reports the current year without zero accounts.
func DefaultOptions() Options {
	return Options{Year: "0", NonZeroOnly: true}
}

func (o Options) year() string {
	if o.Year == "" {
		return "0"
	}
	return o.Year
}

// Balances aggregates the given relative year.
func (c *Context) Balances(year string) balance.Balances {
	return balance.Aggregate(c.Chart, c.Index, c.Doc.OpeningBalances, year)
}

// ActualYear converts a relative year key to a calendar year.
func (c *Context) ActualYear(year string) int {
	return fiscal.ActualYearOf(c.Reference.Year, year)
}

// Period returns the start and end date of a relative year.
func (c *Context) Period(year string) (start, end string) {
	return fiscal.Range(c.Doc.Metadata, c.Reference.Year, year)
}

// Header is common to every report.
type Header struct {
	Company            string `json:"company_name"`
	OrganizationNumber string `json:"organization_number,omitempty"`
	Currency           string `json:"currency"`
	Year               string `json:"year"`
	ActualYear         int    `json:"actual_year"`
	PeriodStart        string `json:"period_start"`
	PeriodEnd          string `json:"period_end"`
}

func (c *Context) header(year string) Header {
	start, end := c.Period(year)
	return Header{
		Company:            c.Doc.Metadata.CompanyName,
		OrganizationNumber: c.Doc.Metadata.OrganizationNumber,
		Currency:           c.Currency,
		Year:               year,
		ActualYear:         c.ActualYear(year),
		PeriodStart:        start,
		PeriodEnd:          end,
	}
}
