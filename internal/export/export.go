// Package export flattens the derived reports into one document for LLM analysis.
package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/siereport/internal/analysis"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/logger"
	"github.com/cleared-dev/siereport/internal/report"
)

// Flags select the optional export sections. A section whose flag is off is
// left out entirely.
type Flags struct {
	IncludeSummary       bool `yaml:"include_summary" json:"include_summary"`
	IncludeIncome        bool `yaml:"include_income" json:"include_income"`
	IncludeBalance       bool `yaml:"include_balance" json:"include_balance"`
	IncludeLedger        bool `yaml:"include_ledger" json:"include_ledger"`
	IncludeKeyRatios     bool `yaml:"include_key_ratios" json:"include_key_ratios"`
	IncludePreviousYears bool `yaml:"include_previous_years" json:"include_previous_years"`
	IncludeTransactions  bool `yaml:"include_transactions" json:"include_transactions"`
}

// AllFlags turns every section on.
func AllFlags() Flags {
	return Flags{
		IncludeSummary:       true,
		IncludeIncome:        true,
		IncludeBalance:       true,
		IncludeLedger:        true,
		IncludeKeyRatios:     true,
		IncludePreviousYears: true,
		IncludeTransactions:  true,
	}
}

// Defaults for transaction sampling.
const (
	DefaultSampleSize    = 20
	DefaultFullListLimit = 500
)

// Options control an export.
type Options struct {
	Flags
	Report        report.Options
	SampleSize    int
	FullListLimit int
	Description   string
	ID            string
	Now           time.Time
}

// CompanyInfo identifies the company.
type CompanyInfo struct {
	Name               string `json:"name"`
	OrganizationNumber string `json:"organization_number"`
	FiscalYear         string `json:"fiscal_year"`
}

// Export is the flattened LLM-oriented document.
type Export struct {
	ExportID          string                  `json:"export_id"`
	CompanyInfo       CompanyInfo             `json:"company_info"`
	GeneratedAt       string                  `json:"generated_at"`
	Currency          string                  `json:"currency"`
	AccountingContext AccountingContext       `json:"accounting_context"`
	UserDescription   string                  `json:"user_description,omitempty"`
	AnalysisHints     *AnalysisHints          `json:"analysis_hints,omitempty"`
	Summary           *Summary                `json:"summary,omitempty"`
	IncomeStatement   *report.IncomeStatement `json:"income_statement,omitempty"`
	BalanceSheet      *report.BalanceSheet    `json:"balance_sheet,omitempty"`
	Ledger            *AggregatedLedger       `json:"ledger,omitempty"`
	AccountBalances   *AccountBalances        `json:"account_balances,omitempty"`
	KeyRatios         *analysis.Ratios        `json:"key_ratios,omitempty"`
	History           *analysis.History       `json:"history,omitempty"`
	Transactions      *Transactions           `json:"transactions,omitempty"`
	Errors            []*report.SectionError  `json:"errors,omitempty"`
}

// Build assembles the export. Each section is built in isolation; a failing
// section is logged, listed under Errors, and left out.
func Build(ctx context.Context, rc *report.Context, opts Options) *Export {
	log := logger.FromContext(ctx)
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultSampleSize
	}
	if opts.FullListLimit <= 0 {
		opts.FullListLimit = DefaultFullListLimit
	}

	meta := rc.Doc.Metadata
	out := &Export{
		ExportID: opts.ID,
		CompanyInfo: CompanyInfo{
			Name:               orUnknown(meta.CompanyName),
			OrganizationNumber: orUnknown(meta.OrganizationNumber),
			FiscalYear:         fiscal.Label(meta),
		},
		GeneratedAt:       opts.Now.UTC().Format(time.RFC3339),
		Currency:          rc.Currency,
		AccountingContext: accountingContext(),
	}

	fail := func(err error) {
		var se *report.SectionError
		if !errors.As(err, &se) {
			se = &report.SectionError{Section: "unknown", Message: err.Error()}
		}
		log.Error().Str("section", se.Section).Msg(se.Message)
		out.Errors = append(out.Errors, se)
	}

	var is *report.IncomeStatement
	income := func() (*report.IncomeStatement, error) {
		if is == nil {
			is = report.BuildIncomeStatement(rc, opts.Report)
		}
		return is, nil
	}

	if opts.IncludeSummary {
		if s, err := report.Isolate("summary", func() (*Summary, error) {
			st, _ := income()
			return buildSummary(rc, st), nil
		}); err != nil {
			fail(err)
		} else {
			out.Summary = s
		}
	}
	if opts.IncludeIncome {
		if v, err := report.Isolate("income_statement", income); err != nil {
			fail(err)
		} else {
			out.IncomeStatement = v
		}
	}
	if opts.IncludeBalance {
		if v, err := report.Isolate("balance_sheet", func() (*report.BalanceSheet, error) {
			return report.BuildBalanceSheet(rc, opts.Report), nil
		}); err != nil {
			fail(err)
		} else {
			out.BalanceSheet = v
		}
	}
	if opts.IncludeLedger {
		if v, err := report.Isolate("ledger", func() (*AggregatedLedger, error) {
			return buildAggregatedLedger(rc, opts.Report.Year), nil
		}); err != nil {
			fail(err)
		} else {
			out.Ledger = v
		}
		if v, err := report.Isolate("account_balances", func() (*AccountBalances, error) {
			return buildAccountBalances(rc, opts.Report.Year), nil
		}); err != nil {
			fail(err)
		} else {
			out.AccountBalances = v
		}
	}
	if opts.IncludeKeyRatios {
		if v, err := report.Isolate("key_ratios", func() (*analysis.Ratios, error) {
			return analysis.BuildRatios(rc, opts.Report), nil
		}); err != nil {
			fail(err)
		} else {
			out.KeyRatios = v
		}
	}
	if opts.IncludePreviousYears {
		if v, err := report.Isolate("history", func() (*analysis.History, error) {
			return analysis.BuildHistory(rc), nil
		}); err != nil {
			fail(err)
		} else {
			out.History = v
		}
	}
	if opts.IncludeTransactions {
		if v, err := report.Isolate("transactions", func() (*Transactions, error) {
			return buildTransactions(rc, opts.SampleSize, opts.FullListLimit), nil
		}); err != nil {
			fail(err)
		} else {
			out.Transactions = v
		}
	}
	if opts.Description != "" {
		out.UserDescription = opts.Description
		out.AnalysisHints = buildHints(opts.Description, rc.Doc.TransactionCount(), out.Summary)
	}

	log.Debug().Str("export_id", out.ExportID).Int("errors", len(out.Errors)).Msg("export built")
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// Section names accepted by ParseFlags.
const (
	SectionSummary       = "summary"
	SectionIncome        = "income"
	SectionBalance       = "balance"
	SectionLedger        = "ledger"
	SectionKeyRatios     = "key_ratios"
	SectionPreviousYears = "previous_years"
	SectionTransactions  = "transactions"
)

// ParseFlags turns on exactly the named sections.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case SectionSummary:
			f.IncludeSummary = true
		case SectionIncome:
			f.IncludeIncome = true
		case SectionBalance:
			f.IncludeBalance = true
		case SectionLedger:
			f.IncludeLedger = true
		case SectionKeyRatios:
			f.IncludeKeyRatios = true
		case SectionPreviousYears:
			f.IncludePreviousYears = true
		case SectionTransactions:
			f.IncludeTransactions = true
		default:
			return Flags{}, fmt.Errorf("unknown export section %q", n)
		}
	}
	return f, nil
}
