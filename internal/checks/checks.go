// Package checks reports inconsistencies in a document without changing any
// derived number.
package checks

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/balance"
	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

// Invariants checked by Run.
const (
	InvariantBalancedVerification = 1
	InvariantAccountingEquation   = 2
	InvariantClosingBalance       = 3
	InvariantKnownAccount         = 4
	InvariantDateInFiscalYear     = 5
)

// Finding describes a single invariant violation.
type Finding struct {
	Invariant   int    `json:"invariant"`
	Ref         string `json:"ref"`
	Description string `json:"description"`
}

func (f Finding) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", f.Invariant, f.Ref, f.Description)
}

// Run checks the document for the given relative year.
func Run(ctx *report.Context, year string) []Finding {
	var out []Finding
	out = append(out, balancedVerifications(ctx.Doc)...)
	out = append(out, accountingEquation(ctx, year)...)
	out = append(out, closingBalances(ctx.Doc, ctx.Balances(year), year)...)
	out = append(out, knownAccounts(ctx)...)
	out = append(out, datesInFiscalYear(ctx.Doc)...)
	return out
}

// RunAllYears is Run with the year-dependent checks repeated for every
// relative year in the document. Year keys outside the accepted range are skipped.
func RunAllYears(ctx *report.Context) []Finding {
	var out []Finding
	out = append(out, balancedVerifications(ctx.Doc)...)
	all := balance.AggregateAll(ctx.Chart, ctx.Index, ctx.Doc)
	for _, year := range balance.Years(ctx.Doc, ctx.Index) {
		if _, ok := id.ParseRelativeYear(year); !ok {
			continue
		}
		out = append(out, accountingEquation(ctx, year)...)
		out = append(out, closingBalances(ctx.Doc, all[year], year)...)
	}
	out = append(out, knownAccounts(ctx)...)
	out = append(out, datesInFiscalYear(ctx.Doc)...)
	return out
}

// Invariant 1: every verification nets to zero.
func balancedVerifications(doc *model.Document) []Finding {
	var out []Finding
	for i, v := range doc.Verifications {
		sum := decimal.Zero
		for _, t := range v.Transactions {
			sum = sum.Add(t.Amount.Decimal)
		}
		if !sum.IsZero() {
			out = append(out, Finding{
				Invariant:   InvariantBalancedVerification,
				Ref:         verificationRef(v, i),
				Description: fmt.Sprintf("transactions sum to %s", sum.StringFixed(2)),
			})
		}
	}
	return out
}

// Invariant 2: balance sheet and income statement accounts sum to zero
// under the signed convention.
func accountingEquation(ctx *report.Context, year string) []Finding {
	opts := report.Options{Year: year, NonZeroOnly: false}
	bs := report.BuildBalanceSheet(ctx, opts)
	is := report.BuildIncomeStatement(ctx, opts)

	sheet := bs.Assets.Total.Add(bs.Liabilities.Total).Add(bs.Equity.Total)
	result := is.Income.Total.Add(is.Expenses.Total)
	diff := sheet.Add(result)
	if diff.IsZero() {
		return nil
	}
	return []Finding{{
		Invariant: InvariantAccountingEquation,
		Ref:       "year " + year,
		Description: fmt.Sprintf("assets %s + liabilities %s + equity %s - net result %s = %s",
			bs.Assets.Total.StringFixed(2), bs.Liabilities.Total.StringFixed(2), bs.Equity.Total.StringFixed(2),
			result.Neg().StringFixed(2), diff.StringFixed(2)),
	}}
}

// Invariant 3: closing balances in the export match opening + movement.
func closingBalances(doc *model.Document, computed balance.Balances, year string) []Finding {
	given, ok := doc.ClosingBalances[year]
	if !ok {
		return nil
	}

	nums := make([]string, 0, len(given))
	for num := range given {
		nums = append(nums, num)
	}
	sort.Slice(nums, func(i, j int) bool { return id.LessAccount(nums[i], nums[j]) })

	var out []Finding
	for _, num := range nums {
		want := given[num].Decimal
		got := computed.Closing(num)
		if !want.Equal(got) {
			out = append(out, Finding{
				Invariant:   InvariantClosingBalance,
				Ref:         "year " + year + " account " + num,
				Description: fmt.Sprintf("export closing %s != computed %s", want.StringFixed(2), got.StringFixed(2)),
			})
		}
	}
	return out
}

// Invariant 4: every referenced account is in the chart.
func knownAccounts(ctx *report.Context) []Finding {
	var out []Finding
	for _, a := range ctx.Chart.Synthesized() {
		out = append(out, Finding{
			Invariant:   InvariantKnownAccount,
			Ref:         "account " + a.Number,
			Description: fmt.Sprintf("not in chart of accounts, classified as %s", a.Type),
		})
	}
	return out
}

// Invariant 5: transaction dates fall inside a known fiscal year.
func datesInFiscalYear(doc *model.Document) []Finding {
	years := doc.Metadata.FiscalYears
	if len(years) == 0 {
		if doc.Metadata.FinancialYearStart == "" && doc.Metadata.FinancialYearEnd == "" {
			return nil
		}
		years = map[string]model.FiscalYear{"0": {
			StartDate: doc.Metadata.FinancialYearStart,
			EndDate:   doc.Metadata.FinancialYearEnd,
		}}
	}

	var out []Finding
	for i, v := range doc.Verifications {
		for _, t := range v.Transactions {
			date := v.EffectiveDate(t)
			if date == "" || inAny(years, date) {
				continue
			}
			out = append(out, Finding{
				Invariant:   InvariantDateInFiscalYear,
				Ref:         verificationRef(v, i),
				Description: fmt.Sprintf("date %s of account %s is outside every fiscal year", fiscal.FormatDate(date), t.Account),
			})
			break
		}
	}
	return out
}

func inAny(years map[string]model.FiscalYear, date string) bool {
	for _, fy := range years {
		if fiscal.InYear(fy, date) {
			return true
		}
	}
	return false
}

func verificationRef(v model.Verification, index int) string {
	if ref := id.FormatVerificationRef(v.ID, v.Series, v.Number); ref != "" {
		return ref
	}
	return fmt.Sprintf("#%d", index+1)
}
