package export

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/fiscal"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

// Summary gives the size and result of the document at a glance.
type Summary struct {
	CompanyName        string          `json:"company_name"`
	Period             string          `json:"period"`
	TotalAccounts      int             `json:"total_accounts"`
	TotalVerifications int             `json:"total_verifications"`
	TotalTransactions  int             `json:"total_transactions"`
	AccountTypes       map[string]int  `json:"account_types"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetResult          decimal.Decimal `json:"net_result"`
}

func buildSummary(rc *report.Context, is *report.IncomeStatement) *Summary {
	doc := rc.Doc
	types := make(map[string]int)
	for _, t := range model.AccountTypes {
		for _, a := range rc.Chart.ByType(t) {
			if !a.Synthesized {
				types[string(t)]++
			}
		}
	}
	return &Summary{
		CompanyName:        orUnknown(doc.Metadata.CompanyName),
		Period:             period(doc.Metadata),
		TotalAccounts:      len(doc.Accounts),
		TotalVerifications: len(doc.Verifications),
		TotalTransactions:  doc.TransactionCount(),
		AccountTypes:       types,
		TotalIncome:        is.TotalIncome,
		TotalExpenses:      is.TotalExpenses,
		NetResult:          is.NetResult,
	}
}

// period describes the current fiscal year as "start to end".
func period(meta model.Metadata) string {
	if fy, ok := meta.FiscalYears["0"]; ok {
		return orUnknown(fiscal.FormatDate(fy.StartDate)) + " to " + orUnknown(fiscal.FormatDate(fy.EndDate))
	}
	if meta.FinancialYearStart != "" || meta.FinancialYearEnd != "" {
		return orUnknown(meta.FinancialYearStart) + " to " + orUnknown(meta.FinancialYearEnd)
	}
	return "Unknown period"
}
