package analysis

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/report"
)

// Ratio precision in decimal places.
const ratioPlaces = 4

var (
	currentAssetClasses     = map[string]bool{"14": true, "15": true, "16": true, "17": true, "18": true, "19": true}
	quickAssetClasses       = map[string]bool{"15": true, "16": true, "17": true, "19": true}
	currentLiabilityClasses = map[string]bool{"24": true, "25": true, "26": true, "27": true, "28": true, "29": true}
)

// Liquidity ratios.
type Liquidity struct {
	CurrentRatio decimal.Decimal `json:"current_ratio"`
	QuickRatio   decimal.Decimal `json:"quick_ratio"`
}

// Solvency ratios.
type Solvency struct {
	DebtToEquity decimal.Decimal `json:"debt_to_equity"`
	EquityRatio  decimal.Decimal `json:"equity_ratio"`
	DebtRatio    decimal.Decimal `json:"debt_ratio"`
}

// Profitability ratios.
type Profitability struct {
	ReturnOnAssets decimal.Decimal `json:"return_on_assets"`
	ReturnOnEquity decimal.Decimal `json:"return_on_equity"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
}

// Efficiency ratios.
type Efficiency struct {
	AssetTurnover decimal.Decimal `json:"asset_turnover"`
}

// Ratios groups the financial ratios of one year. A ratio whose
// denominator is zero is 0.
type Ratios struct {
	Year          string        `json:"year"`
	Liquidity     Liquidity     `json:"liquidity"`
	Solvency      Solvency      `json:"solvency"`
	Profitability Profitability `json:"profitability"`
	Efficiency    Efficiency    `json:"efficiency"`
}

// CalculateRatios derives ratios from a balance sheet and income statement
// using their signed totals.
func CalculateRatios(bs *report.BalanceSheet, is *report.IncomeStatement) *Ratios {
	assets := bs.Assets.Total
	liabilities := bs.Liabilities.Total
	equity := bs.Equity.Total
	revenue := is.TotalIncome
	net := is.NetResult

	currentAssets := classSum(bs.Assets, currentAssetClasses)
	quickAssets := classSum(bs.Assets, quickAssetClasses)
	currentLiabilities := classSum(bs.Liabilities, currentLiabilityClasses)

	return &Ratios{
		Year: bs.Year,
		Liquidity: Liquidity{
			CurrentRatio: safeDiv(currentAssets, currentLiabilities),
			QuickRatio:   safeDiv(quickAssets, currentLiabilities),
		},
		Solvency: Solvency{
			DebtToEquity: safeDiv(liabilities, equity),
			EquityRatio:  safeDiv(equity, assets),
			DebtRatio:    safeDiv(liabilities, assets),
		},
		Profitability: Profitability{
			ReturnOnAssets: safeDiv(net, assets),
			ReturnOnEquity: safeDiv(net, equity),
			ProfitMargin:   safeDiv(net, revenue),
		},
		Efficiency: Efficiency{
			AssetTurnover: safeDiv(revenue, assets),
		},
	}
}

// BuildRatios builds the statements for opts and derives their ratios.
func BuildRatios(ctx *report.Context, opts report.Options) *Ratios {
	return CalculateRatios(report.BuildBalanceSheet(ctx, opts), report.BuildIncomeStatement(ctx, opts))
}

func classSum(sec report.Section, classes map[string]bool) decimal.Decimal {
	sum := decimal.Zero
	for _, cg := range sec.Classes {
		if classes[cg.Class] {
			sum = sum.Add(cg.Total)
		}
	}
	return sum
}

func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, ratioPlaces)
}
