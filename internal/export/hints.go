package export

import "strings"

const maxKeywords = 10

var stopWords = map[string]bool{
	"and": true, "the": true, "to": true, "a": true, "in": true,
	"for": true, "of": true, "with": true, "on": true, "at": true,
	"och": true, "att": true, "för": true, "med": true, "som": true,
}

var financialTerms = map[string]bool{
	"profit": true, "loss": true, "revenue": true, "income": true, "expense": true,
	"cost": true, "margin": true, "balance": true, "asset": true, "liability": true,
	"equity": true, "cash": true, "flow": true,
	"vinst": true, "förlust": true, "intäkter": true, "kostnader": true, "likviditet": true,
}

// Focus areas suggested to the reader of an export.
const (
	FocusFinancialAnalysis = "financial_analysis"
	FocusTransactionVolume = "transaction_volume_analysis"
	FocusProfitability     = "profitability_concerns"
)

const highTransactionVolume = 1000

// AnalysisHints steer an LLM towards what the user asked about.
type AnalysisHints struct {
	Keywords   []string `json:"keywords"`
	FocusAreas []string `json:"focus_areas"`
}

// Keywords returns up to ten distinct lower-cased words longer than three
// letters, skipping common words.
func Keywords(description string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, w := range strings.Fields(strings.ToLower(description)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		if len([]rune(w)) <= 3 || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

func buildHints(description string, transactionCount int, summary *Summary) *AnalysisHints {
	h := &AnalysisHints{Keywords: Keywords(description), FocusAreas: []string{}}
	for _, kw := range h.Keywords {
		if financialTerms[kw] {
			h.FocusAreas = append(h.FocusAreas, FocusFinancialAnalysis)
			break
		}
	}
	if transactionCount > highTransactionVolume {
		h.FocusAreas = append(h.FocusAreas, FocusTransactionVolume)
	}
	if summary != nil && summary.NetResult.IsNegative() {
		h.FocusAreas = append(h.FocusAreas, FocusProfitability)
	}
	return h
}
