// Package render turns reports into Markdown for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/siereport/internal/accounts"
	"github.com/cleared-dev/siereport/internal/analysis"
	"github.com/cleared-dev/siereport/internal/checks"
	"github.com/cleared-dev/siereport/internal/report"
)

// DefaultWidth is the word wrap used by Pretty.
const DefaultWidth = 100

type doc struct {
	b strings.Builder
}

func (d *doc) heading(level int, format string, args ...any) {
	fmt.Fprintf(&d.b, "%s %s\n\n", strings.Repeat("#", level), fmt.Sprintf(format, args...))
}

func (d *doc) para(format string, args ...any) {
	fmt.Fprintf(&d.b, format+"\n\n", args...)
}

// table writes a GFM table. Columns listed in right are right-aligned.
func (d *doc) table(header []string, right map[int]bool, rows [][]string) {
	d.row(header)
	align := make([]string, len(header))
	for i := range header {
		align[i] = "---"
		if right[i] {
			align[i] = "--:"
		}
	}
	d.row(align)
	for _, r := range rows {
		d.row(r)
	}
	d.b.WriteString("\n")
}

func (d *doc) row(cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	d.b.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

func (d *doc) String() string {
	return d.b.String()
}

func bold(s string) string {
	if s == "" {
		return s
	}
	return "**" + s + "**"
}

func company(h report.Header) string {
	name := h.Company
	if name == "" {
		name = "Unknown"
	}
	if h.OrganizationNumber != "" {
		name += " (" + h.OrganizationNumber + ")"
	}
	return name
}

// section renders one report section as a table with a subtotal per class.
func (d *doc) section(title string, s report.Section, currency string) {
	d.heading(2, "%s", title)
	var rows [][]string
	for _, cg := range s.Classes {
		rows = append(rows, []string{bold(cg.Key), bold(cg.Name), ""})
		for _, a := range cg.Accounts {
			amt := a.Amount
			if a.Display != nil {
				amt = *a.Display
			}
			name := a.Name
			if a.Synthesized {
				name += " *"
			}
			rows = append(rows, []string{a.Number, name, Amount(amt, currency)})
		}
		rows = append(rows, []string{"", "Summa " + cg.Key, Amount(cg.Total, currency)})
	}
	rows = append(rows, []string{"", bold("Summa " + strings.ToLower(title)), bold(Amount(s.Total, currency))})
	d.table([]string{"Konto", "Namn", "Belopp"}, map[int]bool{2: true}, rows)
}

// BalanceSheet renders a balance sheet.
func BalanceSheet(bs *report.BalanceSheet) string {
	var d doc
	d.heading(1, "Balansräkning")
	d.para("%s, per %s", company(bs.Header), bs.AsOfDate)
	d.section("Tillgångar", bs.Assets, bs.Currency)
	d.section("Skulder", bs.Liabilities, bs.Currency)
	d.section("Eget kapital", bs.Equity, bs.Currency)
	d.para("%s: %s", bold("Summa skulder och eget kapital"), Amount(bs.TotalLiabilitiesAndEquity, bs.Currency))
	return d.String()
}

// IncomeStatement renders an income statement.
func IncomeStatement(is *report.IncomeStatement) string {
	var d doc
	d.heading(1, "Resultaträkning")
	d.para("%s, %s till %s", company(is.Header), is.PeriodStart, is.PeriodEnd)
	d.section("Intäkter", is.Income, is.Currency)
	d.section("Kostnader", is.Expenses, is.Currency)

	rows := [][]string{
		{"Summa intäkter", Amount(is.TotalIncome, is.Currency)},
		{"Summa kostnader", Amount(is.TotalExpenses, is.Currency)},
		{"Rörelseresultat", Amount(is.OperatingProfit, is.Currency)},
	}
	if is.ProfitBeforeTax != nil {
		rows = append(rows, []string{"Resultat före skatt", Amount(*is.ProfitBeforeTax, is.Currency)})
	}
	rows = append(rows, []string{bold("Årets resultat"), bold(Amount(is.NetResult, is.Currency))})
	d.heading(2, "Resultat")
	d.table([]string{"Post", "Belopp"}, map[int]bool{1: true}, rows)
	return d.String()
}

// GeneralLedger renders every account of a general ledger with its rows.
func GeneralLedger(gl *report.GeneralLedger) string {
	var d doc
	d.heading(1, "Huvudbok")
	d.para("%s, %s till %s", company(gl.Header), gl.PeriodStart, gl.PeriodEnd)
	for _, a := range gl.Accounts {
		d.heading(2, "%s %s", a.Number, a.Name)
		rows := make([][]string, 0, len(a.Rows))
		for _, r := range a.Rows {
			amount := ""
			if r.Kind == report.RowTransaction {
				amount = Amount(r.Amount, gl.Currency)
			}
			rows = append(rows, []string{r.Date, r.Verification, r.Text, amount, Amount(r.Balance, gl.Currency)})
		}
		d.table([]string{"Datum", "Ver", "Text", "Belopp", "Saldo"}, map[int]bool{3: true, 4: true}, rows)
	}
	return d.String()
}

// History renders the multi-year history with key metrics per year.
func History(h *analysis.History) string {
	var d doc
	d.heading(1, "Historik")
	d.para("%s (%s), %s, %d år", h.CompanyName, h.OrganizationNumber, h.FiscalYear, h.YearsAnalyzed)
	for _, y := range h.Years {
		d.heading(2, "%s", y.YearLabel)
		if y.Closing != nil {
			d.table([]string{"Post", "Belopp"}, map[int]bool{1: true}, [][]string{
				{"Tillgångar", Amount(y.Closing.TotalAssets, h.Currency)},
				{"Skulder", Amount(y.Closing.TotalLiabilities, h.Currency)},
				{"Eget kapital", Amount(y.Closing.TotalEquity, h.Currency)},
			})
		}
		if y.Results != nil {
			d.table([]string{"Resultat", "Belopp"}, map[int]bool{1: true}, [][]string{
				{"Intäkter", Amount(y.Results.TotalIncome, h.Currency)},
				{"Kostnader", Amount(y.Results.TotalExpenses, h.Currency)},
				{"Årets resultat", Amount(y.Results.NetResult, h.Currency)},
			})
		}
		m := y.KeyMetrics
		d.table([]string{"Nyckeltal", "Värde"}, map[int]bool{1: true}, [][]string{
			{"Tillväxt tillgångar", m.AssetGrowth.String()},
			{"Tillväxt tillgångar %", m.AssetGrowthPercentage.String()},
			{"Tillväxt eget kapital", m.EquityGrowth.String()},
			{"Tillväxt eget kapital %", m.EquityGrowthPercentage.String()},
			{"Skuldsättningsgrad", m.DebtToEquityRatio.String()},
			{"Kassalikviditet", m.CurrentRatio.String()},
		})
	}
	return d.String()
}

// Table renders the balance history table, one column per IB/UB year.
func Table(t *analysis.Table, currency string) string {
	var d doc
	d.heading(1, "Saldon per år")
	header := []string{"Konto", "Namn"}
	right := make(map[int]bool)
	for i, c := range t.Columns {
		header = append(header, c.DisplayName)
		right[i+2] = true
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{r.Number, r.Name}
		for _, v := range r.Values {
			row = append(row, OptionalAmount(v, currency))
		}
		rows = append(rows, row)
	}
	for _, total := range []struct {
		label  string
		values []decimal.Decimal
	}{
		{"Summa tillgångar", t.Totals.Assets},
		{"Summa eget kapital och skulder", t.Totals.LiabilitiesAndEquity},
	} {
		row := []string{"", total.label}
		for _, v := range total.values {
			row = append(row, Amount(v, currency))
		}
		rows = append(rows, row)
	}
	d.table(header, right, rows)
	return d.String()
}

// Ratios renders the key ratios of one year.
func Ratios(r *analysis.Ratios) string {
	var d doc
	d.heading(1, "Nyckeltal")
	d.para("År %s", r.Year)
	f := func(v decimal.Decimal) string { return v.String() }
	d.table([]string{"Grupp", "Nyckeltal", "Värde"}, map[int]bool{2: true}, [][]string{
		{"Likviditet", "Balanslikviditet", f(r.Liquidity.CurrentRatio)},
		{"Likviditet", "Kassalikviditet", f(r.Liquidity.QuickRatio)},
		{"Soliditet", "Skuldsättningsgrad", f(r.Solvency.DebtToEquity)},
		{"Soliditet", "Soliditet", f(r.Solvency.EquityRatio)},
		{"Soliditet", "Skuldandel", f(r.Solvency.DebtRatio)},
		{"Lönsamhet", "Räntabilitet på totalt kapital", f(r.Profitability.ReturnOnAssets)},
		{"Lönsamhet", "Räntabilitet på eget kapital", f(r.Profitability.ReturnOnEquity)},
		{"Lönsamhet", "Vinstmarginal", f(r.Profitability.ProfitMargin)},
		{"Effektivitet", "Kapitalomsättningshastighet", f(r.Efficiency.AssetTurnover)},
	})
	return d.String()
}

// Findings renders validation findings, or a line saying there are none.
func Findings(findings []checks.Finding) string {
	var d doc
	d.heading(1, "Kontroller")
	if len(findings) == 0 {
		d.para("Inga avvikelser.")
		return d.String()
	}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{fmt.Sprint(f.Invariant), f.Ref, f.Description})
	}
	d.table([]string{"Kontroll", "Referens", "Beskrivning"}, nil, rows)
	return d.String()
}

// Accounts renders the classified chart of accounts.
func Accounts(accts []accounts.ClassifiedAccount) string {
	var d doc
	d.heading(1, "Kontoplan")
	rows := make([][]string, 0, len(accts))
	for _, a := range accts {
		synth := ""
		if a.Synthesized {
			synth = "ja"
		}
		rows = append(rows, []string{a.Number, a.Name, string(a.Type), a.ClassName, synth})
	}
	d.table([]string{"Konto", "Namn", "Typ", "Kontogrupp", "Saknas i kontoplan"}, nil, rows)
	return d.String()
}

// Pretty renders Markdown for a terminal using glamour.
func Pretty(markdown string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
