package render

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/cleared-dev/siereport/internal/analysis"
	"github.com/cleared-dev/siereport/internal/checks"
	"github.com/cleared-dev/siereport/internal/model"
	"github.com/cleared-dev/siereport/internal/report"
)

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func fixtureContext(t *testing.T) *report.Context {
	t.Helper()
	data, err := os.ReadFile("../../testdata/document.json")
	require.NoError(t, err)
	var doc model.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	return report.NewContext(&doc, now)
}

// outline is what a rendered document looks like to a Markdown parser.
type outline struct {
	headings []string
	tables   int
	cells    []string
}

func parse(t *testing.T, md string) outline {
	t.Helper()
	src := []byte(md)
	p := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	root := p.Parse(text.NewReader(src))

	var o outline
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			o.headings = append(o.headings, inline(n, src))
		case *east.Table:
			o.tables++
		case *east.TableCell:
			o.cells = append(o.cells, inline(n, src))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return o
}

func inline(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func sek(s string) string {
	return Amount(decimal.RequireFromString(s), "SEK")
}

func TestAmount(t *testing.T) {
	assert.Equal(t, money.New(5800000, "SEK").Display(), sek("58000"))
	assert.Equal(t, money.New(-12346, "SEK").Display(), sek("-123.456"))
	assert.Equal(t, "1.50 XYZ", Amount(decimal.RequireFromString("1.5"), "XYZ"))
	assert.Equal(t, "-", OptionalAmount(nil, "SEK"))
}

func TestBalanceSheet(t *testing.T) {
	ctx := fixtureContext(t)
	md := BalanceSheet(report.BuildBalanceSheet(ctx, report.DefaultOptions()))
	o := parse(t, md)

	assert.Equal(t, []string{"Balansräkning", "Tillgångar", "Skulder", "Eget kapital"}, o.headings)
	assert.Equal(t, 3, o.tables)
	assert.Contains(t, o.cells, "Företagskonto")
	assert.Contains(t, o.cells, sek("58000"))
	assert.Contains(t, o.cells, "Summa 19xx")
	assert.Contains(t, md, "Exempelbolaget AB (556677-8899)")
	assert.Contains(t, md, "per 2022-12-31")
}

func TestIncomeStatement(t *testing.T) {
	ctx := fixtureContext(t)
	md := IncomeStatement(report.BuildIncomeStatement(ctx, report.DefaultOptions()))
	o := parse(t, md)

	assert.Equal(t, []string{"Resultaträkning", "Intäkter", "Kostnader", "Resultat"}, o.headings)
	assert.Contains(t, o.cells, "Försäljning 25%")
	assert.Contains(t, o.cells, sek("10000"))
	assert.Contains(t, o.cells, "Resultat före skatt")
	assert.Contains(t, o.cells, sek("5500"))
}

func TestGeneralLedger(t *testing.T) {
	ctx := fixtureContext(t)
	md := GeneralLedger(report.BuildGeneralLedger(ctx, report.DefaultOptions()))
	o := parse(t, md)

	assert.Equal(t, "Huvudbok", o.headings[0])
	assert.Contains(t, o.headings, "1930 Företagskonto")
	assert.Contains(t, o.cells, "Ingående balans")
	assert.Contains(t, o.cells, "Utgående balans")
	assert.Contains(t, o.cells, "B1")
	assert.Contains(t, o.cells, sek("62000"))
}

func TestHistoryAndRatios(t *testing.T) {
	ctx := fixtureContext(t)

	o := parse(t, History(analysis.BuildHistory(ctx)))
	assert.Equal(t, "Historik", o.headings[0])
	assert.Contains(t, o.cells, "Kassalikviditet")
	assert.Contains(t, o.cells, analysis.NotAvailable)

	o = parse(t, Ratios(analysis.BuildRatios(ctx, report.DefaultOptions())))
	assert.Equal(t, []string{"Nyckeltal"}, o.headings)
	assert.Equal(t, 1, o.tables)
	assert.Contains(t, o.cells, "Vinstmarginal")
	assert.Contains(t, o.cells, "0.55")
}

func TestTable(t *testing.T) {
	ctx := fixtureContext(t)
	tbl := analysis.BuildTable(ctx)
	o := parse(t, Table(tbl, ctx.Currency))

	assert.Equal(t, 1, o.tables)
	for _, c := range tbl.Columns {
		assert.Contains(t, o.cells, c.DisplayName)
	}
	assert.Contains(t, o.cells, "1930")
	assert.Contains(t, o.cells, "Summa tillgångar")
	assert.Contains(t, o.cells, "Summa eget kapital och skulder")
}

func TestFindings(t *testing.T) {
	assert.Contains(t, Findings(nil), "Inga avvikelser.")

	o := parse(t, Findings([]checks.Finding{{Invariant: 1, Ref: "A1", Description: "does not balance"}}))
	assert.Equal(t, 1, o.tables)
	assert.Contains(t, o.cells, "A1")
	assert.Contains(t, o.cells, "does not balance")
}

func TestAccounts(t *testing.T) {
	ctx := fixtureContext(t)
	o := parse(t, Accounts(ctx.Chart.All()))
	assert.Equal(t, []string{"Kontoplan"}, o.headings)
	assert.Contains(t, o.cells, "Aktiekapital")
	assert.Contains(t, o.cells, "Liability")
}

func TestPretty(t *testing.T) {
	out, err := Pretty("# Balansräkning\n\nExempelbolaget AB\n", 0)
	require.NoError(t, err)
	assert.Contains(t, out, "Exempelbolaget AB")
}
