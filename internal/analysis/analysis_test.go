package analysis

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func assertMetric(t *testing.T, want string, m Metric) {
	t.Helper()
	v, ok := m.Get()
	if want == NotAvailable {
		assert.False(t, ok, "want N/A, got %s", v)
		return
	}
	require.True(t, ok, "want %s, got N/A", want)
	assert.True(t, decimal.RequireFromString(want).Equal(v), "want %s got %s", want, v)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s got %s", want, got)
}
