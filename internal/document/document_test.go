package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siereport/internal/logger"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatHJSON, FormatOf("a/b.HJSON"))
	assert.Equal(t, FormatJSON, FormatOf("a/b.json"))
	assert.Equal(t, FormatJSON, FormatOf("-"))
}

func TestLoad_Fixture(t *testing.T) {
	doc, err := Load(context.Background(), "../../testdata/document.json")
	require.NoError(t, err)
	assert.Equal(t, "Exempelbolaget AB", doc.Metadata.CompanyName)
	assert.Equal(t, "1930", doc.Accounts["1930"].Number)
	assert.Len(t, doc.Verifications, 4)
	assert.Equal(t, 11, doc.TransactionCount())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading document")
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(context.Background(), []byte("  \n"), FormatJSON)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestParse_NormalizesMissingCollections(t *testing.T) {
	doc, err := Parse(context.Background(), []byte(`{"metadata": {"company_name": "X"}}`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, doc.Accounts)
	assert.NotNil(t, doc.Verifications)
	assert.NotNil(t, doc.ClosingBalances)
}

func TestParse_RepairsTrailingComma(t *testing.T) {
	var logs bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.NewWithWriter(&logs, "warn"))

	doc, err := Parse(ctx, []byte(`{"metadata": {"company_name": "Repaired AB",},}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "Repaired AB", doc.Metadata.CompanyName)
	assert.Contains(t, logs.String(), "repaired")
}

func TestParse_TypeErrorIsNotRepaired(t *testing.T) {
	_, err := Parse(context.Background(), []byte(`{"verifications": {"a": 1}}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding document")
}

func TestLoad_HJSON(t *testing.T) {
	src := `{
  # exported by hand
  metadata: {
    company_name: Kommentar AB
    currency: SEK
  }
  accounts: {
    "1930": {
      name: Bank
      type: Asset
    }
  }
  closing_balances: {
    "0": { "1930": 1250.5 }
  }
}`
	path := filepath.Join(t.TempDir(), "doc.hjson")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Kommentar AB", doc.Metadata.CompanyName)
	assert.Equal(t, "Bank", doc.Accounts["1930"].Name)
	v, ok := doc.ClosingBalances.Get("0", "1930")
	require.True(t, ok)
	assert.Equal(t, "1250.5", v.String())
}
