package balance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/siereport/internal/model"
)

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}

func TestNewIndex_YearAttribution(t *testing.T) {
	ix := NewIndex(cashDocument())

	assert.Equal(t, 6, ix.Len())
	assert.Len(t, ix.Postings("1930", "0"), 3)
	assert.Len(t, ix.Postings("1930", "-1"), 1)
	assert.Len(t, ix.All("1930"), 3)
	assert.Equal(t, []string{"-1", "0"}, ix.Years())
	assert.Equal(t, []string{"1930", "3001", "6110"}, ix.Accounts("0"))
}

func TestNewIndex_Fallbacks(t *testing.T) {
	doc := &model.Document{Verifications: []model.Verification{
		{ID: "X-9", Series: "A", Number: "7", Date: "2022-03-01", Text: "Hyra", Transactions: []model.Transaction{
			{Account: "5010", Amount: model.MustAmount("100")},
			{Account: "1930", Amount: model.MustAmount("-100"), Date: "20220302", Text: "Bank"},
		}},
	}}
	ix := NewIndex(doc)

	rent := ix.Postings("5010", "0")
	require.Len(t, rent, 1)
	assert.Equal(t, "20220301", rent[0].Date)
	assert.Equal(t, "Hyra", rent[0].Text)
	assert.Equal(t, "X-9", rent[0].Verification)

	bank := ix.Postings("1930", "0")
	require.Len(t, bank, 1)
	assert.Equal(t, "20220302", bank[0].Date)
	assert.Equal(t, "Bank", bank[0].Text)
}

func TestSortByDate_Stable(t *testing.T) {
	ps := []Posting{
		{Date: "20220105", Seq: 0, Text: "a"},
		{Date: "20220101", Seq: 1, Text: "b"},
		{Date: "20220105", Seq: 2, Text: "c"},
		{Date: "20220101", Seq: 3, Text: "d"},
	}
	SortByDate(ps)
	var got []string
	for _, p := range ps {
		got = append(got, p.Text)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, got)
}
