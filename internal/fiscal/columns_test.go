package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cleared-dev/siereport/internal/model"
)

func names(cols []Column) []string {
	var out []string
	for _, c := range cols {
		out = append(out, c.DisplayName)
	}
	return out
}

func TestColumns_ClosingOnly(t *testing.T) {
	closing := model.BalanceMap{"0": {}, "-1": {}}
	cols := Columns(model.Metadata{}, 2022, nil, closing)
	assert.Equal(t, []string{"2021 UB (-1)", "2022 UB"}, names(cols))
	assert.Equal(t, "2021 UB", cols[0].ShortName)
	assert.Equal(t, "UB -1", cols[0].Key)
}

func TestColumns_OpeningBeforeClosing(t *testing.T) {
	opening := model.BalanceMap{"0": {}, "-1": {}}
	closing := model.BalanceMap{"0": {}, "-1": {}}
	cols := Columns(model.Metadata{}, 2022, opening, closing)
	assert.Equal(t, []string{"2021 IB (-1)", "2021 UB (-1)", "2022 IB", "2022 UB"}, names(cols))
}

func TestColumns_FiltersNoise(t *testing.T) {
	closing := model.BalanceMap{"0": {}, "1930": {}, "-6": {}, "+1": {}, "01": {}, "": {}}
	cols := Columns(model.Metadata{}, 2022, nil, closing)
	assert.Equal(t, []string{"2022 UB"}, names(cols))
}

func TestNewColumn_FiscalDates(t *testing.T) {
	meta := model.Metadata{FiscalYears: map[string]model.FiscalYear{"-1": {StartDate: "20210101", EndDate: "20211231"}}}
	c := NewColumn(meta, 2022, -1, Opening)
	assert.Equal(t, "2021-01-01", c.StartDate)
	assert.Equal(t, "2021-12-31", c.EndDate)
	assert.Equal(t, 2021, c.ActualYear)
}
