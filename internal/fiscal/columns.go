package fiscal

import (
	"fmt"
	"sort"

	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
)

// Kind distinguishes opening (IB) from closing (UB) balance columns.
type Kind string

const (
	Opening Kind = "IB"
	Closing Kind = "UB"
)

// Column is one balance column of the history table.
type Column struct {
	Key         string `json:"key"`
	Kind        Kind   `json:"kind"`
	Relative    int    `json:"relative_year"`
	ActualYear  int    `json:"actual_year"`
	DisplayName string `json:"display_name"`
	ShortName   string `json:"short_name"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

// NewColumn builds a column for a relative year.
func NewColumn(meta model.Metadata, reference, relative int, kind Kind) Column {
	actual := ActualYear(reference, relative)
	short := fmt.Sprintf("%d %s", actual, kind)
	display := short
	if relative != 0 {
		display = fmt.Sprintf("%s (%d)", short, relative)
	}
	c := Column{
		Key:         fmt.Sprintf("%s %d", kind, relative),
		Kind:        kind,
		Relative:    relative,
		ActualYear:  actual,
		DisplayName: display,
		ShortName:   short,
	}
	if fy, ok := meta.FiscalYears[fmt.Sprint(relative)]; ok && fy.StartDate != "" && fy.EndDate != "" {
		c.StartDate, c.EndDate = FormatDate(fy.StartDate), FormatDate(fy.EndDate)
	}
	return c
}

// Columns returns the IB and UB columns for every valid relative year key in
// the opening and closing balance maps, in display order.
func Columns(meta model.Metadata, reference int, opening, closing model.BalanceMap) []Column {
	var cols []Column
	for _, key := range opening.Years() {
		if rel, ok := id.ParseRelativeYear(key); ok {
			cols = append(cols, NewColumn(meta, reference, rel, Opening))
		}
	}
	for _, key := range closing.Years() {
		if rel, ok := id.ParseRelativeYear(key); ok {
			cols = append(cols, NewColumn(meta, reference, rel, Closing))
		}
	}
	SortColumns(cols)
	return cols
}

// SortColumns orders columns ascending by actual year, IB before UB.
func SortColumns(cols []Column) {
	sort.SliceStable(cols, func(i, j int) bool {
		if cols[i].ActualYear != cols[j].ActualYear {
			return cols[i].ActualYear < cols[j].ActualYear
		}
		return cols[i].Kind == Opening && cols[j].Kind == Closing
	})
}
