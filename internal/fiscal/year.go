// Package fiscal resolves relative year keys to calendar years.
package fiscal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/siereport/internal/id"
	"github.com/cleared-dev/siereport/internal/model"
)

// Sources of the reference year, in priority order.
const (
	SourceFiscalYear              = "fiscal_years.0.end_date"
	SourceFinancialYearEnd        = "financial_year_end"
	SourceFinancialYearStart      = "financial_year_start"
	SourceCompanyFinancialYearEnd = "company_financial_year_end"
	SourceClosingBalances         = "closing_balances"
	SourceFileName                = "file_name"
	SourceClock                   = "clock"
)

var fileNameYear = regexp.MustCompile(`(20\d{2})`)

// Resolution is the reference year and where it came from.
type Resolution struct {
	Year   int    `json:"year"`
	Source string `json:"source"`
}

// ResolveReferenceYear picks the calendar year of relative year "0".
// The first usable source wins; now is the last resort.
func ResolveReferenceYear(meta model.Metadata, closing model.BalanceMap, now time.Time) Resolution {
	if fy, ok := meta.FiscalYears["0"]; ok && len(fy.EndDate) >= 4 {
		if y, ok := yearPrefix(fy.EndDate); ok {
			return Resolution{Year: y, Source: SourceFiscalYear}
		}
	}
	for _, c := range []struct {
		value, source string
	}{
		{meta.FinancialYearEnd, SourceFinancialYearEnd},
		{meta.FinancialYearStart, SourceFinancialYearStart},
		{meta.CompanyFinancialYearEnd, SourceCompanyFinancialYearEnd},
	} {
		if y, ok := yearPrefix(c.value); ok {
			return Resolution{Year: y, Source: c.source}
		}
	}
	if _, ok := closing["0"]; ok {
		return Resolution{Year: now.Year(), Source: SourceClosingBalances}
	}
	if y, ok := FileNameYear(meta.FileName); ok {
		return Resolution{Year: y, Source: SourceFileName}
	}
	return Resolution{Year: now.Year(), Source: SourceClock}
}

// ActualYear converts a relative year offset to a calendar year.
func ActualYear(reference, relative int) int {
	return reference + relative
}

// ActualYearOf converts a relative year key. Unparseable keys map to the reference year.
func ActualYearOf(reference int, key string) int {
	rel, err := strconv.Atoi(key)
	if err != nil {
		return reference
	}
	return ActualYear(reference, rel)
}

// FileNameYear extracts a 20xx year from a file name.
func FileNameYear(name string) (int, bool) {
	m := fileNameYear.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

func yearPrefix(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}

// NormalizeDate returns a date as YYYYMMDD, dropping dashes.
func NormalizeDate(date string) string {
	return strings.ReplaceAll(strings.TrimSpace(date), "-", "")
}

// FormatDate renders YYYYMMDD as YYYY-MM-DD. Other inputs are returned unchanged.
func FormatDate(date string) string {
	d := NormalizeDate(date)
	if len(d) != 8 {
		return date
	}
	return d[:4] + "-" + d[4:6] + "-" + d[6:]
}

// Range returns the start and end date (YYYY-MM-DD) of a relative year.
// Without a fiscal_years entry the calendar year is used.
func Range(meta model.Metadata, reference int, key string) (start, end string) {
	if fy, ok := meta.FiscalYears[key]; ok && fy.StartDate != "" && fy.EndDate != "" {
		return FormatDate(fy.StartDate), FormatDate(fy.EndDate)
	}
	y := strconv.Itoa(ActualYearOf(reference, key))
	return y + "-01-01", y + "-12-31"
}

// AttributeYear returns the relative year whose fiscal range contains date,
// or "0" when none does.
func AttributeYear(meta model.Metadata, date string) string {
	d := NormalizeDate(date)
	if d == "" {
		return "0"
	}
	keys := make([]string, 0, len(meta.FiscalYears))
	for k := range meta.FiscalYears {
		if _, ok := id.ParseRelativeYear(k); ok {
			keys = append(keys, k)
		}
	}
	model.SortYearKeys(keys)
	for _, k := range keys {
		if InYear(meta.FiscalYears[k], d) {
			return k
		}
	}
	return "0"
}

// InYear reports whether date falls inside a fiscal year. Open ends match.
func InYear(fy model.FiscalYear, date string) bool {
	d := NormalizeDate(date)
	start, end := NormalizeDate(fy.StartDate), NormalizeDate(fy.EndDate)
	if start == "" && end == "" {
		return false
	}
	if start != "" && d < start {
		return false
	}
	if end != "" && d > end {
		return false
	}
	return true
}

// Label is the human readable fiscal year used in report headers.
func Label(meta model.Metadata) string {
	if meta.FinancialYearStart != "" && meta.FinancialYearEnd != "" {
		return meta.FinancialYearStart + " - " + meta.FinancialYearEnd
	}
	if fy, ok := meta.FiscalYears["0"]; ok && fy.StartDate != "" && fy.EndDate != "" {
		return fy.StartDate + " - " + fy.EndDate
	}
	if len(meta.FinancialYearEnd) >= 4 {
		return meta.FinancialYearEnd[:4]
	}
	if y, ok := FileNameYear(meta.FileName); ok {
		return strconv.Itoa(y)
	}
	return "Unknown"
}
