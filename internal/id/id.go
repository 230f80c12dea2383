package id

import (
	"strconv"
	"strings"
)

// MinRelativeYear and MaxRelativeYear bound the relative year keys shown in history views.
const (
	MinRelativeYear = -5
	MaxRelativeYear = 5
)

// FormatVerificationRef returns a verification reference like "A12".
// The explicit id wins when the export carries one.
func FormatVerificationRef(explicitID, series, number string) string {
	if explicitID != "" {
		return explicitID
	}
	return series + number
}

// ParseRelativeYear parses a relative year key such as "0" or "-1".
// Only exact integer spellings within [MinRelativeYear, MaxRelativeYear] are accepted;
// anything else is noise from upstream parsing.
func ParseRelativeYear(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	if strconv.Itoa(n) != key {
		return 0, false
	}
	if n < MinRelativeYear || n > MaxRelativeYear {
		return 0, false
	}
	return n, true
}

// AccountClass returns the two-digit BAS class of an account number.
// "1930" -> "19", "7" -> "07".
func AccountClass(number string) string {
	number = strings.TrimSpace(number)
	switch len(number) {
	case 0:
		return "00"
	case 1:
		return "0" + number
	default:
		return number[:2]
	}
}

// AccountInt returns the numeric value of an account number.
func AccountInt(number string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(number))
	if err != nil {
		return 0, false
	}
	return n, true
}

// LessAccount orders account numbers numerically, falling back to string order.
func LessAccount(a, b string) bool {
	na, okA := AccountInt(a)
	nb, okB := AccountInt(b)
	if okA && okB && na != nb {
		return na < nb
	}
	if okA != okB {
		return okA
	}
	return a < b
}
