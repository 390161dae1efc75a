package csvimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe    = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})$`)
	usDateRe     = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2}|\d{4})$`)
	dottedISORe  = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})$`)
	monthFirstRe = regexp.MustCompile(`^([A-Za-z]{3,})\.?\s+(\d{1,2}),?\s+(\d{4})$`)
	dayFirstRe   = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]{3,})\.?,?\s+(\d{4})$`)
)

var monthNames = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sept": 9, "sep": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// ParseFlexibleDate normalizes a raw date string to ISO YYYY-MM-DD.
// Recognized shapes, tried in order: ISO with - or / separators,
// US month-first with a two-digit-year pivot, dotted ISO, month-name
// first ("Dec 15, 2024") and day first ("15 Dec 2024"). Anything else,
// and any lexically-valid but calendar-invalid date, returns "".
func ParseFlexibleDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return canonical(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := usDateRe.FindStringSubmatch(s); m != nil {
		return canonical(pivotYear(m[3]), atoi(m[1]), atoi(m[2]))
	}
	if m := dottedISORe.FindStringSubmatch(s); m != nil {
		return canonical(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
	if m := monthFirstRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthFromName(m[1]); ok {
			return canonical(atoi(m[3]), month, atoi(m[2]))
		}
		return ""
	}
	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		if month, ok := monthFromName(m[2]); ok {
			return canonical(atoi(m[3]), month, atoi(m[1]))
		}
		return ""
	}
	return ""
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// pivotYear expands two-digit years: 70 and above land in the 1900s,
// everything below in the 2000s.
func pivotYear(s string) int {
	y := atoi(s)
	if len(s) == 4 {
		return y
	}
	if y >= 70 {
		return 1900 + y
	}
	return 2000 + y
}

func monthFromName(name string) (int, bool) {
	key := strings.ToLower(strings.TrimSuffix(name, "."))
	if m, ok := monthNames[key]; ok {
		return m, true
	}
	if len(key) > 3 {
		if m, ok := monthNames[key[:3]]; ok {
			return m, true
		}
	}
	return 0, false
}

// canonical round-trips the numeric components through a UTC calendar
// date. time.Date normalizes overflow (Feb 30 becomes Mar 1), so a
// mismatch on the way back means the date never existed.
func canonical(year, month, day int) string {
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return ""
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
