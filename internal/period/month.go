package period

import (
	"fmt"
	"strings"
	"time"
)

// MonthNames is the localized month table, January first.
var MonthNames = [12]string{
	"Январь",
	"Февраль",
	"Март",
	"Апрель",
	"Май",
	"Июнь",
	"Июль",
	"Август",
	"Сентябрь",
	"Октябрь",
	"Ноябрь",
	"Декабрь",
}

// YearMonth selects one calendar month. A zero Year means the current year.
type YearMonth struct {
	Year  int
	Index time.Month
}

// Valid reports whether the month index is within January..December.
func (m YearMonth) Valid() bool {
	return m.Index >= time.January && m.Index <= time.December
}

// Name returns the localized month name.
func (m YearMonth) Name() string {
	return MonthName(m.Index)
}

// String formats the month as YYYY-MM.
func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Index))
}

// MonthName returns the localized name of m, or "" when m is out of range.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return MonthNames[m-1]
}

// ParseMonthName looks a localized month name up in MonthNames and pairs it
// with year. Matching is exact, as the names come from the selector itself.
func ParseMonthName(name string, year int) (YearMonth, bool) {
	for i, n := range MonthNames {
		if n == name {
			return YearMonth{Year: year, Index: time.Month(i + 1)}, true
		}
	}
	return YearMonth{}, false
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return YearMonth{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Index: t.Month()}, nil
}

// SelectableMonths returns January through the month of now, in now's year.
func SelectableMonths(now time.Time) []YearMonth {
	months := make([]YearMonth, 0, int(now.Month()))
	for m := time.January; m <= now.Month(); m++ {
		months = append(months, YearMonth{Year: now.Year(), Index: m})
	}
	return months
}
