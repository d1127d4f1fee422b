// Package period resolves coarse, user-selected time buckets into concrete
// date ranges used to filter entity lists.
package period

import (
	"strings"
	"time"
)

// Period is a user-selectable time bucket.
type Period string

const (
	None      Period = ""
	Today     Period = "today"
	Yesterday Period = "yesterday"
	Week      Period = "week"
	Month     Period = "month"
)

// All lists the selectable periods in display order.
var All = []Period{Today, Yesterday, Week, Month}

// Labels are the display labels shown on the period bar.
var Labels = map[Period]string{
	Today:     "Сегодня",
	Yesterday: "Вчера",
	Week:      "Неделя",
	Month:     "Месяц",
}

// ParsePeriod converts a string to a Period. Unknown values map to None.
func ParsePeriod(s string) Period {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case Today, Yesterday, Week, Month:
		return p
	default:
		return None
	}
}

// Label returns the display label, or "" for None.
func (p Period) Label() string {
	return Labels[p]
}

// String implements fmt.Stringer.
func (p Period) String() string {
	if p == None {
		return "none"
	}
	return string(p)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock returns a Clock pinned to t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
