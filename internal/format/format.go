// Package format renders amounts, counts, dates and durations the way the
// dashboard and the CLI show them to operators.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Russian)

// Rubles formats an amount in kopecks as rubles with two decimals and
// Russian digit grouping, e.g. "1 234,50 ₽".
func Rubles(kopecks int64) string {
	return printer.Sprintf("%.2f", float64(kopecks)/100) + " ₽"
}

// Count formats n with Russian digit grouping.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent formats v with one decimal.
func Percent(v float64) string {
	return printer.Sprintf("%.1f", v) + "%"
}

// Plural picks the Russian plural form of a noun for n: one for 1, 21,
// 31...; few for 2-4, 22-24...; many for everything else, including 11-14.
func Plural(n int, one, few, many string) string {
	n %= 100
	if n < 0 {
		n = -n
	}
	if n >= 11 && n <= 14 {
		return many
	}
	switch n % 10 {
	case 1:
		return one
	case 2, 3, 4:
		return few
	default:
		return many
	}
}

// TimeLeft describes how long remains until end, in the largest whole unit:
// "Через 3 дня", "Через 5 часов", "Через 1 минуту". Past instants yield
// "Истекло".
func TimeLeft(end, now time.Time) string {
	d := end.Sub(now)
	if d <= 0 {
		return "Истекло"
	}
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)

	switch {
	case days > 0:
		return fmt.Sprintf("Через %d %s", days, Plural(days, "день", "дня", "дней"))
	case hours > 0:
		return fmt.Sprintf("Через %d %s", hours, Plural(hours, "час", "часа", "часов"))
	default:
		return fmt.Sprintf("Через %d %s", minutes, Plural(minutes, "минуту", "минуты", "минут"))
	}
}

// DateTime formats t as "02.01.2006 15:04" in loc. A nil loc keeps t's
// location; a zero t yields "—".
func DateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "—"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02.01.2006 15:04")
}

// Date formats t as "02.01.2006" in loc.
func Date(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "—"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02.01.2006")
}

// Dash returns s, or "—" when s is empty.
func Dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
