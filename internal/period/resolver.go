package period

import "time"

// isoLayout matches the instants list endpoints accept (millisecond UTC).
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// DateRange is a resolved [From, To] interval. Zero bounds mean unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// IsZero reports whether the range applies no filter.
func (r DateRange) IsZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

// FromString serializes the lower bound, or "" when unbounded.
func (r DateRange) FromString() string {
	return formatInstant(r.From)
}

// ToString serializes the upper bound, or "" when unbounded.
func (r DateRange) ToString() string {
	return formatInstant(r.To)
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoLayout)
}

// Resolver turns periods into date ranges relative to its clock.
type Resolver struct {
	clock Clock
	loc   *time.Location
}

// NewResolver creates a Resolver. A nil clock uses the system clock; a nil
// location uses the location of the clock's readings.
func NewResolver(clock Clock, loc *time.Location) *Resolver {
	if clock == nil {
		clock = SystemClock
	}
	return &Resolver{clock: clock, loc: loc}
}

// Now returns the resolver's current time in its location.
func (r *Resolver) Now() time.Time {
	now := r.clock.Now()
	if r.loc != nil {
		now = now.In(r.loc)
	}
	return now
}

// Resolve returns the range covered by p. For Month, m narrows the range to
// a specific month; nil or an invalid index means the current month.
func (r *Resolver) Resolve(p Period, m *YearMonth) DateRange {
	now := r.Now()
	y, mon, d := now.Date()
	loc := now.Location()

	switch p {
	case Today:
		return dayRange(y, mon, d, loc)
	case Yesterday:
		return dayRange(y, mon, d-1, loc)
	case Week:
		return DateRange{
			From: startOfDay(y, mon, d-7, loc),
			To:   endOfDay(y, mon, d, loc),
		}
	case Month:
		year, index := y, mon
		if m != nil && m.Valid() {
			index = m.Index
			if m.Year != 0 {
				year = m.Year
			}
		}
		return DateRange{
			From: startOfDay(year, index, 1, loc),
			// Day 0 of the next month is the last day of this one.
			To: endOfDay(year, index+1, 0, loc),
		}
	default:
		return DateRange{}
	}
}

// ResolveNamed resolves p with a localized month name. The name is looked up
// in MonthNames for the current year; unknown names fall back to the current
// month.
func (r *Resolver) ResolveNamed(p Period, monthName string) DateRange {
	if p != Month || monthName == "" {
		return r.Resolve(p, nil)
	}
	m, ok := ParseMonthName(monthName, r.Now().Year())
	if !ok {
		return r.Resolve(p, nil)
	}
	return r.Resolve(p, &m)
}

func dayRange(y int, m time.Month, d int, loc *time.Location) DateRange {
	return DateRange{From: startOfDay(y, m, d, loc), To: endOfDay(y, m, d, loc)}
}

func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
}
