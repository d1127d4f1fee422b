// Package listquery holds the per-page list state shared by every entity
// list: search text, period filter, page and page size. It derives the
// parameters of a paginated list fetch and keeps the page consistent with
// the filters.
package listquery

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/me/backoffice/internal/period"
)

const (
	// DebounceDelay is how long search text must stay unchanged before it is
	// forwarded to the fetch layer.
	DebounceDelay = 500 * time.Millisecond

	// DefaultPageSize is the page size a fresh list starts with.
	DefaultPageSize = 10
)

// PageSizes are the page sizes a user can choose from.
var PageSizes = []int{10, 20, 50, 100}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// State is the list state owned by one page.
type State struct {
	SearchText      string
	DebouncedSearch string
	Period          period.Period
	Month           *period.YearMonth
	Page            int
	PageSize        int
}

// DefaultState returns the state of a freshly opened list.
func DefaultState() State {
	return State{Page: 1, PageSize: DefaultPageSize}
}

// Params are the parameters passed to a paginated list fetch. Empty string
// fields mean "unfiltered" on that axis.
type Params struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Search   string `json:"search,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

// Values encodes the params as query parameters, omitting empty fields.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.DateFrom != "" {
		v.Set("dateFrom", p.DateFrom)
	}
	if p.DateTo != "" {
		v.Set("dateTo", p.DateTo)
	}
	return v
}

// Range returns only the date bounds of the params.
func (p Params) Range() Params {
	return Params{DateFrom: p.DateFrom, DateTo: p.DateTo}
}

// ParamsFor derives fetch params from s using r to resolve the period.
func ParamsFor(s State, r *period.Resolver) Params {
	dr := r.Resolve(s.Period, s.Month)
	return Params{
		Page:     max(s.Page, 1),
		Limit:    s.PageSize,
		Search:   strings.TrimSpace(s.DebouncedSearch),
		DateFrom: dr.FromString(),
		DateTo:   dr.ToString(),
	}
}

// Event is a user action applied to a State by Reduce.
type Event interface {
	apply(State) State
}

// SearchEvent commits a debounced search value.
type SearchEvent struct{ Text string }

// PeriodEvent is a click on a period button.
type PeriodEvent struct{ Period period.Period }

// MonthEvent is a choice in the month sub-selector.
type MonthEvent struct{ Month period.YearMonth }

// PageSizeEvent changes the page size.
type PageSizeEvent struct{ Size int }

// PageEvent moves to another page.
type PageEvent struct{ Page int }

// Reduce applies e to s and returns the new state. Any change to the
// committed search, period, month or page size resets the page to 1.
func Reduce(s State, e Event) State {
	next := e.apply(s)
	if filtersChanged(s, next) {
		next.Page = 1
	}
	return next
}

func (e SearchEvent) apply(s State) State {
	s.SearchText = e.Text
	s.DebouncedSearch = e.Text
	return s
}

func (e PeriodEvent) apply(s State) State {
	switch {
	case e.Period == period.None:
		s.Period, s.Month = period.None, nil
	case e.Period == period.Month:
		// Opening the month selector; the current month applies until a
		// specific one is chosen.
		if s.Period != period.Month {
			s.Period, s.Month = period.Month, nil
		}
	case e.Period == s.Period:
		s.Period = period.None
	default:
		s.Period, s.Month = e.Period, nil
	}
	return s
}

func (e MonthEvent) apply(s State) State {
	m := e.Month
	s.Period, s.Month = period.Month, &m
	return s
}

func (e PageSizeEvent) apply(s State) State {
	if ValidPageSize(e.Size) {
		s.PageSize = e.Size
	}
	return s
}

func (e PageEvent) apply(s State) State {
	s.Page = max(e.Page, 1)
	return s
}

func filtersChanged(a, b State) bool {
	return a.DebouncedSearch != b.DebouncedSearch ||
		a.Period != b.Period ||
		!sameMonth(a.Month, b.Month) ||
		a.PageSize != b.PageSize
}

func sameMonth(a, b *period.YearMonth) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
