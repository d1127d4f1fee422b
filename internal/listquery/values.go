package listquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/me/backoffice/internal/period"
)

// Query parameter names used by dashboard links.
const (
	paramSearch   = "q"
	paramPeriod   = "period"
	paramMonth    = "month"
	paramPage     = "page"
	paramPageSize = "size"
)

// FromValues decodes a State from dashboard query parameters. Anything
// missing or invalid takes its default, so a bare URL yields DefaultState.
func FromValues(v url.Values) State {
	s := DefaultState()

	s.SearchText = v.Get(paramSearch)
	s.DebouncedSearch = s.SearchText
	s.Period = period.ParsePeriod(v.Get(paramPeriod))

	if s.Period == period.Month {
		if m, err := period.ParseMonth(v.Get(paramMonth)); err == nil {
			s.Month = &m
		}
	}
	if n, err := strconv.Atoi(v.Get(paramPageSize)); err == nil && ValidPageSize(n) {
		s.PageSize = n
	}
	if n, err := strconv.Atoi(v.Get(paramPage)); err == nil && n > 0 {
		s.Page = n
	}
	return s
}

// Values encodes s as dashboard query parameters. Defaults are omitted.
func (s State) Values() url.Values {
	v := url.Values{}
	if q := strings.TrimSpace(s.DebouncedSearch); q != "" {
		v.Set(paramSearch, q)
	}
	if s.Period != period.None {
		v.Set(paramPeriod, string(s.Period))
	}
	if s.Period == period.Month && s.Month != nil {
		v.Set(paramMonth, s.Month.String())
	}
	if s.PageSize != DefaultPageSize && s.PageSize > 0 {
		v.Set(paramPageSize, strconv.Itoa(s.PageSize))
	}
	if s.Page > 1 {
		v.Set(paramPage, strconv.Itoa(s.Page))
	}
	return v
}

// Query returns the encoded query string, prefixed with "?" when non-empty.
func (s State) Query() string {
	enc := s.Values().Encode()
	if enc == "" {
		return ""
	}
	return "?" + enc
}

// With applies e and returns the query string of the resulting state.
func (s State) With(e Event) string {
	return Reduce(s, e).Query()
}
