package ui

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
)

type link struct {
	Label  string
	URL    string
	Active bool
}

// listView is everything the period bar, search box and pager of a list
// page need. Every link is the URL of the state Reduce produces for that
// click, so the server holds no list state between requests.
type listView struct {
	Path       string
	State      listquery.State
	Extra      url.Values
	Hidden     url.Values // carried by the search form; q and page are left out
	Periods    []link
	Reset      string
	Months     []link
	Sizes      []link
	Pages      []link
	PrevURL    string
	NextURL    string
	Total      int
	Shown      int
	TotalPages int
	ExportURL  string
	DebounceMS int64
}

// listState decodes the list state of r and the extra filters named by keys.
func listState(r *http.Request, keys ...string) (listquery.State, url.Values) {
	q := r.URL.Query()
	extra := url.Values{}
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			extra.Set(k, v)
		}
	}
	return listquery.FromValues(q), extra
}

// href is the URL of path showing state s with the extra filters.
func href(path string, s listquery.State, extra url.Values) string {
	v := s.Values()
	for k, vs := range extra {
		v[k] = vs
	}
	if enc := v.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func (ui *UI) newListView(path string, s listquery.State, extra url.Values) *listView {
	lv := &listView{
		Path:       path,
		State:      s,
		Extra:      extra,
		DebounceMS: listquery.DebounceDelay.Milliseconds(),
	}
	to := func(e listquery.Event) string {
		return href(path, listquery.Reduce(s, e), extra)
	}

	for _, p := range period.All {
		lv.Periods = append(lv.Periods, link{Label: p.Label(), URL: to(listquery.PeriodEvent{Period: p}), Active: s.Period == p})
	}
	if s.Period != period.None {
		lv.Reset = to(listquery.PeriodEvent{Period: period.None})
	}
	if s.Period == period.Month {
		now := ui.now()
		for _, m := range period.SelectableMonths(now) {
			active := s.Month != nil && *s.Month == m
			if s.Month == nil {
				active = m.Index == now.Month()
			}
			lv.Months = append(lv.Months, link{Label: m.Name(), URL: to(listquery.MonthEvent{Month: m}), Active: active})
		}
	}
	for _, n := range listquery.PageSizes {
		lv.Sizes = append(lv.Sizes, link{Label: strconv.Itoa(n), URL: to(listquery.PageSizeEvent{Size: n}), Active: s.PageSize == n})
	}

	lv.Hidden = s.Values()
	lv.Hidden.Del("q")
	lv.Hidden.Del("page")
	for k, vs := range extra {
		lv.Hidden[k] = vs
	}

	export := s
	export.Page = 1
	lv.ExportURL = href(path+"/export.xlsx", export, extra)
	return lv
}

// paginate fills the pager for a result of total items over totalPages
// pages, shown of which are on the current page.
func (lv *listView) paginate(total, totalPages, shown int) *listView {
	lv.Total, lv.Shown = total, shown
	lv.TotalPages = max(totalPages, 1)
	to := func(n int) string {
		return href(lv.Path, listquery.Reduce(lv.State, listquery.PageEvent{Page: n}), lv.Extra)
	}

	cur := lv.State.Page
	for _, n := range listquery.PageWindow(cur, lv.TotalPages, listquery.PagerWidth) {
		lv.Pages = append(lv.Pages, link{Label: strconv.Itoa(n), URL: to(n), Active: n == cur})
	}
	if cur > 1 {
		lv.PrevURL = to(min(cur-1, lv.TotalPages))
	}
	if cur < lv.TotalPages {
		lv.NextURL = to(cur + 1)
	}
	return lv
}

// SearchQuery is the committed search text.
func (lv *listView) SearchQuery() string {
	return lv.State.DebouncedSearch
}

// Empty reports whether the list has nothing to show.
func (lv *listView) Empty() bool {
	return lv.Shown == 0
}
