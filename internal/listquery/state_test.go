package listquery

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/backoffice/internal/period"
)

func TestReduce_PageResetRules(t *testing.T) {
	base := State{Page: 3, PageSize: 10}

	tests := []struct {
		name     string
		event    Event
		wantPage int
	}{
		{"search", SearchEvent{Text: "x"}, 1},
		{"period", PeriodEvent{Period: period.Week}, 1},
		{"month", MonthEvent{Month: period.YearMonth{Year: 2025, Index: time.March}}, 1},
		{"page size", PageSizeEvent{Size: 20}, 1},
		{"same page size", PageSizeEvent{Size: 10}, 3},
		{"invalid page size", PageSizeEvent{Size: 7}, 3},
		{"page", PageEvent{Page: 5}, 5},
		{"page below one", PageEvent{Page: -2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPage, Reduce(base, tt.event).Page)
		})
	}
}

func TestReduce_MonthPeriodClick(t *testing.T) {
	m := period.YearMonth{Year: 2025, Index: time.February}
	s := State{Period: period.Month, Month: &m, Page: 2, PageSize: 10}

	next := Reduce(s, PeriodEvent{Period: period.Month})
	assert.Equal(t, period.Month, next.Period)
	require.NotNil(t, next.Month, "clicking Month again keeps the chosen month")
	assert.Equal(t, 2, next.Page)

	next = Reduce(s, PeriodEvent{Period: period.None})
	assert.Equal(t, period.None, next.Period)
	assert.Nil(t, next.Month)
	assert.Equal(t, 1, next.Page)
}

func TestFromValues_RoundTrip(t *testing.T) {
	m := period.YearMonth{Year: 2025, Index: time.March}
	s := State{
		SearchText:      "petrov",
		DebouncedSearch: "petrov",
		Period:          period.Month,
		Month:           &m,
		Page:            4,
		PageSize:        50,
	}

	got := FromValues(s.Values())
	assert.Equal(t, s, got)
	assert.Equal(t, "?month=2025-03&page=4&period=month&q=petrov&size=50", s.Query())
}

func TestFromValues_Defaults(t *testing.T) {
	assert.Equal(t, DefaultState(), FromValues(url.Values{}))
	assert.Empty(t, DefaultState().Query())

	got := FromValues(url.Values{
		"size":   {"33"},
		"page":   {"0"},
		"period": {"decade"},
		"month":  {"2025-02"},
	})
	assert.Equal(t, DefaultState(), got, "invalid values fall back to defaults")
}

func TestState_With(t *testing.T) {
	s := State{Period: period.Today, Page: 3, PageSize: 20}

	assert.Equal(t, "?size=20", s.With(PeriodEvent{Period: period.Today}))
	assert.Equal(t, "?page=4&period=today&size=20", s.With(PageEvent{Page: 4}))
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{2, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{3, 10, []int{1, 2, 3, 4, 5}},
		{4, 10, []int{2, 3, 4, 5, 6}},
		{8, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{42, 10, []int{6, 7, 8, 9, 10}},
		{1, 0, []int{1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageWindow(tt.current, tt.total, PagerWidth), "current=%d total=%d", tt.current, tt.total)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 1, TotalPages(5, 0))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Paginate(items, 1, 2))
	assert.Equal(t, []int{5}, Paginate(items, 3, 2))
	assert.Nil(t, Paginate(items, 4, 2))
	assert.Equal(t, items, Paginate(items, 1, 0))
}
