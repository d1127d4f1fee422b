package listquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/backoffice/internal/period"
)

var msk = time.FixedZone("MSK", 3*60*60)

func testResolver() *period.Resolver {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, msk)
	return period.NewResolver(period.FixedClock(now), msk)
}

func TestController_DebouncedSearchCommitsOnlyLastValue(t *testing.T) {
	const delay = 50 * time.Millisecond
	c := NewController(testResolver(), WithDebounceDelay(delay))
	defer c.Close()

	c.OnSearchChange("abc")
	c.OnSearchChange("abcd")

	assert.Equal(t, "abcd", c.State().SearchText, "input reflects typing immediately")
	assert.Empty(t, c.Params().Search, "search is not forwarded before the debounce elapses")

	select {
	case v := <-c.Committed():
		assert.Equal(t, "abcd", v)
		assert.True(t, c.CommitSearch(v))
	case <-time.After(time.Second):
		t.Fatal("no debounced value committed")
	}

	select {
	case v := <-c.Committed():
		t.Fatalf("unexpected second commit %q", v)
	case <-time.After(4 * delay):
	}

	assert.Equal(t, "abcd", c.Params().Search)
}

func TestController_PeriodResetsPageAndToggles(t *testing.T) {
	c := NewController(testResolver())
	defer c.Close()

	c.OnPageChange(3)
	require.Equal(t, 3, c.State().Page)

	c.OnPeriodChange(period.Today)
	assert.Equal(t, period.Today, c.State().Period)
	assert.Equal(t, 1, c.State().Page)
	assert.Equal(t, "2025-06-14T21:00:00.000Z", c.Params().DateFrom)

	c.OnPageChange(2)
	c.OnPeriodChange(period.Today)
	assert.Equal(t, period.None, c.State().Period, "clicking the selected period clears it")
	assert.Equal(t, 1, c.State().Page)
	assert.Empty(t, c.Params().DateFrom)
	assert.Empty(t, c.Params().DateTo)
}

func TestController_PageSizeChange(t *testing.T) {
	c := NewController(testResolver())
	defer c.Close()

	c.OnPageChange(4)
	assert.True(t, c.OnPageSizeChange(50))
	assert.Equal(t, 1, c.State().Page)
	assert.Equal(t, 50, c.Params().Limit)

	c.OnPageChange(2)
	assert.False(t, c.OnPageSizeChange(33), "sizes outside the allowed set are ignored")
	assert.Equal(t, 2, c.State().Page)
	assert.Equal(t, 50, c.Params().Limit)
}

func TestController_MonthSelection(t *testing.T) {
	c := NewController(testResolver())
	defer c.Close()

	c.OnPeriodChange(period.Month)
	assert.Equal(t, "2025-05-31T21:00:00.000Z", c.Params().DateFrom, "current month until one is chosen")

	c.OnPageChange(5)
	c.OnMonthSelect(period.YearMonth{Year: 2025, Index: time.January})
	st := c.State()
	assert.Equal(t, period.Month, st.Period)
	require.NotNil(t, st.Month)
	assert.Equal(t, time.January, st.Month.Index)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, "2024-12-31T21:00:00.000Z", c.Params().DateFrom)
	assert.Equal(t, "2025-01-31T20:59:59.999Z", c.Params().DateTo)

	c.OnPeriodChange(period.Week)
	assert.Nil(t, c.State().Month, "a non-month period clears the recorded month")
}

func TestController_ParamsTrimSearch(t *testing.T) {
	c := NewController(testResolver())
	defer c.Close()

	c.CommitSearch("   ")
	assert.Empty(t, c.Params().Search)

	c.CommitSearch("  ivan ")
	p := c.Params()
	assert.Equal(t, "ivan", p.Search)
	assert.Equal(t, Params{Page: 1, Limit: 10, Search: "ivan"}, p)
}

func TestController_UnchangedCommitKeepsPage(t *testing.T) {
	c := NewController(testResolver())
	defer c.Close()

	c.CommitSearch("x")
	c.OnPageChange(3)
	assert.False(t, c.CommitSearch("x"))
	assert.Equal(t, 3, c.State().Page)
}

func TestParams_Values(t *testing.T) {
	v := Params{Page: 2, Limit: 20, DateFrom: "a"}.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "20", v.Get("limit"))
	assert.Equal(t, "a", v.Get("dateFrom"))
	assert.False(t, v.Has("search"))
	assert.False(t, v.Has("dateTo"))
}
