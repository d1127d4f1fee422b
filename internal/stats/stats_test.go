package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/api/apitest"
	"github.com/me/backoffice/internal/logging"
	"github.com/me/backoffice/internal/period"
)

func TestCollect(t *testing.T) {
	now := time.Now()
	f := apitest.NewServer(t)
	f.Seed(now)
	c := api.NewClient(f.URL(), logging.Discard())

	s, err := Collect(context.Background(), c, period.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, 7, s.Visitors)
	assert.Equal(t, 7, s.Requests)
	assert.Equal(t, 5, s.CompletedPayments)
	assert.Equal(t, 2, s.PendingPayments)
	assert.Equal(t, 7, s.RequestsByStatus.Total())
	require.Len(t, s.TopButtons, 3)
	assert.Equal(t, "Попробовать", s.TopButtons[0].Name)
	require.Len(t, s.Reminders, 1)
	assert.Equal(t, 1, s.Reminders[0].ID)
	assert.InDelta(t, 5.0*100/7, s.Conversion(), 0.001)
	assert.Empty(t, s.DateFrom)
}

func TestCollect_NarrowsToRange(t *testing.T) {
	now := time.Now()
	f := apitest.NewServer(t)
	f.Seed(now)
	c := api.NewClient(f.URL(), logging.Discard())

	r := period.NewResolver(period.FixedClock(now), time.Local).Resolve(period.Today, nil)
	s, err := Collect(context.Background(), c, r)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Requests)
	assert.Equal(t, 1, s.Visitors)
	assert.Equal(t, 1, s.CompletedPayments)
	assert.Equal(t, int64(100000), s.Revenue)
	assert.InDelta(t, 1000.0, s.RevenueRubles(), 0.001)
	assert.Equal(t, r.FromString(), s.DateFrom)
}

func TestCollect_FirstErrorWins(t *testing.T) {
	f := apitest.NewServer(t)
	for range 7 {
		f.Fail(500, `{"statusCode":500,"message":"boom"}`)
	}
	c := api.NewClient(f.URL(), logging.Discard())

	_, err := Collect(context.Background(), c, period.DateRange{})
	require.Error(t, err)
	assert.True(t, api.IsRetryable(err))
}

func TestSummary_ConversionWithoutRequests(t *testing.T) {
	assert.Zero(t, Summary{CompletedPayments: 3}.Conversion())
}
