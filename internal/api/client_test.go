package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/me/backoffice/internal/api/apitest"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/internal/querycache"
	"github.com/me/backoffice/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func seeded(t *testing.T) *apitest.Fake {
	t.Helper()
	f := apitest.NewServer(t)
	base := time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)
	for i := range 25 {
		status := model.RequestStatusPending
		if i%2 == 0 {
			status = model.RequestStatusApproved
		}
		f.Requests = append(f.Requests, model.Request{
			ID:        i + 1,
			FullName:  "Client " + string(rune('A'+i)),
			Email:     "c@example.com",
			Source:    "landing",
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	f.Buttons = []model.Button{
		{ID: 1, Name: "Купить", Type: "cta", ClickCount: 10},
		{ID: 2, Name: "Попробовать", Type: "cta", ClickCount: 50},
		{ID: 3, Name: "Узнать", Type: "info", ClickCount: 30},
	}
	return f
}

func TestRequests_ListSendsParams(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger())

	l, err := c.Requests.List(context.Background(), RequestFilter{
		Params: listquery.Params{Page: 2, Limit: 10, Search: "client"},
		Status: model.RequestStatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, 13, l.Total)
	assert.Equal(t, 2, l.Page)
	assert.Len(t, l.Requests, 3)

	call := f.LastCall()
	u, err := url.Parse(strings.TrimPrefix(call, "GET "))
	require.NoError(t, err)
	assert.Equal(t, "/requests", u.Path)
	assert.Equal(t, "2", u.Query().Get("page"))
	assert.Equal(t, "10", u.Query().Get("limit"))
	assert.Equal(t, "client", u.Query().Get("search"))
	assert.Equal(t, "APPROVED", u.Query().Get("status"))
	assert.False(t, u.Query().Has("dateFrom"))
}

func TestRequests_ListDefaultsPaging(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger())

	_, err := c.Requests.List(context.Background(), RequestFilter{})
	require.NoError(t, err)
	assert.Equal(t, "GET /requests?limit=10&page=1", f.LastCall())
}

func TestRequests_ListDateRange(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger())

	r := period.DateRange{
		From: time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC),
		To:   time.Date(2025, time.June, 10, 11, 59, 59, 999e6, time.UTC),
	}
	l, err := c.Requests.List(context.Background(), RequestFilter{
		Params: listquery.Params{DateFrom: r.FromString(), DateTo: r.ToString()},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Total)
}

func TestRequests_CRUD(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger())
	ctx := context.Background()

	created, err := c.Requests.Create(ctx, model.CreateRequest{
		FullName: "Иван Петров", Phone: "+79001234567", Email: "ivan@example.com", Source: "vk",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusPending, created.Status)

	status := model.RequestStatusInProgress
	updated, err := c.Requests.Update(ctx, created.ID, model.UpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	assert.Equal(t, "Иван Петров", updated.FullName)

	got, err := c.Requests.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, status, got.Status)

	require.NoError(t, c.Requests.Delete(ctx, created.ID))

	_, err = c.Requests.Get(ctx, created.ID)
	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.False(t, IsRetryable(err))
}

func TestRequests_ValidationMessages(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger())

	_, err := c.Requests.Create(context.Background(), model.CreateRequest{})
	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, []string{"fullName should not be empty", "email must be an email"}, Messages(err))
}

func TestRequests_StatsAndPartner(t *testing.T) {
	f := seeded(t)
	f.Requests[0].PartnerCode = "P1"
	c := NewClient(f.URL(), testLogger())
	ctx := context.Background()

	s, err := c.Requests.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, s.Total())
	assert.Equal(t, 13, s.Approved)

	l, err := c.Requests.ByPartnerCode(ctx, "P1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, l.Requests, 1)
	assert.Equal(t, "GET /requests/partner/P1?limit=10&page=1", f.LastCall())

	n, err := c.Requests.Count(ctx, listquery.Params{Search: "client a"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPayments_StatsRange(t *testing.T) {
	f := apitest.NewServer(t)
	day := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	f.Payments = []model.Payment{
		{ID: 1, Amount: 150000, Status: model.PaymentStatusCompleted, CreatedAt: day},
		{ID: 2, Amount: 99900, Status: model.PaymentStatusPending, CreatedAt: day},
		{ID: 3, Amount: 500000, Status: model.PaymentStatusCompleted, CreatedAt: day.AddDate(0, -1, 0)},
	}
	c := NewClient(f.URL(), testLogger())

	r := period.NewResolver(period.FixedClock(day), time.UTC).Resolve(period.Today, nil)
	s, err := c.Payments.Stats(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStats{Pending: 1, Completed: 1, TotalAmount: 150000}, s)
	assert.Equal(t, "GET /payments/stats?dateFrom=2025-06-15T00%3A00%3A00.000Z&dateTo=2025-06-15T23%3A59%3A59.999Z", f.LastCall())

	all, err := c.Payments.Stats(context.Background(), period.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, int64(650000), all.TotalAmount)
}

func TestPayments_ListStatusAndCreate(t *testing.T) {
	f := apitest.NewServer(t)
	c := NewClient(f.URL(), testLogger())
	ctx := context.Background()

	_, err := c.Payments.Create(ctx, model.CreatePayment{
		FullName: "Анна", Email: "a@example.com", Source: "Лендинг", Product: "Базовый курс",
		Amount: 250000, Status: model.PaymentStatusCompleted,
	})
	require.NoError(t, err)

	l, err := c.Payments.List(ctx, PaymentFilter{Status: model.PaymentStatusPending})
	require.NoError(t, err)
	assert.Zero(t, l.Total)

	l, err = c.Payments.List(ctx, PaymentFilter{Status: model.PaymentStatusCompleted})
	require.NoError(t, err)
	require.Len(t, l.Payments, 1)
	assert.InDelta(t, 2500.0, l.Payments[0].Rubles(), 0.001)
}

func TestVisitors(t *testing.T) {
	f := apitest.NewServer(t)
	f.Visitors = []model.Visitor{
		{ID: "a1", Country: "RU", Device: "mobile", Browser: "Chrome", TrafficSource: "vk"},
		{ID: "b2", Country: "RU", Device: "desktop", Browser: "Firefox", TrafficSource: "yandex"},
		{ID: "c3", Country: "KZ", Device: "mobile", Browser: "Chrome", TrafficSource: "vk"},
	}
	c := NewClient(f.URL(), testLogger())
	ctx := context.Background()

	stats, err := c.Visitors.StatsBy(ctx, "device")
	require.NoError(t, err)
	assert.Equal(t, model.VisitorStats{"mobile": 2, "desktop": 1}, stats)

	_, err = c.Visitors.StatsBy(ctx, "os")
	assert.Error(t, err)

	ru, err := c.Visitors.ByCountry(ctx, "RU")
	require.NoError(t, err)
	assert.Len(t, ru, 2)

	vk, err := c.Visitors.ByTrafficSource(ctx, "vk")
	require.NoError(t, err)
	assert.Len(t, vk, 2)

	l, err := c.Visitors.List(ctx, VisitorFilter{Country: "RU", Device: "mobile"})
	require.NoError(t, err)
	assert.Equal(t, 1, l.Total)

	v, err := c.Visitors.Get(ctx, "c3")
	require.NoError(t, err)
	assert.Equal(t, "KZ", v.Country)
	assert.Equal(t, "GET /visitors/c3", f.LastCall())
}

func TestPartners_LookupsReturnNilWhenMissing(t *testing.T) {
	f := apitest.NewServer(t)
	f.Partners = []model.Partner{{ID: 7, Name: "Блог", Username: "blogger", Code: "BLOG7"}}
	c := NewClient(f.URL(), testLogger())
	ctx := context.Background()

	p, err := c.Partners.ByCode(ctx, "BLOG7")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.ID)

	p, err = c.Partners.ByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = c.Partners.List(ctx, listquery.Params{Page: 3, Limit: 20, Search: "бл"})
	require.NoError(t, err)
	assert.Equal(t, "GET /partners?search=%D0%B1%D0%BB", f.LastCall(), "partners list is not paginated upstream")
}

func TestPartners_Conflict(t *testing.T) {
	f := apitest.NewServer(t)
	f.Partners = []model.Partner{{ID: 1, Code: "X1"}}
	c := NewClient(f.URL(), testLogger())

	_, err := c.Partners.Create(context.Background(), model.CreatePartner{Name: "n", Code: "X1"})
	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, []string{"Partner code already exists"}, Messages(err))
}

func TestNotifications_Active(t *testing.T) {
	f := apitest.NewServer(t)
	now := time.Now()
	f.Notifications = []model.Notification{
		{ID: 1, Text: "Созвон", End: now.Add(time.Hour)},
		{ID: 2, Text: "Отчёт", End: now.Add(-time.Hour)},
	}
	c := NewClient(f.URL(), testLogger())

	l, err := c.Notifications.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, l.Notifications, 1)
	assert.Equal(t, "Созвон", l.Notifications[0].Text)
}

func TestButtons_TopSortsByClicks(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger(), WithCache(querycache.New(10, time.Minute)))
	ctx := context.Background()

	top, err := c.Buttons.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{top[0].ID, top[1].ID, top[2].ID})
	assert.Equal(t, "GET /buttons?page=1&pageSize=5", f.LastCall())

	l, err := c.Buttons.List(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Data[0].ID, "sorting does not reorder the cached list")

	stats, err := c.Buttons.ClickStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.ButtonStats{{Type: "cta", TotalClicks: 60, ButtonCount: 2}, {Type: "info", TotalClicks: 30, ButtonCount: 1}}, stats)
}

func TestCache_MutationInvalidatesEntity(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger(), WithCache(querycache.New(10, time.Minute)))
	ctx := context.Background()

	_, err := c.Buttons.List(ctx, 1, 10)
	require.NoError(t, err)
	_, err = c.Buttons.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, f.CallCount("GET /buttons?"), "repeat query is served from cache")

	_, err = c.Requests.Stats(ctx)
	require.NoError(t, err)

	clicked, err := c.Buttons.Click(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, clicked.ClickCount)

	l, err := c.Buttons.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, l.Data[0].ClickCount)
	assert.Equal(t, 2, f.CallCount("GET /buttons?"))

	_, err = c.Requests.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.CallCount("GET /requests/stats"), "other entities stay cached")
}

func TestErrors_ServerErrorIsRetryable(t *testing.T) {
	f := seeded(t)
	f.Fail(http.StatusBadGateway, "<html>bad gateway</html>")
	c := NewClient(f.URL(), testLogger(), WithCache(querycache.New(10, time.Minute)))

	_, err := c.Requests.Stats(context.Background())
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
	assert.Equal(t, []string{"Ошибка загрузки данных"}, Messages(err))

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, model.Messages{"<html>bad gateway</html>"}, apiErr.Message)

	_, err = c.Requests.Stats(context.Background())
	assert.NoError(t, err, "failed fetches are not cached")
}

func TestErrors_TransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", testLogger())

	_, err := c.Requests.Stats(context.Background())
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "requests.stats", fe.Endpoint)
	assert.True(t, IsRetryable(err))
}

func TestErrors_CancelledIsNotRetryable(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Requests.Stats(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, IsRetryable(err))
}

func TestIsRetryable_StatusCodes(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{400, false},
		{404, false},
		{408, true},
		{429, true},
		{500, true},
		{503, true},
	}
	for _, tt := range tests {
		err := &model.APIError{StatusCode: tt.status}
		assert.Equal(t, tt.want, IsRetryable(err), "status %d", tt.status)
	}
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestRateLimit(t *testing.T) {
	f := seeded(t)
	c := NewClient(f.URL(), testLogger(), WithRateLimit(1, 1))
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := c.Requests.Stats(ctx)
	require.NoError(t, err)

	_, err = c.Requests.Stats(ctx)
	var fe *FetchError
	require.ErrorAs(t, err, &fe, "second call cannot get a token before the deadline")
	assert.Equal(t, 1, f.CallCount("GET /requests/stats"))
}
