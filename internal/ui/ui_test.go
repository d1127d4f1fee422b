package ui

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/api/apitest"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/logging"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/pkg/model"
)

var msk = time.FixedZone("MSK", 3*60*60)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, msk)

func testUI(t *testing.T) (*UI, http.Handler, *apitest.Fake) {
	t.Helper()
	fake := apitest.NewServer(t)
	fake.Seed(testNow)
	logger := logging.Discard()
	client := api.NewClient(fake.URL(), logger)
	ui := New(client, period.NewResolver(period.FixedClock(testNow), msk), logger)
	ui.intN = func(int) int { return 0 }

	r := chi.NewRouter()
	ui.RegisterRoutes(r)
	return ui, r, fake
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	return serve(h, req)
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return serve(h, req)
}

// lastQuery returns the query of the most recent upstream call starting
// with prefix.
func lastQuery(t *testing.T, fake *apitest.Fake, prefix string) url.Values {
	t.Helper()
	calls := fake.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(calls[i], prefix) {
			_, raw, _ := strings.Cut(calls[i], "?")
			q, err := url.ParseQuery(raw)
			require.NoError(t, err)
			return q
		}
	}
	t.Fatalf("no upstream call with prefix %q in %v", prefix, calls)
	return nil
}

func TestRequestList(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/requests")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "Иванов Иван")
	assert.Contains(t, body, "Отображается 7 из 7")
	assert.Contains(t, body, `href="/dashboard/requests?period=today"`)
	assert.Contains(t, body, "/dashboard/requests/export.xlsx")
}

func TestRequestList_PeriodToday(t *testing.T) {
	_, h, fake := testUI(t)

	w := get(h, "/dashboard/requests?period=today&page=3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Отображается 1 из 1")

	q := lastQuery(t, fake, "GET /requests")
	assert.Equal(t, "2025-06-14T21:00:00.000Z", q.Get("dateFrom"))
	assert.Equal(t, "2025-06-15T20:59:59.999Z", q.Get("dateTo"))
	assert.Equal(t, "10", q.Get("limit"))
}

func TestRequestList_StatusAndSearch(t *testing.T) {
	_, h, fake := testUI(t)

	w := get(h, "/dashboard/requests?status=APPROVED&q=user3")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Сидоров Олег")

	q := lastQuery(t, fake, "GET /requests")
	assert.Equal(t, "APPROVED", q.Get("status"))
	assert.Equal(t, "user3", q.Get("search"))
	assert.Empty(t, q.Get("dateFrom"))
}

func TestRequestList_HTMXSearchRendersResultsOnly(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/requests?q="+url.QueryEscape("Петрова"), "HX-Request", "true", "HX-Target", "results")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Петрова Анна")
	assert.Contains(t, body, "Отображается 1 из 1")
	assert.Contains(t, body, "q=%D0%9F%D0%B5%D1%82%D1%80%D0%BE%D0%B2%D0%B0")
}

func TestRequestList_UpstreamFailure(t *testing.T) {
	_, h, fake := testUI(t)

	fake.Fail(http.StatusInternalServerError, `{"statusCode":500,"message":"boom"}`)
	w := get(h, "/dashboard/requests?period=week")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Ошибка загрузки данных")
	assert.NotContains(t, body, "boom")
	assert.Contains(t, body, `href="/dashboard/requests?period=week"`)
	assert.Contains(t, body, "Повторить")

	fake.Fail(http.StatusInternalServerError, `{}`)
	w = get(h, "/dashboard/requests", "HX-Request", "true", "HX-Target", "results")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ошибка загрузки данных")
}

func TestRequestCreate_Validation(t *testing.T) {
	_, h, fake := testUI(t)

	w := postForm(h, "/dashboard/requests", url.Values{
		"fullName": {"Тест"},
		"phone":    {"+79000000000"},
		"email":    {"not-an-email"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "email: некорректный email")
	assert.Contains(t, body, "source: обязательное поле")
	assert.Contains(t, body, `value="Тест"`)
	assert.Zero(t, fake.CallCount("POST /requests"))
}

func TestRequestCreate(t *testing.T) {
	_, h, fake := testUI(t)

	w := postForm(h, "/dashboard/requests", url.Values{
		"fullName": {"Тест Тестов"},
		"phone":    {"+79000000000"},
		"email":    {"test@example.com"},
		"source":   {"Лендинг"},
		"status":   {"PENDING"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, requestsPath, w.Header().Get("Location"))
	assert.Equal(t, 1, fake.CallCount("POST /requests"))
}

func TestFormHandlers_RejectMalformedBody(t *testing.T) {
	_, h, fake := testUI(t)

	for _, path := range []string{
		"/dashboard/requests",
		"/dashboard/requests/1",
		"/dashboard/visitors",
		"/dashboard/partners/1",
		"/dashboard/reminders",
	} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("fullName=%zz"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "Не удалось прочитать данные формы", path)
	}
	for _, call := range fake.Calls() {
		assert.False(t, strings.HasPrefix(call, "POST ") || strings.HasPrefix(call, "PATCH "), call)
	}
}

func TestRequestForm_Edit(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/requests/2/edit")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `action="/dashboard/requests/2"`)
	assert.Contains(t, body, `value="Петрова Анна"`)
	assert.Contains(t, body, "Сохранить")

	w = get(h, "/dashboard/requests/999/edit")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Заявка не найдена")
}

func TestRequestDelete(t *testing.T) {
	_, h, fake := testUI(t)

	w := serve(h, httptest.NewRequest(http.MethodDelete, "/dashboard/requests/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, fake.CallCount("DELETE /requests/1"))

	w = serve(h, httptest.NewRequest(http.MethodDelete, "/dashboard/requests/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "none", w.Header().Get("HX-Reswap"))
}

func TestPaymentLists(t *testing.T) {
	_, h, fake := testUI(t)

	w := get(h, "/dashboard/payments")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Отображается 5 из 5")
	assert.Equal(t, "COMPLETED", lastQuery(t, fake, "GET /payments").Get("status"))

	w = get(h, "/dashboard/not-completed-payments")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Отображается 2 из 2")
	assert.Equal(t, "PENDING", lastQuery(t, fake, "GET /payments").Get("status"))

	w = get(h, "/dashboard/clients")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Дата покупки")
}

func TestTestPayment(t *testing.T) {
	ui, h, fake := testUI(t)

	in := ui.testPayment()
	assert.Equal(t, model.PaymentStatusPending, in.Status)
	assert.Equal(t, int64(1000), in.Amount)
	assert.Equal(t, "test0@example.com", in.Email)
	assert.NoError(t, ui.validate.Struct(in))

	w := postForm(h, "/dashboard/payments/test", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, pendingPaymentsPath, w.Header().Get("Location"))
	assert.Equal(t, 1, fake.CallCount("POST /payments"))
}

func TestVisitorList_Country(t *testing.T) {
	_, h, fake := testUI(t)

	w := get(h, "/dashboard/visitors?country="+url.QueryEscape("Казахстан"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Отображается 3 из 3")
	assert.Equal(t, "Казахстан", lastQuery(t, fake, "GET /visitors").Get("country"))
	// The period bar keeps the country filter.
	assert.Contains(t, w.Body.String(), "country=%D0%9A")
}

func TestPartnerList_PaginatesLocally(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/partners")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Партнёр Один")
	assert.Contains(t, body, "Партнёр Два")
	assert.Contains(t, body, "Отображается 2 из 2")

	w = get(h, "/dashboard/partners?page=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ничего не найдено")
}

func TestPartnerDetail(t *testing.T) {
	_, h, fake := testUI(t)

	w := get(h, "/dashboard/partners/1")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "PARTNER1")
	assert.Contains(t, body, "Иванов Иван")
	assert.Contains(t, body, "Отображается 7 из 7")
	assert.Equal(t, 1, fake.CallCount("GET /requests/partner/PARTNER1"))

	w = get(h, "/dashboard/partners/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPartnerCreate_Validation(t *testing.T) {
	_, h, fake := testUI(t)

	w := postForm(h, "/dashboard/partners", url.Values{
		"name":          {"Новый"},
		"username":      {"new"},
		"requisites":    {"4276"},
		"requisiteType": {"Card"},
		"bonusStatus":   {"PENDING"},
		"code":          {"не-латиница"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "code: допустимы только латинские буквы и цифры")
	assert.Zero(t, fake.CallCount("POST /partners"))
}

func TestReminderList(t *testing.T) {
	_, h, fake := testUI(t)
	fake.Notifications = append(fake.Notifications, model.Notification{
		ID:        3,
		Text:      `<script>alert(1)</script>Купить хлеб`,
		End:       testNow.Add(30 * time.Minute),
		CreatedAt: testNow,
	})

	w := get(h, "/dashboard/reminders")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<b>Иванову</b>")
	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, "Купить хлеб")
	assert.Contains(t, body, "Через 2 дня")
	assert.Contains(t, body, "Через 30 минут")
	assert.Contains(t, body, "Истекло")
}

func TestReminderCreate_ReadsLocalTime(t *testing.T) {
	_, h, fake := testUI(t)

	w := postForm(h, "/dashboard/reminders", url.Values{
		"text": {"Созвон"},
		"end":  {"2025-06-16T10:30"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, 1, fake.CallCount("POST /notifications"))

	var created model.Notification
	for _, n := range fake.Notifications {
		if n.Text == "Созвон" {
			created = n
		}
	}
	assert.True(t, created.End.Equal(time.Date(2025, 6, 16, 7, 30, 0, 0, time.UTC)), "End = %v", created.End)
}

func TestStatistics(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/statistics?period=today")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Выручка")
	assert.Contains(t, body, "Попробовать")
	assert.Contains(t, body, "Сегодня")

	w = get(h, "/dashboard/statistics?period=month")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Июнь")
}

func TestAnalytics(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/analytics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Узнать больше")
	assert.Contains(t, body, "Россия")
	assert.Contains(t, body, "Браузеры")
}

func TestExportRequests(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/dashboard/requests/export.xlsx?size=20&page=2")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "requests-2025-06-15.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Заявки")
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, "ФИО", rows[0][1])
	assert.Equal(t, "Иванов Иван", rows[1][1])
}

func TestSignInFlow(t *testing.T) {
	_, h, _ := testUI(t)

	w := get(h, "/sign-in")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Вход в панель")

	w = postForm(h, "/sign-in", url.Values{"login": {"anna"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, statisticsPath, w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/requests", nil)
	req.AddCookie(cookies[0])
	w = serve(h, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anna")
	assert.Contains(t, w.Body.String(), "Выйти")
}

func TestNewListView_Links(t *testing.T) {
	ui, _, _ := testUI(t)
	s := listquery.DefaultState()
	s.Period = period.Month
	s.Page = 3
	s.DebouncedSearch = "иван"

	lv := ui.newListView(requestsPath, s, url.Values{"status": {"APPROVED"}})
	require.Len(t, lv.Months, 6)
	assert.True(t, lv.Months[len(lv.Months)-1].Active)
	assert.Equal(t, "Июнь", lv.Months[len(lv.Months)-1].Label)

	// Switching to another period resets the page.
	for _, l := range lv.Periods {
		assert.Contains(t, l.URL, "status=APPROVED")
		if !l.Active {
			assert.NotContains(t, l.URL, "page=", l.Label)
		}
	}
	assert.NotEmpty(t, lv.Reset)
	assert.NotContains(t, lv.Hidden, "q")
	assert.NotContains(t, lv.Hidden, "page")
	assert.Equal(t, "month", lv.Hidden.Get("period"))

	lv.paginate(95, 10, 10)
	assert.Len(t, lv.Pages, listquery.PagerWidth)
	assert.Contains(t, lv.NextURL, "page=4")
	assert.Contains(t, lv.PrevURL, "page=2")
}

func TestCheck_UsesJSONNames(t *testing.T) {
	ui, _, _ := testUI(t)

	verr := ui.check(model.CreateNotification{})
	require.NotNil(t, verr)
	assert.Equal(t, http.StatusUnprocessableEntity, verr.StatusCode)
	fields := make([]string, len(verr.Details))
	for i, d := range verr.Details {
		fields[i] = d.Field
	}
	assert.ElementsMatch(t, []string{"text", "end"}, fields)
	assert.Nil(t, ui.check(model.CreateNotification{Text: "x", End: testNow}))
}
