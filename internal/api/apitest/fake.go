// Package apitest provides an in-memory fake of the back-office REST API
// for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/backoffice/pkg/model"
)

// Fake is an in-memory upstream API. Exported slices may be seeded before
// the first request; afterwards use the accessor methods.
type Fake struct {
	mu sync.Mutex

	Requests      []model.Request
	Payments      []model.Payment
	Visitors      []model.Visitor
	Partners      []model.Partner
	Notifications []model.Notification
	Buttons       []model.Button

	calls    []string
	failures []failure
	nextID   int

	srv *httptest.Server
}

type failure struct {
	status int
	body   string
}

// NewServer starts a Fake and closes it when the test ends.
func NewServer(t testing.TB) *Fake {
	t.Helper()
	f := &Fake{nextID: 1000}
	f.srv = httptest.NewServer(f.routes())
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the base URL of the fake.
func (f *Fake) URL() string {
	return f.srv.URL
}

// Fail makes the next request answer status with body.
func (f *Fake) Fail(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = append(f.failures, failure{status: status, body: body})
}

// Calls returns the requests served so far as "METHOD /path?query".
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallCount returns how many served requests start with prefix.
func (f *Fake) CallCount(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// LastCall returns the most recent request, or "" if none.
func (f *Fake) LastCall() string {
	calls := f.Calls()
	if len(calls) == 0 {
		return ""
	}
	return calls[len(calls)-1]
}

func (f *Fake) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(f.record)

	r.Route("/requests", func(r chi.Router) {
		r.Get("/", f.listRequests)
		r.Post("/", f.createRequest)
		r.Get("/stats", f.requestStats)
		r.Get("/partner/{code}", f.requestsByPartner)
		r.Get("/{id}", f.getRequest)
		r.Patch("/{id}", f.updateRequest)
		r.Delete("/{id}", f.deleteRequest)
	})
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", f.listPayments)
		r.Post("/", f.createPayment)
		r.Get("/stats", f.paymentStats)
		r.Get("/{id}", f.getPayment)
	})
	r.Route("/visitors", func(r chi.Router) {
		r.Get("/", f.listVisitors)
		r.Post("/", f.createVisitor)
		r.Get("/stats/{dim}", f.visitorStats)
		r.Get("/search/country/{value}", f.visitorsBy("country"))
		r.Get("/search/traffic-source/{value}", f.visitorsBy("trafficSource"))
		r.Get("/{id}", f.getVisitor)
		r.Patch("/{id}", f.updateVisitor)
		r.Delete("/{id}", f.deleteVisitor)
	})
	r.Route("/partners", func(r chi.Router) {
		r.Get("/", f.listPartners)
		r.Post("/", f.createPartner)
		r.Get("/search/by-code", f.partnerBy(func(p model.Partner, v string) bool { return p.Code == v }, "code"))
		r.Get("/search/by-username", f.partnerBy(func(p model.Partner, v string) bool { return p.Username == v }, "username"))
		r.Get("/{id}", f.getPartner)
		r.Patch("/{id}", f.updatePartner)
		r.Delete("/{id}", f.deletePartner)
	})
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", f.listNotifications)
		r.Post("/", f.createNotification)
		r.Get("/active", f.activeNotifications)
		r.Get("/{id}", f.getNotification)
		r.Patch("/{id}", f.updateNotification)
		r.Delete("/{id}", f.deleteNotification)
	})
	r.Route("/buttons", func(r chi.Router) {
		r.Get("/", f.listButtons)
		r.Post("/", f.createButton)
		r.Get("/stats/clicks", f.buttonStats)
		r.Get("/{id}", f.getButton)
		r.Patch("/{id}", f.updateButton)
		r.Delete("/{id}", f.deleteButton)
		r.Post("/{id}/click", f.clickButton)
	})
	return r
}

func (f *Fake) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			call += "?" + r.URL.RawQuery
		}

		f.mu.Lock()
		f.calls = append(f.calls, call)
		var fail *failure
		if len(f.failures) > 0 {
			fail = &f.failures[0]
			f.failures = f.failures[1:]
		}
		f.mu.Unlock()

		if fail != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(fail.status)
			w.Write([]byte(fail.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, resource, id string) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"statusCode": 404,
		"message":    resource + " with ID " + id + " not found",
		"error":      "Not Found",
	})
}

func badRequest(w http.ResponseWriter, msgs ...string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"statusCode": 400,
		"message":    msgs,
		"error":      "Bad Request",
	})
}

func intID(r *http.Request) int {
	n, _ := strconv.Atoi(chi.URLParam(r, "id"))
	return n
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "invalid JSON body")
		return false
	}
	return true
}

type listQuery struct {
	page, limit int
	search      string
	from, to    time.Time
}

func parseListQuery(r *http.Request, limitKey string) listQuery {
	q := r.URL.Query()
	lq := listQuery{page: 1, limit: 10, search: strings.ToLower(q.Get("search"))}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		lq.page = n
	}
	if n, err := strconv.Atoi(q.Get(limitKey)); err == nil && n > 0 {
		lq.limit = n
	}
	if t, err := time.Parse(time.RFC3339Nano, q.Get("dateFrom")); err == nil {
		lq.from = t
	}
	if t, err := time.Parse(time.RFC3339Nano, q.Get("dateTo")); err == nil {
		lq.to = t
	}
	return lq
}

func (lq listQuery) inRange(t time.Time) bool {
	if !lq.from.IsZero() && t.Before(lq.from) {
		return false
	}
	if !lq.to.IsZero() && t.After(lq.to) {
		return false
	}
	return true
}

func (lq listQuery) matches(fields ...string) bool {
	if lq.search == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), lq.search) {
			return true
		}
	}
	return false
}

func page[T any](items []T, lq listQuery) ([]T, model.Pagination) {
	p := model.Pagination{Total: len(items), Page: lq.page, Limit: lq.limit}
	p.TotalPages = p.Pages()
	start := min((lq.page-1)*lq.limit, len(items))
	end := min(start+lq.limit, len(items))
	out := slices.Clone(items[start:end])
	if out == nil {
		out = []T{}
	}
	return out, p
}

func (f *Fake) newID() int {
	f.nextID++
	return f.nextID
}
