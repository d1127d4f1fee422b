package ui

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	client    *api.Client
	resolver  *period.Resolver
	sessions  *SessionManager
	logger    *slog.Logger
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	pages     map[string]*template.Template
	intN      func(int) int // random source for test payments
}

// New creates a new UI handler. Page templates are parsed once here.
func New(client *api.Client, resolver *period.Resolver, logger *slog.Logger) *UI {
	ui := &UI{
		client:    client,
		resolver:  resolver,
		sessions:  NewSessionManager(),
		logger:    logger.With("component", "ui"),
		validate:  newValidator(),
		sanitizer: bluemonday.UGCPolicy(),
		intN:      rand.IntN,
	}
	ui.pages = parseTemplates(ui.templateFuncs())
	return ui
}

// HandleSignIn renders the sign-in page.
func (ui *UI) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	ui.render(w, r, http.StatusOK, "sign-in", map[string]any{
		"Title": "Вход",
		"Bare":  true,
	})
}

// HandleSignInPost records the operator's name and opens the dashboard.
// Credentials are not checked.
func (ui *UI) HandleSignInPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
		return
	}

	username := r.FormValue("login")
	if username == "" {
		username = "administrator"
	}
	sess, err := ui.sessions.CreateSession(username, r.FormValue("path"))
	if err != nil {
		ui.logger.Error("create session failed", "error", err)
		http.Redirect(w, r, "/dashboard/statistics", http.StatusSeeOther)
		return
	}
	SetSessionCookie(w, sess)

	ui.logger.Info("operator signed in", "username", username)
	http.Redirect(w, r, "/dashboard/statistics", http.StatusSeeOther)
}

// HandleSignOut clears the session and returns to the sign-in page.
func (ui *UI) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	if sess := ui.sessions.GetSessionFromRequest(r); sess != nil {
		ui.sessions.DeleteSession(sess.ID)
	}
	ClearSessionCookie(w)
	http.Redirect(w, r, "/sign-in", http.StatusSeeOther)
}

// --- Helper Methods ---

func (ui *UI) intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil && n > 0
}

func (ui *UI) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	tmpl, ok := ui.pages[page]
	if !ok {
		ui.logger.Error("template not found", "template", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data["Session"] = SessionFromContext(r.Context())
	data["Nav"] = navItems(r.URL.Path)

	// htmx search requests only replace the results block.
	name := "layout"
	if r.Header.Get("HX-Target") == "results" && tmpl.Lookup("results") != nil {
		name = "results"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		ui.logger.Error("template render failed", "template", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// fetchError describes a failed load for the error panel. The retry link
// repeats the same request.
type fetchError struct {
	Messages []string
	RetryURL string
}

// failFetch logs err and returns the error panel data plus the status to
// answer with. htmx does not swap error responses, so partial requests get
// 200 and show the panel in place.
func (ui *UI) failFetch(r *http.Request, what string, err error) (*fetchError, int) {
	ui.logger.Error("fetch failed", "what", what, "error", err, "retryable", api.IsRetryable(err))
	status := http.StatusBadGateway
	var ae *model.APIError
	if errors.As(err, &ae) && ae.IsNotFound() {
		status = http.StatusNotFound
	}
	if r.Header.Get("HX-Request") == "true" {
		status = http.StatusOK
	}
	return &fetchError{Messages: api.Messages(err), RetryURL: r.URL.RequestURI()}, status
}

func (ui *UI) renderNotFound(w http.ResponseWriter, r *http.Request, message string) {
	ui.render(w, r, http.StatusNotFound, "error", map[string]any{
		"Title":   "Не найдено",
		"Message": message,
	})
}

// now returns the resolver's current time.
func (ui *UI) now() time.Time {
	return ui.resolver.Now()
}

type navItem struct {
	Icon, Label, Href string
	Active            bool
}

var navLinks = []navItem{
	{Icon: "📊", Label: "Дашборд", Href: "/dashboard/statistics"},
	{Icon: "📥", Label: "Заявки", Href: "/dashboard/requests"},
	{Icon: "💳", Label: "Оплаты", Href: "/dashboard/payments"},
	{Icon: "⏳", Label: "Незавершённые", Href: "/dashboard/not-completed-payments"},
	{Icon: "🧾", Label: "Клиенты", Href: "/dashboard/clients"},
	{Icon: "👥", Label: "Посетители", Href: "/dashboard/visitors"},
	{Icon: "🤝", Label: "Партнеры", Href: "/dashboard/partners"},
	{Icon: "🔔", Label: "Напоминания", Href: "/dashboard/reminders"},
	{Icon: "📈", Label: "Аналитика", Href: "/dashboard/analytics"},
}

func navItems(path string) []navItem {
	items := make([]navItem, len(navLinks))
	for i, it := range navLinks {
		it.Active = path == it.Href || (len(path) > len(it.Href) && path[:len(it.Href)+1] == it.Href+"/")
		items[i] = it
	}
	return items
}
