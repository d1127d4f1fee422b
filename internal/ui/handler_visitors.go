package ui

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

const visitorsPath = "/dashboard/visitors"

var visitorFields = []formField{
	{Name: "trafficSource", Label: "Источник трафика", Type: "text", Required: true},
	{Name: "utmTags", Label: "UTM-метки", Type: "text"},
	{Name: "country", Label: "Страна", Type: "text", Required: true},
	{Name: "device", Label: "Устройство", Type: "text", Required: true},
	{Name: "browser", Label: "Браузер", Type: "text", Required: true},
	{Name: "pagesViewed", Label: "Просмотрено страниц", Type: "number"},
	{Name: "timeOnSite", Label: "Время на сайте", Type: "text", Required: true},
	{Name: "cookieFile", Label: "Cookie", Type: "text", Required: true},
}

var visitorFieldNames = []string{"trafficSource", "utmTags", "country", "device", "browser", "pagesViewed", "timeOnSite", "cookieFile"}

// HandleVisitorList renders the visitors table, optionally narrowed to a
// country.
func (ui *UI) HandleVisitorList(w http.ResponseWriter, r *http.Request) {
	s, extra := listState(r, "country")
	lv := ui.newListView(visitorsPath, s, extra)
	data := map[string]any{
		"Title":   "Посетители",
		"List":    lv,
		"Country": extra.Get("country"),
	}

	list, err := ui.client.Visitors.List(r.Context(), api.VisitorFilter{
		Params:  listquery.ParamsFor(s, ui.resolver),
		Country: extra.Get("country"),
	})
	if err != nil {
		fe, status := ui.failFetch(r, "visitors", err)
		data["Error"] = fe
		ui.render(w, r, status, "visitors", data)
		return
	}

	lv.paginate(list.Total, list.Pages(), len(list.Visitors))
	data["Visitors"] = list.Visitors
	ui.render(w, r, http.StatusOK, "visitors", data)
}

// HandleVisitorForm renders the visitor create or edit form.
func (ui *UI) HandleVisitorForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		ui.renderForm(w, r, http.StatusOK, "Новый посетитель", newFormState(visitorsPath, visitorsPath, visitorFields, map[string]string{"pagesViewed": "1"}))
		return
	}

	v, err := ui.client.Visitors.Get(r.Context(), id)
	if err != nil {
		ui.renderFormFetchError(w, r, "Посетитель", "Посетитель не найден", err)
		return
	}
	form := newFormState(visitorsPath+"/"+id, visitorsPath, visitorFields, map[string]string{
		"trafficSource": v.TrafficSource,
		"utmTags":       v.UTMTags,
		"country":       v.Country,
		"device":        v.Device,
		"browser":       v.Browser,
		"pagesViewed":   strconv.Itoa(v.PagesViewed),
		"timeOnSite":    v.TimeOnSite,
		"cookieFile":    v.CookieFile,
	})
	form.Editing = true
	ui.renderForm(w, r, http.StatusOK, "Посетитель "+id, form)
}

// HandleVisitorCreate validates and submits a new visitor.
func (ui *UI) HandleVisitorCreate(w http.ResponseWriter, r *http.Request) {
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, visitorFieldNames...)
	form := newFormState(visitorsPath, visitorsPath, visitorFields, v)

	in := model.CreateVisitor{
		TrafficSource: v["trafficSource"],
		UTMTags:       v["utmTags"],
		Country:       v["country"],
		Device:        v["device"],
		Browser:       v["browser"],
		PagesViewed:   formInt(v["pagesViewed"]),
		TimeOnSite:    v["timeOnSite"],
		CookieFile:    v["cookieFile"],
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, "Новый посетитель", form)
		return
	}

	created, err := ui.client.Visitors.Create(r.Context(), in)
	if err != nil {
		ui.logger.Error("create visitor failed", "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), "Новый посетитель", form)
		return
	}
	ui.logger.Info("visitor created", "id", created.ID)
	done(w, r, visitorsPath)
}

// HandleVisitorUpdate patches a visitor with the submitted form.
func (ui *UI) HandleVisitorUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, visitorFieldNames...)
	form := newFormState(visitorsPath+"/"+id, visitorsPath, visitorFields, v)
	form.Editing = true
	title := "Посетитель " + id

	in := model.UpdateVisitor{
		TrafficSource: ptr(v["trafficSource"]),
		UTMTags:       ptr(v["utmTags"]),
		Country:       ptr(v["country"]),
		Device:        ptr(v["device"]),
		Browser:       ptr(v["browser"]),
		PagesViewed:   ptr(formInt(v["pagesViewed"])),
		TimeOnSite:    ptr(v["timeOnSite"]),
		CookieFile:    ptr(v["cookieFile"]),
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, title, form)
		return
	}

	if _, err := ui.client.Visitors.Update(r.Context(), id, in); err != nil {
		ui.logger.Error("update visitor failed", "id", id, "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), title, form)
		return
	}
	ui.logger.Info("visitor updated", "id", id)
	done(w, r, visitorsPath)
}

// HandleVisitorDelete removes a visitor row.
func (ui *UI) HandleVisitorDelete(w http.ResponseWriter, r *http.Request) {
	ui.deleted(w, "visitor", ui.client.Visitors.Delete(r.Context(), chi.URLParam(r, "id")))
}
