package ui

import (
	"net/http"
	"strconv"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

const requestsPath = "/dashboard/requests"

var requestFields = []formField{
	{Name: "fullName", Label: "ФИО", Type: "text", Required: true},
	{Name: "phone", Label: "Телефон", Type: "text", Required: true},
	{Name: "email", Label: "Email", Type: "email", Required: true},
	{Name: "telegram", Label: "Telegram", Type: "text"},
	{Name: "partnerCode", Label: "Код партнера", Type: "text"},
	{Name: "source", Label: "Источник", Type: "text", Required: true},
	{Name: "status", Label: "Статус", Type: "select", Options: requestStatusOptions()},
}

// HandleRequestList renders the requests table.
func (ui *UI) HandleRequestList(w http.ResponseWriter, r *http.Request) {
	s, extra := listState(r, "status")
	lv := ui.newListView(requestsPath, s, extra)
	data := map[string]any{
		"Title":    "Заявки",
		"List":     lv,
		"Statuses": requestStatusOptions(),
		"Status":   extra.Get("status"),
	}

	list, err := ui.client.Requests.List(r.Context(), api.RequestFilter{
		Params: listquery.ParamsFor(s, ui.resolver),
		Status: model.RequestStatus(extra.Get("status")),
	})
	if err != nil {
		fe, status := ui.failFetch(r, "requests", err)
		data["Error"] = fe
		ui.render(w, r, status, "requests", data)
		return
	}

	lv.paginate(list.Total, list.Pages(), len(list.Requests))
	data["Requests"] = list.Requests
	ui.render(w, r, http.StatusOK, "requests", data)
}

// HandleRequestForm renders the create form, or the edit form when the
// route carries an id.
func (ui *UI) HandleRequestForm(w http.ResponseWriter, r *http.Request) {
	id, editing := ui.intParam(r, "id")
	if !editing {
		form := newFormState(requestsPath, requestsPath, requestFields, map[string]string{
			"status": string(model.RequestStatusPending),
		})
		ui.renderForm(w, r, http.StatusOK, "Новая заявка", form)
		return
	}

	rq, err := ui.client.Requests.Get(r.Context(), id)
	if err != nil {
		ui.renderFormFetchError(w, r, "Заявка", "Заявка не найдена", err)
		return
	}
	form := newFormState(requestsPath+"/"+strconv.Itoa(id), requestsPath, requestFields, map[string]string{
		"fullName":    rq.FullName,
		"phone":       rq.Phone,
		"email":       rq.Email,
		"telegram":    rq.Telegram,
		"partnerCode": rq.PartnerCode,
		"source":      rq.Source,
		"status":      string(rq.Status),
	})
	form.Editing = true
	ui.renderForm(w, r, http.StatusOK, "Заявка №"+strconv.Itoa(id), form)
}

// HandleRequestCreate validates and submits a new request.
func (ui *UI) HandleRequestCreate(w http.ResponseWriter, r *http.Request) {
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, "fullName", "phone", "email", "telegram", "partnerCode", "source", "status")
	form := newFormState(requestsPath, requestsPath, requestFields, v)

	in := model.CreateRequest{
		FullName:    v["fullName"],
		Phone:       v["phone"],
		Email:       v["email"],
		Telegram:    v["telegram"],
		PartnerCode: v["partnerCode"],
		Source:      v["source"],
		Status:      model.RequestStatus(v["status"]),
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, "Новая заявка", form)
		return
	}

	rq, err := ui.client.Requests.Create(r.Context(), in)
	if err != nil {
		ui.logger.Error("create request failed", "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), "Новая заявка", form)
		return
	}
	ui.logger.Info("request created", "id", rq.ID)
	done(w, r, requestsPath)
}

// HandleRequestUpdate patches a request with the submitted form.
func (ui *UI) HandleRequestUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		ui.renderNotFound(w, r, "Заявка не найдена")
		return
	}
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, "fullName", "phone", "email", "telegram", "partnerCode", "source", "status")
	form := newFormState(requestsPath+"/"+strconv.Itoa(id), requestsPath, requestFields, v)
	form.Editing = true
	title := "Заявка №" + strconv.Itoa(id)

	in := model.UpdateRequest{
		FullName:    ptr(v["fullName"]),
		Phone:       ptr(v["phone"]),
		Email:       ptr(v["email"]),
		Telegram:    ptr(v["telegram"]),
		PartnerCode: ptr(v["partnerCode"]),
		Source:      ptr(v["source"]),
	}
	if v["status"] != "" {
		in.Status = ptr(model.RequestStatus(v["status"]))
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, title, form)
		return
	}

	if _, err := ui.client.Requests.Update(r.Context(), id, in); err != nil {
		ui.logger.Error("update request failed", "id", id, "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), title, form)
		return
	}
	ui.logger.Info("request updated", "id", id)
	done(w, r, requestsPath)
}

// HandleRequestDelete removes a request row.
func (ui *UI) HandleRequestDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	ui.deleted(w, "request", ui.client.Requests.Delete(r.Context(), id))
}

func (ui *UI) renderForm(w http.ResponseWriter, r *http.Request, status int, title string, form *formState) {
	ui.render(w, r, status, "form", map[string]any{
		"Title": title,
		"Form":  form,
	})
}

// renderFormFetchError answers an edit form whose entity could not be loaded.
func (ui *UI) renderFormFetchError(w http.ResponseWriter, r *http.Request, what, notFound string, err error) {
	fe, status := ui.failFetch(r, what, err)
	if status == http.StatusNotFound {
		ui.renderNotFound(w, r, notFound)
		return
	}
	ui.render(w, r, status, "form", map[string]any{
		"Title": what,
		"Error": fe,
	})
}
