package ui

import (
	"net/http"
	"strconv"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

const partnersPath = "/dashboard/partners"

var partnerFields = []formField{
	{Name: "name", Label: "Имя", Type: "text", Required: true},
	{Name: "username", Label: "Telegram username", Type: "text", Required: true},
	{Name: "code", Label: "Реферальный код", Type: "text", Required: true},
	{Name: "requisites", Label: "Реквизиты", Type: "text", Required: true},
	{Name: "requisiteType", Label: "Тип реквизитов", Type: "select", Options: []option{
		{Value: string(model.RequisiteCard), Label: model.RequisiteCard.Label()},
		{Value: string(model.RequisiteYoomoney), Label: model.RequisiteYoomoney.Label()},
	}},
	{Name: "bonusStatus", Label: "Бонус", Type: "select", Options: paymentStatusOptions(model.PaymentStatus.BonusLabel)},
}

var partnerFieldNames = []string{"name", "username", "code", "requisites", "requisiteType", "bonusStatus"}

// HandlePartnerList renders the partners table. The endpoint returns every
// match, so the page is cut here.
func (ui *UI) HandlePartnerList(w http.ResponseWriter, r *http.Request) {
	s, _ := listState(r)
	lv := ui.newListView(partnersPath, s, nil)
	data := map[string]any{
		"Title": "Партнеры",
		"List":  lv,
	}

	p := listquery.ParamsFor(s, ui.resolver)
	list, err := ui.client.Partners.List(r.Context(), p)
	if err != nil {
		fe, status := ui.failFetch(r, "partners", err)
		data["Error"] = fe
		ui.render(w, r, status, "partners", data)
		return
	}

	items := listquery.Paginate(list.Partners, p.Page, p.Limit)
	lv.paginate(len(list.Partners), listquery.TotalPages(len(list.Partners), p.Limit), len(items))
	data["Partners"] = items
	ui.render(w, r, http.StatusOK, "partners", data)
}

// HandlePartnerDetail renders a partner with the requests attributed to its
// referral code.
func (ui *UI) HandlePartnerDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		ui.renderNotFound(w, r, "Партнер не найден")
		return
	}

	partner, err := ui.client.Partners.Get(r.Context(), id)
	if err != nil {
		fe, status := ui.failFetch(r, "partner", err)
		if status == http.StatusNotFound {
			ui.renderNotFound(w, r, "Партнер не найден")
			return
		}
		ui.render(w, r, status, "partner", map[string]any{"Title": "Партнер", "Error": fe})
		return
	}

	path := partnersPath + "/" + strconv.Itoa(id)
	s, _ := listState(r)
	lv := ui.newListView(path, s, nil)
	data := map[string]any{
		"Title":   partner.Name,
		"Partner": partner,
		"List":    lv,
	}

	list, err := ui.client.Requests.ByPartnerCode(r.Context(), partner.Code, s.Page, s.PageSize)
	if err != nil {
		fe, status := ui.failFetch(r, "partner requests", err)
		data["Error"] = fe
		ui.render(w, r, status, "partner", data)
		return
	}
	lv.paginate(list.Total, list.Pages(), len(list.Requests))
	data["Requests"] = list.Requests
	ui.render(w, r, http.StatusOK, "partner", data)
}

// HandlePartnerForm renders the partner create or edit form.
func (ui *UI) HandlePartnerForm(w http.ResponseWriter, r *http.Request) {
	id, editing := ui.intParam(r, "id")
	if !editing {
		form := newFormState(partnersPath, partnersPath, partnerFields, map[string]string{
			"requisiteType": string(model.RequisiteCard),
			"bonusStatus":   string(model.PaymentStatusPending),
		})
		ui.renderForm(w, r, http.StatusOK, "Новый партнер", form)
		return
	}

	p, err := ui.client.Partners.Get(r.Context(), id)
	if err != nil {
		ui.renderFormFetchError(w, r, "Партнер", "Партнер не найден", err)
		return
	}
	form := newFormState(partnersPath+"/"+strconv.Itoa(id), partnersPath, partnerFields, map[string]string{
		"name":          p.Name,
		"username":      p.Username,
		"code":          p.Code,
		"requisites":    p.Requisites,
		"requisiteType": string(p.RequisiteType),
		"bonusStatus":   string(p.BonusStatus),
	})
	form.Editing = true
	ui.renderForm(w, r, http.StatusOK, p.Name, form)
}

// HandlePartnerCreate validates and submits a new partner.
func (ui *UI) HandlePartnerCreate(w http.ResponseWriter, r *http.Request) {
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, partnerFieldNames...)
	form := newFormState(partnersPath, partnersPath, partnerFields, v)

	in := model.CreatePartner{
		Name:          v["name"],
		Username:      v["username"],
		Requisites:    v["requisites"],
		RequisiteType: model.RequisiteType(v["requisiteType"]),
		BonusStatus:   model.PaymentStatus(v["bonusStatus"]),
		Code:          v["code"],
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, "Новый партнер", form)
		return
	}

	p, err := ui.client.Partners.Create(r.Context(), in)
	if err != nil {
		ui.logger.Error("create partner failed", "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), "Новый партнер", form)
		return
	}
	ui.logger.Info("partner created", "id", p.ID, "code", p.Code)
	done(w, r, partnersPath)
}

// HandlePartnerUpdate patches a partner with the submitted form.
func (ui *UI) HandlePartnerUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		ui.renderNotFound(w, r, "Партнер не найден")
		return
	}
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, partnerFieldNames...)
	form := newFormState(partnersPath+"/"+strconv.Itoa(id), partnersPath, partnerFields, v)
	form.Editing = true
	title := v["name"]

	in := model.UpdatePartner{
		Name:          ptr(v["name"]),
		Username:      ptr(v["username"]),
		Requisites:    ptr(v["requisites"]),
		RequisiteType: ptr(model.RequisiteType(v["requisiteType"])),
		BonusStatus:   ptr(model.PaymentStatus(v["bonusStatus"])),
		Code:          ptr(v["code"]),
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, title, form)
		return
	}

	if _, err := ui.client.Partners.Update(r.Context(), id, in); err != nil {
		ui.logger.Error("update partner failed", "id", id, "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), title, form)
		return
	}
	ui.logger.Info("partner updated", "id", id)
	done(w, r, partnersPath)
}

// HandlePartnerDelete removes a partner row.
func (ui *UI) HandlePartnerDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	ui.deleted(w, "partner", ui.client.Partners.Delete(r.Context(), id))
}
