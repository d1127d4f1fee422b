package ui

import (
	"net/http"
	"strconv"
	"time"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

const remindersPath = "/dashboard/reminders"

var reminderFields = []formField{
	{Name: "text", Label: "Текст", Type: "textarea", Required: true},
	{Name: "end", Label: "Напомнить до", Type: "datetime-local", Required: true},
}

// HandleReminderList renders the reminders table.
func (ui *UI) HandleReminderList(w http.ResponseWriter, r *http.Request) {
	s, _ := listState(r)
	lv := ui.newListView(remindersPath, s, nil)
	data := map[string]any{
		"Title": "Напоминания",
		"List":  lv,
	}

	p := listquery.ParamsFor(s, ui.resolver)
	list, err := ui.client.Notifications.List(r.Context(), p)
	if err != nil {
		fe, status := ui.failFetch(r, "reminders", err)
		data["Error"] = fe
		ui.render(w, r, status, "reminders", data)
		return
	}

	items := listquery.Paginate(list.Notifications, p.Page, p.Limit)
	lv.paginate(len(list.Notifications), listquery.TotalPages(len(list.Notifications), p.Limit), len(items))
	data["Reminders"] = items
	ui.render(w, r, http.StatusOK, "reminders", data)
}

// HandleReminderForm renders the reminder create or edit form.
func (ui *UI) HandleReminderForm(w http.ResponseWriter, r *http.Request) {
	id, editing := ui.intParam(r, "id")
	if !editing {
		end := ui.now().Add(24 * time.Hour).Format(dateTimeLocal)
		ui.renderForm(w, r, http.StatusOK, "Новое напоминание", newFormState(remindersPath, remindersPath, reminderFields, map[string]string{"end": end}))
		return
	}

	n, err := ui.client.Notifications.Get(r.Context(), id)
	if err != nil {
		ui.renderFormFetchError(w, r, "Напоминание", "Напоминание не найдено", err)
		return
	}
	form := newFormState(remindersPath+"/"+strconv.Itoa(id), remindersPath, reminderFields, map[string]string{
		"text": n.Text,
		"end":  n.End.In(ui.now().Location()).Format(dateTimeLocal),
	})
	form.Editing = true
	ui.renderForm(w, r, http.StatusOK, "Напоминание №"+strconv.Itoa(id), form)
}

// HandleReminderCreate validates and submits a new reminder. The end time
// is read in the dashboard's time zone.
func (ui *UI) HandleReminderCreate(w http.ResponseWriter, r *http.Request) {
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, "text", "end")
	form := newFormState(remindersPath, remindersPath, reminderFields, v)

	in := model.CreateNotification{
		Text: v["text"],
		End:  formTime(v["end"], ui.now().Location()),
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, "Новое напоминание", form)
		return
	}

	n, err := ui.client.Notifications.Create(r.Context(), in)
	if err != nil {
		ui.logger.Error("create reminder failed", "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), "Новое напоминание", form)
		return
	}
	ui.logger.Info("reminder created", "id", n.ID, "end", n.End)
	done(w, r, remindersPath)
}

// HandleReminderUpdate patches a reminder with the submitted form.
func (ui *UI) HandleReminderUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		ui.renderNotFound(w, r, "Напоминание не найдено")
		return
	}
	if !ui.parseForm(w, r) {
		return
	}
	v := formValues(r, "text", "end")
	form := newFormState(remindersPath+"/"+strconv.Itoa(id), remindersPath, reminderFields, v)
	form.Editing = true
	title := "Напоминание №" + strconv.Itoa(id)

	in := model.UpdateNotification{Text: ptr(v["text"])}
	if end := formTime(v["end"], ui.now().Location()); !end.IsZero() {
		in.End = &end
	}
	if verr := ui.check(in); verr != nil {
		form.fail(verr)
		ui.renderForm(w, r, http.StatusUnprocessableEntity, title, form)
		return
	}

	if _, err := ui.client.Notifications.Update(r.Context(), id, in); err != nil {
		ui.logger.Error("update reminder failed", "id", id, "error", err)
		form.fail(err)
		ui.renderForm(w, r, statusFor(err), title, form)
		return
	}
	ui.logger.Info("reminder updated", "id", id)
	done(w, r, remindersPath)
}

// HandleReminderDelete removes a reminder row.
func (ui *UI) HandleReminderDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := ui.intParam(r, "id")
	if !ok {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	ui.deleted(w, "reminder", ui.client.Notifications.Delete(r.Context(), id))
}
