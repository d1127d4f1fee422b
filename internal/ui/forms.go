package ui

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/pkg/model"
)

// dateTimeLocal is the value format of <input type="datetime-local">.
const dateTimeLocal = "2006-01-02T15:04"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"required": "обязательное поле",
	"email":    "некорректный email",
	"max":      "слишком длинное значение",
	"oneof":    "недопустимое значение",
	"alphanum": "допустимы только латинские буквы и цифры",
	"url":      "некорректный URL",
	"gt":       "значение должно быть больше нуля",
	"gte":      "значение не может быть отрицательным",
}

// check validates in and converts failures into field errors keyed by the
// JSON field name, ready for the form template.
func (ui *UI) check(in any) *model.APIError {
	err := ui.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewValidationError(err.Error())
	}
	details := make([]model.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "некорректное значение"
		}
		details = append(details, model.FieldError{Field: fe.Field(), Message: fe.Field() + ": " + msg})
	}
	return &model.APIError{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    messagesOf(details),
		Kind:       "Unprocessable Entity",
		Details:    details,
	}
}

func messagesOf(details []model.FieldError) model.Messages {
	msgs := make(model.Messages, len(details))
	for i, d := range details {
		msgs[i] = d.Message
	}
	return msgs
}

// formState is what a create/edit form template renders.
type formState struct {
	Action  string
	Cancel  string
	Editing bool
	Inputs  []formField
	Values  map[string]string
	Errors  []string
	Invalid map[string]bool
}

func newFormState(action, cancel string, inputs []formField, values map[string]string) *formState {
	if values == nil {
		values = map[string]string{}
	}
	return &formState{Action: action, Cancel: cancel, Inputs: inputs, Values: values, Invalid: map[string]bool{}}
}

// fail records the messages of a rejected submission. Upstream validation
// errors are shown verbatim; anything else gets the generic message.
func (f *formState) fail(err error) {
	var ae *model.APIError
	if errors.As(err, &ae) && len(ae.Details) > 0 {
		for _, d := range ae.Details {
			f.Invalid[d.Field] = true
			f.Errors = append(f.Errors, d.Message)
		}
		return
	}
	f.Errors = append(f.Errors, api.Messages(err)...)
}

// parseForm parses the submitted form and answers 400 when the body is
// malformed.
func (ui *UI) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		ui.logger.Warn("malformed form", "path", r.URL.Path, "error", err)
		ui.render(w, r, http.StatusBadRequest, "error", map[string]any{
			"Title":   "Некорректный запрос",
			"Message": "Не удалось прочитать данные формы",
		})
		return false
	}
	return true
}

// formValues reads the named fields of a parsed form, trimmed.
func formValues(r *http.Request, names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, n := range names {
		out[n] = strings.TrimSpace(r.PostFormValue(n))
	}
	return out
}

func formInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func formTime(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(dateTimeLocal, s, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ptr[T any](v T) *T { return &v }

// statusFor is the response status of a failed submission: the upstream
// client error as is, anything else as a bad gateway.
func statusFor(err error) int {
	var ae *model.APIError
	if errors.As(err, &ae) && ae.StatusCode < http.StatusInternalServerError {
		return ae.StatusCode
	}
	return http.StatusBadGateway
}

// done redirects to target after a successful submission.
func done(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// deleted answers an htmx row delete. On failure the row stays in place.
func (ui *UI) deleted(w http.ResponseWriter, what string, err error) {
	if err != nil {
		ui.logger.Error("delete failed", "what", what, "error", err)
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(statusFor(err))
		return
	}
	// Return empty response for HTMX to remove the element.
	w.WriteHeader(http.StatusOK)
}

type option struct {
	Value, Label string
}

// formField is one input of an entity form.
type formField struct {
	Name     string
	Label    string
	Type     string // text, email, number, datetime-local, textarea, select
	Required bool
	Options  []option
}

func requestStatusOptions() []option {
	opts := make([]option, len(model.RequestStatuses))
	for i, s := range model.RequestStatuses {
		opts[i] = option{Value: string(s), Label: s.Label()}
	}
	return opts
}

func paymentStatusOptions(label func(model.PaymentStatus) string) []option {
	return []option{
		{Value: string(model.PaymentStatusPending), Label: label(model.PaymentStatusPending)},
		{Value: string(model.PaymentStatusCompleted), Label: label(model.PaymentStatusCompleted)},
	}
}
