package ui

import (
	"html/template"
	"time"

	"github.com/me/backoffice/internal/format"
	"github.com/me/backoffice/pkg/model"
)

func (ui *UI) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"rubles":  format.Rubles,
		"count":   format.Count,
		"percent": format.Percent,
		"dash":    format.Dash,
		"plural":  format.Plural,
		"dateTime": func(t time.Time) string {
			return format.DateTime(t, ui.now().Location())
		},
		"date": func(t time.Time) string {
			return format.Date(t, ui.now().Location())
		},
		"dateTimeInput": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(ui.now().Location()).Format(dateTimeLocal)
		},
		"timeLeft": func(end time.Time) string {
			return format.TimeLeft(end, ui.now())
		},
		"expired": func(end time.Time) bool {
			return !end.After(ui.now())
		},
		// safe strips reminder text down to the allowed markup.
		"safe": func(s string) template.HTML {
			return template.HTML(ui.sanitizer.Sanitize(s))
		},
		"requestStatuses": func() []model.RequestStatus {
			return model.RequestStatuses
		},
		"requestBadge": requestBadge,
		"paymentBadge": paymentBadge,
		"add": func(a, b int) int { return a + b },
	}
}

func requestBadge(s model.RequestStatus) string {
	switch s {
	case model.RequestStatusPending:
		return "bg-blue-100 text-blue-800"
	case model.RequestStatusInProgress:
		return "bg-yellow-100 text-yellow-800"
	case model.RequestStatusApproved:
		return "bg-green-100 text-green-800"
	case model.RequestStatusRejected:
		return "bg-red-100 text-red-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}

func paymentBadge(s model.PaymentStatus) string {
	if s == model.PaymentStatusCompleted {
		return "bg-green-100 text-green-800"
	}
	return "bg-yellow-100 text-yellow-800"
}
