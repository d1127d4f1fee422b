package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(ui.SessionMiddleware)

		r.Get("/", redirectTo("/dashboard/statistics"))
		r.Get("/sign-in", ui.HandleSignIn)
		r.Post("/sign-in", ui.HandleSignInPost)
		r.Get("/sign-out", ui.HandleSignOut)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", redirectTo("/dashboard/statistics"))
			r.Get("/statistics", ui.HandleStatistics)

			// Requests
			r.Route("/requests", func(r chi.Router) {
				r.Get("/", ui.HandleRequestList)
				r.Post("/", ui.HandleRequestCreate)
				r.Get("/new", ui.HandleRequestForm)
				r.Get("/export.xlsx", ui.HandleExport(exportRequests))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/edit", ui.HandleRequestForm)
					r.Post("/", ui.HandleRequestUpdate)
					r.Delete("/", ui.HandleRequestDelete)
				})
			})

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Get("/", ui.HandlePaymentList)
				r.Post("/test", ui.HandleTestPayment)
				r.Get("/export.xlsx", ui.HandleExport(exportCompletedPayments))
			})
			r.Route("/not-completed-payments", func(r chi.Router) {
				r.Get("/", ui.HandlePaymentList)
				r.Get("/export.xlsx", ui.HandleExport(exportPendingPayments))
			})
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", ui.HandleClientList)
				r.Get("/export.xlsx", ui.HandleExport(exportClients))
			})

			// Visitors
			r.Route("/visitors", func(r chi.Router) {
				r.Get("/", ui.HandleVisitorList)
				r.Post("/", ui.HandleVisitorCreate)
				r.Get("/new", ui.HandleVisitorForm)
				r.Get("/export.xlsx", ui.HandleExport(exportVisitors))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/edit", ui.HandleVisitorForm)
					r.Post("/", ui.HandleVisitorUpdate)
					r.Delete("/", ui.HandleVisitorDelete)
				})
			})

			// Partners
			r.Route("/partners", func(r chi.Router) {
				r.Get("/", ui.HandlePartnerList)
				r.Post("/", ui.HandlePartnerCreate)
				r.Get("/new", ui.HandlePartnerForm)
				r.Get("/export.xlsx", ui.HandleExport(exportPartners))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", ui.HandlePartnerDetail)
					r.Get("/edit", ui.HandlePartnerForm)
					r.Post("/", ui.HandlePartnerUpdate)
					r.Delete("/", ui.HandlePartnerDelete)
				})
			})

			// Reminders
			r.Route("/reminders", func(r chi.Router) {
				r.Get("/", ui.HandleReminderList)
				r.Post("/", ui.HandleReminderCreate)
				r.Get("/new", ui.HandleReminderForm)
				r.Get("/export.xlsx", ui.HandleExport(exportReminders))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/edit", ui.HandleReminderForm)
					r.Post("/", ui.HandleReminderUpdate)
					r.Delete("/", ui.HandleReminderDelete)
				})
			})

			r.Get("/analytics", ui.HandleAnalytics)
		})
	})
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusSeeOther)
	}
}
