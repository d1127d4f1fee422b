package ui

import (
	"net/http"
	"strconv"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

const (
	paymentsPath        = "/dashboard/payments"
	pendingPaymentsPath = "/dashboard/not-completed-payments"
	clientsPath         = "/dashboard/clients"
)

// paymentPage is the status filter and heading of one payment list.
type paymentPage struct {
	Path   string
	Title  string
	Status model.PaymentStatus
}

var (
	completedPayments = paymentPage{Path: paymentsPath, Title: "Оплаты", Status: model.PaymentStatusCompleted}
	pendingPayments   = paymentPage{Path: pendingPaymentsPath, Title: "Незавершённые оплаты", Status: model.PaymentStatusPending}
)

// HandlePaymentList renders completed payments, or pending ones on the
// not-completed page.
func (ui *UI) HandlePaymentList(w http.ResponseWriter, r *http.Request) {
	pp := completedPayments
	if r.URL.Path == pendingPaymentsPath || r.URL.Path == pendingPaymentsPath+"/" {
		pp = pendingPayments
	}
	ui.renderPayments(w, r, pp, "payments")
}

// HandleClientList renders the buyers: completed payments shown per client.
func (ui *UI) HandleClientList(w http.ResponseWriter, r *http.Request) {
	ui.renderPayments(w, r, paymentPage{Path: clientsPath, Title: "Клиенты", Status: model.PaymentStatusCompleted}, "clients")
}

func (ui *UI) renderPayments(w http.ResponseWriter, r *http.Request, pp paymentPage, page string) {
	s, _ := listState(r)
	lv := ui.newListView(pp.Path, s, nil)
	data := map[string]any{
		"Title":     pp.Title,
		"List":      lv,
		"Completed": pp.Status == model.PaymentStatusCompleted,
	}

	list, err := ui.client.Payments.List(r.Context(), api.PaymentFilter{
		Params: listquery.ParamsFor(s, ui.resolver),
		Status: pp.Status,
	})
	if err != nil {
		fe, status := ui.failFetch(r, page, err)
		data["Error"] = fe
		ui.render(w, r, status, page, data)
		return
	}

	lv.paginate(list.Total, list.Pages(), len(list.Payments))
	data["Payments"] = list.Payments
	ui.render(w, r, http.StatusOK, page, data)
}

var (
	testNames = []string{
		"Иван Иванов", "Мария Петрова", "Сергей Сидоров", "Елена Козлова", "Андрей Новиков",
	}
	testProducts = []string{
		"Premium курс", "VIP подписка", "Индивидуальная консультация", "Базовый курс", "Мастер-класс",
	}
	testSources = []string{
		"Лендинг", "Реклама ВК", "Яндекс Директ", "Google Ads", "Органический поиск",
	}
)

// testPayment builds a random payment for trying out the payment pages.
func (ui *UI) testPayment() model.CreatePayment {
	status := model.PaymentStatusCompleted
	if ui.intN(2) == 0 {
		status = model.PaymentStatusPending
	}
	return model.CreatePayment{
		FullName: testNames[ui.intN(len(testNames))],
		Email:    "test" + strconv.Itoa(ui.intN(1000)) + "@example.com",
		Source:   testSources[ui.intN(len(testSources))],
		Product:  testProducts[ui.intN(len(testProducts))],
		Amount:   int64(ui.intN(50000) + 1000),
		Status:   status,
	}
}

// HandleTestPayment creates a random payment and returns to the list that
// shows it.
func (ui *UI) HandleTestPayment(w http.ResponseWriter, r *http.Request) {
	in := ui.testPayment()
	p, err := ui.client.Payments.Create(r.Context(), in)
	if err != nil {
		fe, status := ui.failFetch(r, "test payment", err)
		ui.render(w, r, status, "error", map[string]any{
			"Title": "Оплаты",
			"Error": fe,
		})
		return
	}
	ui.logger.Info("test payment created", "id", p.ID, "status", p.Status, "amount", p.Amount)

	if p.Status == model.PaymentStatusPending {
		done(w, r, pendingPaymentsPath)
		return
	}
	done(w, r, paymentsPath)
}
