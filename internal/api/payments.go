package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/pkg/model"
)

// PaymentFilter selects a page of payments.
type PaymentFilter struct {
	listquery.Params
	Status model.PaymentStatus
}

func (f PaymentFilter) values() url.Values {
	v := pageValues(f.Params)
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	return v
}

// PaymentsService calls the /payments endpoints.
type PaymentsService struct{ c *Client }

// List returns one page of payments.
func (s *PaymentsService) List(ctx context.Context, f PaymentFilter) (model.PaymentList, error) {
	return query[model.PaymentList](ctx, s.c, "payments.list", "payments", f.values(), TagPayment)
}

// Stats summarizes payments created within r. A zero range covers all time.
func (s *PaymentsService) Stats(ctx context.Context, r period.DateRange) (model.PaymentStats, error) {
	v := url.Values{}
	if from := r.FromString(); from != "" {
		v.Set("dateFrom", from)
	}
	if to := r.ToString(); to != "" {
		v.Set("dateTo", to)
	}
	return query[model.PaymentStats](ctx, s.c, "payments.stats", "payments/stats", v, TagPayment)
}

// Get returns the payment with the given id.
func (s *PaymentsService) Get(ctx context.Context, id int) (model.Payment, error) {
	return query[model.Payment](ctx, s.c, "payments.get", idPath("payments", id), nil, TagPayment)
}

// Create records a payment.
func (s *PaymentsService) Create(ctx context.Context, in model.CreatePayment) (model.Payment, error) {
	var out model.Payment
	err := s.c.mutate(ctx, "payments.create", http.MethodPost, "payments", in, &out, TagPayment)
	return out, err
}
