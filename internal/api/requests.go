package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

// RequestFilter selects a page of requests.
type RequestFilter struct {
	listquery.Params
	Status model.RequestStatus
	Source string
}

func (f RequestFilter) values() url.Values {
	v := pageValues(f.Params)
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Source != "" {
		v.Set("source", f.Source)
	}
	return v
}

// RequestsService calls the /requests endpoints.
type RequestsService struct{ c *Client }

// List returns one page of requests.
func (s *RequestsService) List(ctx context.Context, f RequestFilter) (model.RequestList, error) {
	return query[model.RequestList](ctx, s.c, "requests.list", "requests", f.values(), TagRequest)
}

// Get returns the request with the given id.
func (s *RequestsService) Get(ctx context.Context, id int) (model.Request, error) {
	return query[model.Request](ctx, s.c, "requests.get", idPath("requests", id), nil, TagRequest)
}

// Create adds a request.
func (s *RequestsService) Create(ctx context.Context, in model.CreateRequest) (model.Request, error) {
	var out model.Request
	err := s.c.mutate(ctx, "requests.create", http.MethodPost, "requests", in, &out, TagRequest)
	return out, err
}

// Update patches the request with the given id.
func (s *RequestsService) Update(ctx context.Context, id int, in model.UpdateRequest) (model.Request, error) {
	var out model.Request
	err := s.c.mutate(ctx, "requests.update", http.MethodPatch, idPath("requests", id), in, &out, TagRequest)
	return out, err
}

// Delete removes the request with the given id.
func (s *RequestsService) Delete(ctx context.Context, id int) error {
	return s.c.mutate(ctx, "requests.delete", http.MethodDelete, idPath("requests", id), nil, nil, TagRequest)
}

// ByPartnerCode returns one page of requests attributed to a partner code.
func (s *RequestsService) ByPartnerCode(ctx context.Context, code string, page, limit int) (model.RequestList, error) {
	v := pageValues(listquery.Params{Page: page, Limit: limit})
	return query[model.RequestList](ctx, s.c, "requests.by_partner", "requests/partner/"+url.PathEscape(code), v, TagRequest)
}

// Stats returns request counts per status.
func (s *RequestsService) Stats(ctx context.Context) (model.RequestStats, error) {
	return query[model.RequestStats](ctx, s.c, "requests.stats", "requests/stats", nil, TagRequest)
}

// Count returns the number of requests matching p, fetched as a one-item page.
func (s *RequestsService) Count(ctx context.Context, p listquery.Params) (int, error) {
	p.Page, p.Limit = 1, 1
	l, err := s.List(ctx, RequestFilter{Params: p})
	if err != nil {
		return 0, err
	}
	return l.Total, nil
}
