package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

// PartnersService calls the /partners endpoints. The list endpoint is not
// paginated; callers slice the result.
type PartnersService struct{ c *Client }

// List returns every partner matching the search and date filters of p.
func (s *PartnersService) List(ctx context.Context, p listquery.Params) (model.PartnerList, error) {
	return query[model.PartnerList](ctx, s.c, "partners.list", "partners", filterValues(p), TagPartner)
}

// Get returns the partner with the given id.
func (s *PartnersService) Get(ctx context.Context, id int) (model.Partner, error) {
	return query[model.Partner](ctx, s.c, "partners.get", idPath("partners", id), nil, TagPartner)
}

// ByCode looks a partner up by referral code. It returns nil when there is
// no such partner.
func (s *PartnersService) ByCode(ctx context.Context, code string) (*model.Partner, error) {
	return query[*model.Partner](ctx, s.c, "partners.by_code", "partners/search/by-code", url.Values{"code": {code}}, TagPartner)
}

// ByUsername looks a partner up by username. It returns nil when there is
// no such partner.
func (s *PartnersService) ByUsername(ctx context.Context, username string) (*model.Partner, error) {
	return query[*model.Partner](ctx, s.c, "partners.by_username", "partners/search/by-username", url.Values{"username": {username}}, TagPartner)
}

// Create adds a partner.
func (s *PartnersService) Create(ctx context.Context, in model.CreatePartner) (model.Partner, error) {
	var out model.Partner
	err := s.c.mutate(ctx, "partners.create", http.MethodPost, "partners", in, &out, TagPartner)
	return out, err
}

// Update patches the partner with the given id.
func (s *PartnersService) Update(ctx context.Context, id int, in model.UpdatePartner) (model.Partner, error) {
	var out model.Partner
	err := s.c.mutate(ctx, "partners.update", http.MethodPatch, idPath("partners", id), in, &out, TagPartner)
	return out, err
}

// Delete removes the partner with the given id.
func (s *PartnersService) Delete(ctx context.Context, id int) error {
	return s.c.mutate(ctx, "partners.delete", http.MethodDelete, idPath("partners", id), nil, nil, TagPartner)
}
