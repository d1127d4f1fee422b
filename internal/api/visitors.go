package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

// VisitorFilter selects a page of visitors.
type VisitorFilter struct {
	listquery.Params
	Country       string
	Device        string
	Browser       string
	TrafficSource string
}

func (f VisitorFilter) values() url.Values {
	v := pageValues(f.Params)
	for k, val := range map[string]string{
		"country":       f.Country,
		"device":        f.Device,
		"browser":       f.Browser,
		"trafficSource": f.TrafficSource,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Dimensions visitor statistics can be grouped by.
var VisitorDimensions = []string{"country", "device", "browser"}

// VisitorsService calls the /visitors endpoints.
type VisitorsService struct{ c *Client }

// List returns one page of visitors.
func (s *VisitorsService) List(ctx context.Context, f VisitorFilter) (model.VisitorList, error) {
	return query[model.VisitorList](ctx, s.c, "visitors.list", "visitors", f.values(), TagVisitor)
}

// Get returns the visitor with the given id.
func (s *VisitorsService) Get(ctx context.Context, id string) (model.Visitor, error) {
	return query[model.Visitor](ctx, s.c, "visitors.get", "visitors/"+url.PathEscape(id), nil, TagVisitor)
}

// Create records a visitor.
func (s *VisitorsService) Create(ctx context.Context, in model.CreateVisitor) (model.Visitor, error) {
	var out model.Visitor
	err := s.c.mutate(ctx, "visitors.create", http.MethodPost, "visitors", in, &out, TagVisitor)
	return out, err
}

// Update patches the visitor with the given id.
func (s *VisitorsService) Update(ctx context.Context, id string, in model.UpdateVisitor) (model.Visitor, error) {
	var out model.Visitor
	err := s.c.mutate(ctx, "visitors.update", http.MethodPatch, "visitors/"+url.PathEscape(id), in, &out, TagVisitor)
	return out, err
}

// Delete removes the visitor with the given id.
func (s *VisitorsService) Delete(ctx context.Context, id string) error {
	return s.c.mutate(ctx, "visitors.delete", http.MethodDelete, "visitors/"+url.PathEscape(id), nil, nil, TagVisitor)
}

// ByCountry returns all visitors from country.
func (s *VisitorsService) ByCountry(ctx context.Context, country string) ([]model.Visitor, error) {
	return query[[]model.Visitor](ctx, s.c, "visitors.by_country", "visitors/search/country/"+url.PathEscape(country), nil, TagVisitor)
}

// ByTrafficSource returns all visitors that arrived through source.
func (s *VisitorsService) ByTrafficSource(ctx context.Context, source string) ([]model.Visitor, error) {
	return query[[]model.Visitor](ctx, s.c, "visitors.by_traffic_source", "visitors/search/traffic-source/"+url.PathEscape(source), nil, TagVisitor)
}

// StatsBy returns visitor counts grouped by dimension, one of
// VisitorDimensions.
func (s *VisitorsService) StatsBy(ctx context.Context, dimension string) (model.VisitorStats, error) {
	switch dimension {
	case "country", "device", "browser":
	default:
		return nil, fmt.Errorf("visitors.stats: unknown dimension %q", dimension)
	}
	return query[model.VisitorStats](ctx, s.c, "visitors.stats", "visitors/stats/"+dimension, nil, TagVisitor)
}

// Count returns the number of visitors matching p.
func (s *VisitorsService) Count(ctx context.Context, p listquery.Params) (int, error) {
	p.Page, p.Limit = 1, 1
	l, err := s.List(ctx, VisitorFilter{Params: p})
	if err != nil {
		return 0, err
	}
	return l.Total, nil
}
