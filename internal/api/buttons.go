package api

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/me/backoffice/pkg/model"
)

// DefaultTopButtons is how many buttons Top returns when limit is not
// positive.
const DefaultTopButtons = 5

// ButtonsService calls the /buttons endpoints.
type ButtonsService struct{ c *Client }

// List returns one page of buttons.
func (s *ButtonsService) List(ctx context.Context, page, pageSize int) (model.ButtonList, error) {
	v := url.Values{
		"page":     {itoa(max(page, 1))},
		"pageSize": {itoa(max(pageSize, 1))},
	}
	return query[model.ButtonList](ctx, s.c, "buttons.list", "buttons", v, TagButton)
}

// Get returns the button with the given id.
func (s *ButtonsService) Get(ctx context.Context, id int) (model.Button, error) {
	return query[model.Button](ctx, s.c, "buttons.get", idPath("buttons", id), nil, TagButton)
}

// Create adds a button.
func (s *ButtonsService) Create(ctx context.Context, in model.CreateButton) (model.Button, error) {
	var out model.Button
	err := s.c.mutate(ctx, "buttons.create", http.MethodPost, "buttons", in, &out, TagButton)
	return out, err
}

// Update patches the button with the given id.
func (s *ButtonsService) Update(ctx context.Context, id int, in model.UpdateButton) (model.Button, error) {
	var out model.Button
	err := s.c.mutate(ctx, "buttons.update", http.MethodPatch, idPath("buttons", id), in, &out, TagButton)
	return out, err
}

// Delete removes the button with the given id.
func (s *ButtonsService) Delete(ctx context.Context, id int) error {
	return s.c.mutate(ctx, "buttons.delete", http.MethodDelete, idPath("buttons", id), nil, nil, TagButton)
}

// Click increments the click counter of a button.
func (s *ButtonsService) Click(ctx context.Context, id int) (model.Button, error) {
	var out model.Button
	err := s.c.mutate(ctx, "buttons.click", http.MethodPost, idPath("buttons", id)+"/click", nil, &out, TagButton)
	return out, err
}

// ClickStats returns clicks aggregated per button type.
func (s *ButtonsService) ClickStats(ctx context.Context) ([]model.ButtonStats, error) {
	return query[[]model.ButtonStats](ctx, s.c, "buttons.click_stats", "buttons/stats/clicks", nil, TagButton)
}

// Top returns the first page of limit buttons ordered by click count,
// highest first.
func (s *ButtonsService) Top(ctx context.Context, limit int) ([]model.Button, error) {
	if limit <= 0 {
		limit = DefaultTopButtons
	}
	l, err := s.List(ctx, 1, limit)
	if err != nil {
		return nil, err
	}
	// The list may be shared through the cache.
	top := slices.Clone(l.Data)
	slices.SortStableFunc(top, func(a, b model.Button) int {
		return b.ClickCount - a.ClickCount
	})
	return top, nil
}
