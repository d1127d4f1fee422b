package api

import (
	"context"
	"net/http"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/pkg/model"
)

// NotificationsService calls the /notifications endpoints that back the
// reminders page. The list endpoint is not paginated.
type NotificationsService struct{ c *Client }

// List returns every reminder matching the search and date filters of p.
func (s *NotificationsService) List(ctx context.Context, p listquery.Params) (model.NotificationList, error) {
	return query[model.NotificationList](ctx, s.c, "notifications.list", "notifications", filterValues(p), TagNotification)
}

// Active returns reminders that have not yet ended.
func (s *NotificationsService) Active(ctx context.Context) (model.NotificationList, error) {
	return query[model.NotificationList](ctx, s.c, "notifications.active", "notifications/active", nil, TagNotification)
}

// Get returns the reminder with the given id.
func (s *NotificationsService) Get(ctx context.Context, id int) (model.Notification, error) {
	return query[model.Notification](ctx, s.c, "notifications.get", idPath("notifications", id), nil, TagNotification)
}

// Create adds a reminder.
func (s *NotificationsService) Create(ctx context.Context, in model.CreateNotification) (model.Notification, error) {
	var out model.Notification
	err := s.c.mutate(ctx, "notifications.create", http.MethodPost, "notifications", in, &out, TagNotification)
	return out, err
}

// Update patches the reminder with the given id.
func (s *NotificationsService) Update(ctx context.Context, id int, in model.UpdateNotification) (model.Notification, error) {
	var out model.Notification
	err := s.c.mutate(ctx, "notifications.update", http.MethodPatch, idPath("notifications", id), in, &out, TagNotification)
	return out, err
}

// Delete removes the reminder with the given id.
func (s *NotificationsService) Delete(ctx context.Context, id int) error {
	return s.c.mutate(ctx, "notifications.delete", http.MethodDelete, idPath("notifications", id), nil, nil, TagNotification)
}
