package model

import "time"

// Notification is an operator reminder that is active until End.
type Notification struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive reports whether the reminder has not yet ended at now.
func (n Notification) IsActive(now time.Time) bool {
	return n.End.After(now)
}

// CreateNotification is the body of POST /notifications.
type CreateNotification struct {
	Text string    `json:"text" validate:"required,max=2000"`
	End  time.Time `json:"end" validate:"required"`
}

// UpdateNotification is the body of PATCH /notifications/{id}.
type UpdateNotification struct {
	Text *string    `json:"text,omitempty" validate:"omitempty,max=2000"`
	End  *time.Time `json:"end,omitempty"`
}

// NotificationList is the reminder collection.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
}
