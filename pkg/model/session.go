package model

import "time"

// Session is a dashboard sign-in. It only carries the operator's display
// name; access to the dashboard is not restricted by it.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Path      string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
