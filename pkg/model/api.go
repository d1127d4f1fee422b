package model

import "time"

// Response is the standard envelope of the dashboard's own JSON API.
type Response struct {
	Status     string      `json:"status"`
	RequestID  string      `json:"request_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       any         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *APIError   `json:"error"`
}

// Pagination holds the paging metadata the upstream list endpoints return
// alongside their items.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Pages returns TotalPages, computing it from Total and Limit when the
// upstream omitted it. The result is never less than 1.
func (p Pagination) Pages() int {
	if p.TotalPages > 0 {
		return p.TotalPages
	}
	if p.Limit <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.Limit - 1) / p.Limit
}
