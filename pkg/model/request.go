package model

import "time"

// Request is an inbound sales request (lead).
type Request struct {
	ID          int           `json:"id"`
	FullName    string        `json:"fullName"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Telegram    string        `json:"telegram,omitempty"`
	PartnerCode string        `json:"partnerCode,omitempty"`
	Source      string        `json:"source"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CreateRequest is the body of POST /requests.
type CreateRequest struct {
	FullName    string        `json:"fullName" validate:"required,max=255"`
	Phone       string        `json:"phone" validate:"required,max=32"`
	Email       string        `json:"email" validate:"required,email"`
	Telegram    string        `json:"telegram,omitempty" validate:"omitempty,max=64"`
	PartnerCode string        `json:"partnerCode,omitempty" validate:"omitempty,max=64"`
	Source      string        `json:"source" validate:"required"`
	Status      RequestStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS APPROVED REJECTED"`
}

// UpdateRequest is the body of PATCH /requests/{id}. Nil fields are left
// unchanged.
type UpdateRequest struct {
	FullName    *string        `json:"fullName,omitempty" validate:"omitempty,max=255"`
	Phone       *string        `json:"phone,omitempty" validate:"omitempty,max=32"`
	Email       *string        `json:"email,omitempty" validate:"omitempty,email"`
	Telegram    *string        `json:"telegram,omitempty" validate:"omitempty,max=64"`
	PartnerCode *string        `json:"partnerCode,omitempty" validate:"omitempty,max=64"`
	Source      *string        `json:"source,omitempty"`
	Status      *RequestStatus `json:"status,omitempty" validate:"omitempty,oneof=PENDING IN_PROGRESS APPROVED REJECTED"`
}

// RequestList is one page of requests.
type RequestList struct {
	Requests []Request `json:"requests"`
	Pagination
}

// RequestStats counts requests per status.
type RequestStats struct {
	Pending    int `json:"pending"`
	Approved   int `json:"approved"`
	Rejected   int `json:"rejected"`
	InProgress int `json:"inProgress"`
}

// Total returns the number of requests across all statuses.
func (s RequestStats) Total() int {
	return s.Pending + s.Approved + s.Rejected + s.InProgress
}
