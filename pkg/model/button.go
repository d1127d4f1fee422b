package model

import "time"

// Button is a tracked call-to-action on the landing pages.
type Button struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	URL         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	ClickCount  int       `json:"clickCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateButton is the body of POST /buttons.
type CreateButton struct {
	Name        string `json:"name" validate:"required,max=255"`
	Type        string `json:"type" validate:"required"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// UpdateButton is the body of PATCH /buttons/{id}.
type UpdateButton struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	URL         *string `json:"url,omitempty" validate:"omitempty,url"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ButtonList is one page of buttons. The endpoint names its page size
// pageSize instead of limit.
type ButtonList struct {
	Data       []Button `json:"data"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

// ButtonStats aggregates clicks per button type.
type ButtonStats struct {
	Type        string `json:"type"`
	TotalClicks int    `json:"totalClicks"`
	ButtonCount int    `json:"buttonCount"`
}
