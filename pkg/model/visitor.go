package model

import "time"

// Visitor is a tracked site visit.
type Visitor struct {
	ID            string    `json:"id"`
	TrafficSource string    `json:"trafficSource"`
	UTMTags       string    `json:"utmTags,omitempty"`
	Country       string    `json:"country"`
	Device        string    `json:"device"`
	Browser       string    `json:"browser"`
	PagesViewed   int       `json:"pagesViewed"`
	TimeOnSite    string    `json:"timeOnSite"`
	CookieFile    string    `json:"cookieFile"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateVisitor is the body of POST /visitors.
type CreateVisitor struct {
	TrafficSource string `json:"trafficSource" validate:"required"`
	UTMTags       string `json:"utmTags,omitempty"`
	Country       string `json:"country" validate:"required"`
	Device        string `json:"device" validate:"required"`
	Browser       string `json:"browser" validate:"required"`
	PagesViewed   int    `json:"pagesViewed,omitempty" validate:"gte=0"`
	TimeOnSite    string `json:"timeOnSite" validate:"required"`
	CookieFile    string `json:"cookieFile" validate:"required"`
}

// UpdateVisitor is the body of PATCH /visitors/{id}.
type UpdateVisitor struct {
	TrafficSource *string `json:"trafficSource,omitempty"`
	UTMTags       *string `json:"utmTags,omitempty"`
	Country       *string `json:"country,omitempty"`
	Device        *string `json:"device,omitempty"`
	Browser       *string `json:"browser,omitempty"`
	PagesViewed   *int    `json:"pagesViewed,omitempty" validate:"omitempty,gte=0"`
	TimeOnSite    *string `json:"timeOnSite,omitempty"`
	CookieFile    *string `json:"cookieFile,omitempty"`
}

// VisitorList is one page of visitors.
type VisitorList struct {
	Visitors []Visitor `json:"visitors"`
	Pagination
}

// VisitorStats maps a dimension value (a country, device or browser) to a
// visitor count.
type VisitorStats map[string]int
