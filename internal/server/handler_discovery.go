package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "Backoffice API",
		Version:     "v1",
		Description: "Period ranges and dashboard summaries for the sales back office",
		Endpoints: []endpointInfo{
			{"/api/v1/range", []string{"GET"}, "Resolve ?period=today|yesterday|week|month with optional month=YYYY-MM or monthName to a date range"},
			{"/api/v1/months", []string{"GET"}, "Months selectable in the month filter"},
			{"/api/v1/summary", []string{"GET"}, "Dashboard counters for ?period= and month="},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
			{"/metrics", []string{"GET"}, "Prometheus metrics"},
		},
	})
}
