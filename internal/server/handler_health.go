package server

import (
	"net/http"
	"runtime"
	"time"
)

type healthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	GoVersion    string `json:"go_version"`
	Uptime       string `json:"uptime"`
	Upstream     string `json:"upstream"`
	Timezone     string `json:"timezone"`
	CacheEntries int    `json:"cache_entries"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	resp := healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Upstream:  s.client.BaseURL(),
		Timezone:  s.resolver.Now().Location().String(),
	}
	if s.cache != nil {
		resp.CacheEntries = s.cache.Len()
	}
	respondOK(w, reqID, resp)
}
