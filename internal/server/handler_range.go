package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/internal/stats"
	"github.com/me/backoffice/pkg/model"
)

type rangeResponse struct {
	Period   string `json:"period"`
	Label    string `json:"label,omitempty"`
	Month    string `json:"month,omitempty"`
	DateFrom string `json:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty"`
}

type monthResponse struct {
	Month string `json:"month"`
	Name  string `json:"name"`
}

// parseRange reads period, month (YYYY-MM) and monthName from the query.
// Unlike dashboard links, which silently fall back to defaults, the JSON API
// rejects values it does not understand.
func (s *Server) parseRange(r *http.Request) (period.Period, period.DateRange, *model.APIError) {
	q := r.URL.Query()
	raw := strings.TrimSpace(q.Get("period"))
	p := period.ParsePeriod(raw)
	if p == period.None && raw != "" && !strings.EqualFold(raw, "none") {
		return p, period.DateRange{}, model.NewValidationError("invalid query parameter",
			model.FieldError{Field: "period", Message: "period must be one of today, yesterday, week, month"})
	}

	if name := q.Get("monthName"); name != "" {
		return p, s.resolver.ResolveNamed(p, name), nil
	}

	var month *period.YearMonth
	if raw := q.Get("month"); raw != "" {
		m, err := period.ParseMonth(raw)
		if err != nil {
			return p, period.DateRange{}, model.NewValidationError("invalid query parameter",
				model.FieldError{Field: "month", Message: "month must be formatted as YYYY-MM"})
		}
		month = &m
	}
	return p, s.resolver.Resolve(p, month), nil
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	p, dr, apiErr := s.parseRange(r)
	if apiErr != nil {
		respondError(w, reqID, apiErr)
		return
	}

	resp := rangeResponse{
		Period:   p.String(),
		Label:    p.Label(),
		DateFrom: dr.FromString(),
		DateTo:   dr.ToString(),
	}
	if p == period.Month {
		resp.Month = dr.From.Format("2006-01")
	}
	respondOK(w, reqID, resp)
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	months := period.SelectableMonths(s.resolver.Now())
	out := make([]monthResponse, len(months))
	for i, m := range months {
		out[i] = monthResponse{Month: m.String(), Name: m.Name()}
	}
	respondOK(w, reqID, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	_, dr, apiErr := s.parseRange(r)
	if apiErr != nil {
		respondError(w, reqID, apiErr)
		return
	}

	sum, err := stats.Collect(r.Context(), s.client, dr)
	if err != nil {
		s.logger.Error("collect summary", "error", err, "request_id", reqID)
		respondError(w, reqID, upstreamError(err))
		return
	}
	respondOK(w, reqID, sum)
}

// upstreamError maps a failed upstream call to the error reported to API
// consumers.
func upstreamError(err error) *model.APIError {
	var ae *model.APIError
	if errors.As(err, &ae) && ae.StatusCode < http.StatusInternalServerError {
		return ae
	}
	return &model.APIError{
		StatusCode: http.StatusBadGateway,
		Message:    model.Messages(api.Messages(err)),
		Kind:       "Bad Gateway",
	}
}
