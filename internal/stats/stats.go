// Package stats gathers the dashboard summary for a period from several
// API endpoints at once.
package stats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/pkg/model"
)

// Summary is the statistics page content for one date range.
type Summary struct {
	DateFrom          string               `json:"dateFrom,omitempty"`
	DateTo            string               `json:"dateTo,omitempty"`
	Visitors          int                  `json:"visitors"`
	Requests          int                  `json:"requests"`
	CompletedPayments int                  `json:"completedPayments"`
	PendingPayments   int                  `json:"pendingPayments"`
	Revenue           int64                `json:"revenue"`
	RequestsByStatus  model.RequestStats   `json:"requestsByStatus"`
	TopButtons        []model.Button       `json:"topButtons"`
	Reminders         []model.Notification `json:"reminders"`
	Clicks            []model.ButtonStats  `json:"clicks"`
}

// Conversion returns completed payments per request as a percentage.
func (s Summary) Conversion() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.CompletedPayments) * 100 / float64(s.Requests)
}

// RevenueRubles returns Revenue in rubles.
func (s Summary) RevenueRubles() float64 {
	return float64(s.Revenue) / 100
}

// Collect fetches every part of the summary concurrently. The first failed
// fetch cancels the rest and its error is returned.
func Collect(ctx context.Context, c *api.Client, r period.DateRange) (Summary, error) {
	s := Summary{DateFrom: r.FromString(), DateTo: r.ToString()}
	p := listquery.Params{DateFrom: s.DateFrom, DateTo: s.DateTo}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := c.Visitors.Count(ctx, p)
		if err != nil {
			return fmt.Errorf("count visitors: %w", err)
		}
		s.Visitors = n
		return nil
	})
	g.Go(func() error {
		n, err := c.Requests.Count(ctx, p)
		if err != nil {
			return fmt.Errorf("count requests: %w", err)
		}
		s.Requests = n
		return nil
	})
	g.Go(func() error {
		ps, err := c.Payments.Stats(ctx, r)
		if err != nil {
			return fmt.Errorf("payment stats: %w", err)
		}
		s.CompletedPayments, s.PendingPayments, s.Revenue = ps.Completed, ps.Pending, ps.TotalAmount
		return nil
	})
	g.Go(func() error {
		rs, err := c.Requests.Stats(ctx)
		if err != nil {
			return fmt.Errorf("request stats: %w", err)
		}
		s.RequestsByStatus = rs
		return nil
	})
	g.Go(func() error {
		top, err := c.Buttons.Top(ctx, api.DefaultTopButtons)
		if err != nil {
			return fmt.Errorf("top buttons: %w", err)
		}
		s.TopButtons = top
		return nil
	})
	g.Go(func() error {
		clicks, err := c.Buttons.ClickStats(ctx)
		if err != nil {
			return fmt.Errorf("click stats: %w", err)
		}
		s.Clicks = clicks
		return nil
	})
	g.Go(func() error {
		l, err := c.Notifications.Active(ctx)
		if err != nil {
			return fmt.Errorf("active reminders: %w", err)
		}
		s.Reminders = l.Notifications
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return s, nil
}
