package ui

import (
	"cmp"
	"net/http"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/pkg/model"
)

const analyticsPath = "/dashboard/analytics"

type dimensionRow struct {
	Value string
	Count int
}

// breakdown is one visitor dimension sorted by count, largest first.
type breakdown struct {
	Title string
	Rows  []dimensionRow
}

var dimensionTitles = map[string]string{
	"country": "Страны",
	"device":  "Устройства",
	"browser": "Браузеры",
}

func sortedRows(vs model.VisitorStats) []dimensionRow {
	rows := make([]dimensionRow, 0, len(vs))
	for k, n := range vs {
		rows = append(rows, dimensionRow{Value: k, Count: n})
	}
	slices.SortFunc(rows, func(a, b dimensionRow) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return rows
}

// HandleAnalytics renders button click stats, the paged button table and
// the visitor breakdowns.
func (ui *UI) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	s, _ := listState(r)
	lv := ui.newListView(analyticsPath, s, nil)
	data := map[string]any{
		"Title": "Аналитика",
		"List":  lv,
	}

	var (
		clicks     []model.ButtonStats
		buttons    model.ButtonList
		breakdowns = make([]breakdown, len(api.VisitorDimensions))
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		clicks, err = ui.client.Buttons.ClickStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		buttons, err = ui.client.Buttons.List(ctx, s.Page, s.PageSize)
		return err
	})
	for i, dim := range api.VisitorDimensions {
		g.Go(func() error {
			vs, err := ui.client.Visitors.StatsBy(ctx, dim)
			if err != nil {
				return err
			}
			breakdowns[i] = breakdown{Title: dimensionTitles[dim], Rows: sortedRows(vs)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fe, status := ui.failFetch(r, "analytics", err)
		data["Error"] = fe
		ui.render(w, r, status, "analytics", data)
		return
	}

	total := 0
	for _, c := range clicks {
		total += c.TotalClicks
	}
	lv.paginate(buttons.Total, buttons.TotalPages, len(buttons.Data))
	data["Clicks"] = clicks
	data["TotalClicks"] = total
	data["Buttons"] = buttons.Data
	data["Breakdowns"] = breakdowns
	ui.render(w, r, http.StatusOK, "analytics", data)
}
