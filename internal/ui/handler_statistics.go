package ui

import (
	"net/http"

	"github.com/me/backoffice/internal/stats"
)

const statisticsPath = "/dashboard/statistics"

// HandleStatistics renders the summary cards for the selected period.
func (ui *UI) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	s, _ := listState(r)
	dr := ui.resolver.Resolve(s.Period, s.Month)
	lv := ui.newListView(statisticsPath, s, nil)

	data := map[string]any{
		"Title":  "Статистика",
		"List":   lv,
		"Period": s.Period.Label(),
	}
	if s.Month != nil {
		data["Period"] = s.Month.Name()
	}

	sum, err := stats.Collect(r.Context(), ui.client, dr)
	if err != nil {
		fe, status := ui.failFetch(r, "statistics", err)
		data["Error"] = fe
		ui.render(w, r, status, "statistics", data)
		return
	}
	data["Summary"] = sum
	ui.render(w, r, http.StatusOK, "statistics", data)
}
