package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
)

// listFlags are the search, period and paging flags shared by list commands.
type listFlags struct {
	search   string
	period   string
	month    string
	page     int
	pageSize int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Search text")
	cmd.Flags().StringVarP(&f.period, "period", "p", "", "Period (today, yesterday, week, month)")
	cmd.Flags().StringVar(&f.month, "month", "", "Month as YYYY-MM; implies --period month")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Rows per page (10, 20, 50, 100; default from config)")
}

// controller replays the flags as list events, the same way the dashboard
// builds its state from clicks.
func (f *listFlags) controller(opts ...listquery.Option) (*listquery.Controller, error) {
	c := listquery.NewController(resolver, opts...)
	if err := applyPeriod(c, f.period, f.month); err != nil {
		c.Close()
		return nil, err
	}
	c.CommitSearch(f.search)

	size := f.pageSize
	if size == 0 {
		size = cfg.PageSize
	}
	if !listquery.ValidPageSize(size) {
		c.Close()
		return nil, fmt.Errorf("page size %d: must be one of %v", size, listquery.PageSizes)
	}
	c.OnPageSizeChange(size)
	c.OnPageChange(f.page)
	return c, nil
}

// params returns the fetch parameters the flags resolve to.
func (f *listFlags) params() (listquery.Params, error) {
	c, err := f.controller()
	if err != nil {
		return listquery.Params{}, err
	}
	defer c.Close()
	return c.Params(), nil
}

func applyPeriod(c *listquery.Controller, name, month string) error {
	if month != "" {
		m, err := period.ParseMonth(month)
		if err != nil {
			return err
		}
		c.OnMonthSelect(m)
		return nil
	}
	p, err := parsePeriod(name)
	if err != nil {
		return err
	}
	if p != period.None && p != c.State().Period {
		c.OnPeriodChange(p)
	}
	return nil
}

// parsePeriod accepts the period names plus "" and "none".
func parsePeriod(s string) (period.Period, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return period.None, nil
	}
	p := period.ParsePeriod(s)
	if p == period.None {
		return period.None, fmt.Errorf("unknown period %q: must be today, yesterday, week or month", s)
	}
	return p, nil
}
