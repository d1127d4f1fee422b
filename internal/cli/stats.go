package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/format"
	"github.com/me/backoffice/internal/period"
	"github.com/me/backoffice/internal/stats"
)

func newStatsCmd() *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.resolve()
			if err != nil {
				return err
			}
			s, err := stats.Collect(cmd.Context(), client, r)
			if err != nil {
				return fmt.Errorf("collect statistics: %w", err)
			}
			if out.structured() {
				return out.emit(s)
			}

			top := "-"
			if len(s.TopButtons) > 0 {
				b := s.TopButtons[0]
				top = fmt.Sprintf("%s (%s clicks)", b.Name, humanize.Comma(int64(b.ClickCount)))
			}
			return out.fields(s, [][2]string{
				{"Period", describeRange(r)},
				{"Visitors", humanize.Comma(int64(s.Visitors))},
				{"Requests", humanize.Comma(int64(s.Requests))},
				{"Completed payments", strconv.Itoa(s.CompletedPayments)},
				{"Pending payments", strconv.Itoa(s.PendingPayments)},
				{"Revenue", format.Rubles(s.Revenue)},
				{"Conversion", format.Percent(s.Conversion())},
				{"Top button", top},
				{"Active reminders", strconv.Itoa(len(s.Reminders))},
			})
		},
	}
	rf.register(cmd)
	return cmd
}

func describeRange(r period.DateRange) string {
	if r.IsZero() {
		return "all time"
	}
	loc := resolver.Now().Location()
	return format.DateTime(r.From, loc) + " - " + format.DateTime(r.To, loc)
}

// resolvedRange is the output of the range command.
type resolvedRange struct {
	Period   string `json:"period" yaml:"period"`
	Month    string `json:"month,omitempty" yaml:"month,omitempty"`
	DateFrom string `json:"dateFrom,omitempty" yaml:"dateFrom,omitempty"`
	DateTo   string `json:"dateTo,omitempty" yaml:"dateTo,omitempty"`
}

func newRangeCmd() *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "range",
		Short: "Print the date range a period resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := (&listFlags{period: rf.period, month: rf.month, page: 1}).controller()
			if err != nil {
				return err
			}
			defer c.Close()
			s, p := c.State(), c.Params()

			rr := resolvedRange{Period: s.Period.String(), DateFrom: p.DateFrom, DateTo: p.DateTo}
			if s.Month != nil {
				rr.Month = s.Month.String()
			} else if s.Period == period.Month {
				rr.Month = period.YearMonth{Year: resolver.Now().Year(), Index: resolver.Now().Month()}.String()
			}
			return out.fields(rr, [][2]string{
				{"Period", rr.Period},
				{"Month", format.Dash(rr.Month)},
				{"From", format.Dash(rr.DateFrom)},
				{"To", format.Dash(rr.DateTo)},
			})
		},
	}
	rf.register(cmd)
	return cmd
}
