package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/format"
	"github.com/me/backoffice/internal/listquery"
	"github.com/me/backoffice/internal/period"
)

func newPaymentsCmd() *cobra.Command {
	return newEntityCmd("payments", "Work with payments", newPaymentStatsCmd())
}

// rangeFlags select a period without search or paging.
type rangeFlags struct {
	period string
	month  string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.period, "period", "p", "", "Period (today, yesterday, week, month)")
	cmd.Flags().StringVar(&f.month, "month", "", "Month as YYYY-MM; implies --period month")
}

func (f *rangeFlags) resolve() (period.DateRange, error) {
	c := listquery.NewController(resolver)
	defer c.Close()
	if err := applyPeriod(c, f.period, f.month); err != nil {
		return period.DateRange{}, err
	}
	s := c.State()
	return resolver.Resolve(s.Period, s.Month), nil
}

func newPaymentStatsCmd() *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count payments and revenue for a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := rf.resolve()
			if err != nil {
				return err
			}
			s, err := client.Payments.Stats(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("payment stats: %w", err)
			}
			return out.fields(s, [][2]string{
				{"Completed", strconv.Itoa(s.Completed)},
				{"Pending", strconv.Itoa(s.Pending)},
				{"Revenue", format.Rubles(s.TotalAmount)},
			})
		},
	}
	rf.register(cmd)
	return cmd
}
