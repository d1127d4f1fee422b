package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/api"
)

func newVisitorsCmd() *cobra.Command {
	return newEntityCmd("visitors", "Work with site visitors", newVisitorStatsCmd())
}

type dimensionCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

func newVisitorStatsCmd() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count visitors by country, device or browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(api.VisitorDimensions, by) {
				return fmt.Errorf("unknown dimension %q: must be one of %v", by, api.VisitorDimensions)
			}
			vs, err := client.Visitors.StatsBy(cmd.Context(), by)
			if err != nil {
				return fmt.Errorf("visitor stats: %w", err)
			}
			counts := make([]dimensionCount, 0, len(vs))
			for k, n := range vs {
				counts = append(counts, dimensionCount{Value: k, Count: n})
			}
			slices.SortFunc(counts, func(a, b dimensionCount) int {
				if c := cmp.Compare(b.Count, a.Count); c != 0 {
					return c
				}
				return cmp.Compare(a.Value, b.Value)
			})
			rows := make([][]string, 0, len(counts))
			for _, c := range counts {
				rows = append(rows, []string{c.Value, strconv.Itoa(c.Count)})
			}
			return out.table(counts, []string{by, "Visitors"}, rows)
		},
	}
	cmd.Flags().StringVar(&by, "by", "country", "Dimension (country, device, browser)")
	return cmd
}
