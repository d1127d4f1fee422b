package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/api"
)

func newButtonsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buttons",
		Short: "Inspect landing page buttons and their clicks",
	}
	cmd.AddCommand(newButtonsTopCmd(), newButtonsClicksCmd(), newButtonClickCmd())
	return cmd
}

func newButtonsTopCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the most clicked buttons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			top, err := client.Buttons.Top(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("top buttons: %w", err)
			}
			rows := make([][]string, 0, len(top))
			for i, b := range top {
				rows = append(rows, []string{
					humanize.Ordinal(i + 1), b.Name, b.Type, humanize.Comma(int64(b.ClickCount)),
				})
			}
			return out.table(top, []string{"#", "Name", "Type", "Clicks"}, rows)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", api.DefaultTopButtons, "Number of buttons")
	return cmd
}

func newButtonsClicksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clicks",
		Short: "Sum clicks by button type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client.Buttons.ClickStats(cmd.Context())
			if err != nil {
				return fmt.Errorf("click stats: %w", err)
			}
			rows := make([][]string, 0, len(stats))
			for _, s := range stats {
				rows = append(rows, []string{s.Type, strconv.Itoa(s.ButtonCount), humanize.Comma(int64(s.TotalClicks))})
			}
			return out.table(stats, []string{"Type", "Buttons", "Clicks"}, rows)
		},
	}
}

func newButtonClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <id>",
		Short: "Register a click on a button",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, err := client.Buttons.Click(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("click button %d: %w", id, err)
			}
			if out.structured() {
				return out.emit(b)
			}
			out.success("%s: %s clicks", b.Name, humanize.Comma(int64(b.ClickCount)))
			return nil
		},
	}
}
