package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/format"
)

func newRemindersCmd() *cobra.Command {
	return newEntityCmd("reminders", "Work with reminders", newRemindersActiveCmd())
}

func newRemindersActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List reminders that have not ended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := client.Notifications.Active(cmd.Context())
			if err != nil {
				return fmt.Errorf("active reminders: %w", err)
			}
			now := clock.Now()
			rows := make([][]string, 0, len(l.Notifications))
			for _, n := range l.Notifications {
				rows = append(rows, []string{
					strconv.Itoa(n.ID), plainText.Sanitize(n.Text), format.TimeLeft(n.End, now),
				})
			}
			return out.table(l.Notifications, []string{"ID", "Text", "Left"}, rows)
		},
	}
}
