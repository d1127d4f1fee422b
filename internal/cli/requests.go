package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/format"
)

func newRequestsCmd() *cobra.Command {
	return newEntityCmd("requests", "Work with sales requests",
		newRequestGetCmd(),
		newRequestDeleteCmd(),
		newRequestStatsCmd(),
	)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func newRequestGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := client.Requests.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get request %d: %w", id, err)
			}
			loc := resolver.Now().Location()
			return out.fields(r, [][2]string{
				{"ID", strconv.Itoa(r.ID)},
				{"Name", r.FullName},
				{"Phone", r.Phone},
				{"Email", r.Email},
				{"Telegram", format.Dash(r.Telegram)},
				{"Partner", format.Dash(r.PartnerCode)},
				{"Source", r.Source},
				{"Status", out.requestStatus(r.Status) + " (" + r.Status.Label() + ")"},
				{"Created", format.DateTime(r.CreatedAt, loc) + " (" + ago(r.CreatedAt) + ")"},
			})
		},
	}
}

func newRequestDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.Requests.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete request %d: %w", id, err)
			}
			out.success("Request %d deleted.", id)
			return nil
		},
	}
}

func newRequestStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count requests by status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := client.Requests.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("request stats: %w", err)
			}
			return out.fields(s, [][2]string{
				{"Pending", strconv.Itoa(s.Pending)},
				{"In progress", strconv.Itoa(s.InProgress)},
				{"Approved", strconv.Itoa(s.Approved)},
				{"Rejected", strconv.Itoa(s.Rejected)},
				{"Total", strconv.Itoa(s.Total())},
			})
		},
	}
}
