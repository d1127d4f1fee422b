package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/backoffice/internal/format"
	"github.com/me/backoffice/pkg/model"
)

func newPartnersCmd() *cobra.Command {
	return newEntityCmd("partners", "Work with partners", newPartnerGetCmd())
}

func newPartnerGetCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one partner by id or --code",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				pt  model.Partner
				err error
			)
			switch {
			case code != "":
				var found *model.Partner
				found, err = client.Partners.ByCode(cmd.Context(), code)
				if err == nil && found == nil {
					return fmt.Errorf("no partner with code %q", code)
				}
				if found != nil {
					pt = *found
				}
			case len(args) == 1:
				var id int
				if id, err = parseID(args[0]); err != nil {
					return err
				}
				pt, err = client.Partners.Get(cmd.Context(), id)
			default:
				return errors.New("partner id or --code is required")
			}
			if err != nil {
				return fmt.Errorf("get partner: %w", err)
			}

			return out.fields(pt, [][2]string{
				{"ID", strconv.Itoa(pt.ID)},
				{"Name", pt.Name},
				{"Username", pt.Username},
				{"Code", pt.Code},
				{"Requisites", pt.Requisites + " (" + pt.RequisiteType.Label() + ")"},
				{"Bonus", out.paymentStatus(pt.BonusStatus) + " (" + pt.BonusStatus.BonusLabel() + ")"},
				{"Users", strconv.Itoa(len(pt.Users))},
				{"Created", format.DateTime(pt.CreatedAt, resolver.Now().Location())},
			})
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "Partner code")
	return cmd
}
