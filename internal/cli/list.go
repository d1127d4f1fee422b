package cli

import (
	"github.com/spf13/cobra"
)

// newListCmd creates the "list" subcommand of an entity.
func newListCmd(e entity) *cobra.Command {
	var (
		lf     listFlags
		filter string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + e.name,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lf.params()
			if err != nil {
				return err
			}
			logger.Debug("list", "entity", e.name, "params", p.Values().Encode(), "filter", filter)
			lp, err := e.fetch(cmd.Context(), p, filter)
			if err != nil {
				return err
			}
			return lp.print()
		},
	}
	lf.register(cmd)
	if e.filterFlag != "" {
		cmd.Flags().StringVar(&filter, e.filterFlag, "", e.filterHelp)
	}
	return cmd
}

// newEntityCmd creates the parent command of an entity with its list
// subcommand and any extra subcommands.
func newEntityCmd(name, short string, extra ...*cobra.Command) *cobra.Command {
	e, err := lookupEntity(name)
	if err != nil {
		panic(err)
	}
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}
	cmd.AddCommand(newListCmd(e))
	cmd.AddCommand(extra...)
	return cmd
}
