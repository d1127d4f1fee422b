package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/me/backoffice/internal/api"
	"github.com/me/backoffice/internal/config"
	"github.com/me/backoffice/internal/logging"
	"github.com/me/backoffice/internal/period"
)

var (
	flagConfig string
	flagDebug  bool

	cfg      config.CLIConfig
	logger   *slog.Logger
	client   *api.Client
	resolver *period.Resolver
	out      *printer

	// clock is replaced in tests.
	clock = period.SystemClock
)

// viperKeys maps persistent flags to configuration keys.
var viperKeys = map[string]string{
	"api":        "api",
	"timezone":   "timezone",
	"output":     "output",
	"color":      "color",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// NewRootCmd creates the root cobra command for the backoffice CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Back-office client for the sales funnel API",
		Long: `backoffice lists and edits requests, payments, visitors, partners and
reminders, and prints the statistics the dashboard shows.

Settings are read from ./backoffice.yaml or ~/.config/backoffice/backoffice.yaml
and BACKOFFICE_* environment variables. Flags take precedence.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default ./backoffice.yaml, then ~/.config/backoffice/backoffice.yaml)")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	pf.String("api", "http://localhost:3000", "API base URL (or BACKOFFICE_API env)")
	pf.String("timezone", "Local", "Time zone periods are resolved in")
	pf.StringP("output", "o", "table", "Output format (table, json, yaml)")
	pf.String("color", "auto", "Colorize output (auto, always, never)")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRequestsCmd(),
		newPaymentsCmd(),
		newVisitorsCmd(),
		newPartnersCmd(),
		newRemindersCmd(),
		newButtonsCmd(),
		newStatsCmd(),
		newRangeCmd(),
		newBrowseCmd(),
	)

	return root
}

func setup(cmd *cobra.Command) error {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	for flag, key := range viperKeys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", flag, err)
		}
	}

	var err error
	cfg, err = config.LoadCLI(v, flagConfig)
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	logger = logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	resolver = period.NewResolver(clock, loc)

	out, err = newPrinter(cmd.OutOrStdout(), cfg.Output, cfg.Color)
	if err != nil {
		return err
	}

	client = api.NewClient(cfg.API, logger)
	logger.Debug("configured", "api", cfg.API, "timezone", loc.String(), "output", cfg.Output)
	return nil
}
