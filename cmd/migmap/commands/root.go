package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"migmap/internal/atlas"
	"migmap/internal/config"
	"migmap/internal/logging"
	"migmap/internal/mcp"
	"migmap/internal/metrics"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	registry *prometheus.Registry
	dataset  *atlas.Dataset
)

var rootCmd = &cobra.Command{
	Use:   "migmap",
	Short: "migmap serves international migration statistics for map visualizations",
	Long: `A query server over bilateral migrant stocks (1990-2020). It classifies countries by
foreign-born share, migrant volume or share evolution into quantile categories with outlier
handling, and answers per-country partner and timeseries queries.

Without a subcommand it runs as an MCP server over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("dataPath", cfg.DataPath).
			Msg("migmap starting")

		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		dataset, err = atlas.Load(cmd.Context(), cfg.Sources(),
			atlas.WithTheme(cfg.Theme),
			atlas.WithMetrics(metrics.New(registry)),
		)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(cfg, dataset, Version)
		return server.Start(cmd.Context())
	},
}

// Execute runs the root command until it completes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
