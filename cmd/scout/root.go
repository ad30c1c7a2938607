package main

import (
	"os"

	"grid-scout/internal/cache"
	"grid-scout/internal/config"
	"grid-scout/internal/grid"
	"grid-scout/internal/logger"
	"grid-scout/internal/matcher"
	"grid-scout/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagTournament  string
	flagLimit       int
	flagMaxMatches  int
	flagConcurrency int
)

var rootCmd = &cobra.Command{
	Use:           "scout",
	Short:         "Esports scouting reports from GRID match telemetry",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagTournament, "tournament", "", "scope series resolution to one tournament id")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 0, "series references to resolve (default from SERIES_LIMIT)")
	rootCmd.PersistentFlags().IntVar(&flagMaxMatches, "max-matches", 0, "series to aggregate (default from MAX_MATCHES)")
	rootCmd.PersistentFlags().IntVar(&flagConcurrency, "concurrency", 0, "parallel state fetches (default from FETCH_CONCURRENCY)")

	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(scoutCmd)
	rootCmd.AddCommand(compareCmd)
}

// app bundles everything a command needs; built per invocation.
type app struct {
	cfg        *config.Config
	logger     zerolog.Logger
	discovery  *service.DiscoveryService
	series     *service.SeriesService
	aggregator *service.Aggregator
	narrative  *service.NarrativeService
}

func newApp() (*app, error) {
	log := logger.New()
	if os.Getenv("LOG_LEVEL") == "" {
		// Keep table output clean unless logging was asked for.
		log = log.Level(zerolog.WarnLevel)
	}

	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	if flagMaxMatches > 0 {
		cfg.MaxMatches = flagMaxMatches
	}
	if flagConcurrency > 0 {
		cfg.FetchConcurrency = flagConcurrency
	}

	client := grid.NewClient(cfg, log)
	return &app{
		cfg:        cfg,
		logger:     log,
		discovery:  service.NewDiscoveryService(client, cache.NewDiscovery(cfg.CacheTTL), log),
		series:     service.NewSeriesService(client, cfg.SeriesLimit, log),
		aggregator: service.NewAggregator(client, matcher.SubstringMatcher{}, cfg.MaxMatches, cfg.FetchConcurrency, log),
		narrative:  service.NewNarrativeService(cfg, log),
	}, nil
}
