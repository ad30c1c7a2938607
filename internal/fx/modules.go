package fx

import (
	"grid-scout/internal/cache"
	"grid-scout/internal/config"
	"grid-scout/internal/grid"
	"grid-scout/internal/logger"
	"grid-scout/internal/matcher"
	"grid-scout/internal/scheduler"
	"grid-scout/internal/server"
	"grid-scout/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideCache(cfg *config.Config) *cache.Discovery {
	return cache.NewDiscovery(cfg.CacheTTL)
}

func ProvideDiscoveryService(client *grid.Client, c *cache.Discovery, log zerolog.Logger) *service.DiscoveryService {
	return service.NewDiscoveryService(client, c, log)
}

func ProvideSeriesService(client *grid.Client, cfg *config.Config, log zerolog.Logger) *service.SeriesService {
	return service.NewSeriesService(client, cfg.SeriesLimit, log)
}

func ProvideAggregator(client *grid.Client, cfg *config.Config, log zerolog.Logger) *service.Aggregator {
	return service.NewAggregator(client, matcher.SubstringMatcher{}, cfg.MaxMatches, cfg.FetchConcurrency, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(ProvideCache),
	// gateway
	fx.Provide(grid.NewClient),
	// svc
	fx.Provide(ProvideDiscoveryService),
	fx.Provide(ProvideSeriesService),
	fx.Provide(ProvideAggregator),
	fx.Provide(service.NewNarrativeService),
	// server + background refresh
	fx.Provide(server.NewScoutServer),
	fx.Provide(scheduler.New),
)
