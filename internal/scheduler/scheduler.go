package scheduler

import (
	"context"

	"grid-scout/internal/cache"
	"grid-scout/internal/config"
	"grid-scout/internal/constants"
	"grid-scout/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// Scheduler keeps the discovery cache warm while the server runs: on each
// tick it invalidates and re-fetches the tournament listing so pickers never
// serve data older than the cache TTL.
type Scheduler struct {
	s         gocron.Scheduler
	cache     *cache.Discovery
	discovery *service.DiscoveryService
	logger    zerolog.Logger
}

func New(cfg *config.Config, c *cache.Discovery, discovery *service.DiscoveryService, logger zerolog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	sched := &Scheduler{s: s, cache: c, discovery: discovery, logger: logger}

	_, err = s.NewJob(
		gocron.DurationJob(cfg.CacheTTL),
		gocron.NewTask(sched.refresh),
	)
	if err != nil {
		return nil, err
	}

	return sched, nil
}

func (s *Scheduler) Start() {
	s.s.Start()
	s.logger.Info().Msg("discovery refresh scheduler started")
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ExternalAPITimeout)
	defer cancel()

	s.cache.Invalidate()
	tournaments := s.discovery.RecentTournaments(ctx, constants.TournamentScanLimit)
	s.logger.Debug().Int("tournaments", len(tournaments)).Msg("discovery cache refreshed")
}
