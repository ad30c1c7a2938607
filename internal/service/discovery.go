package service

import (
	"context"
	"sort"
	"strings"

	"grid-scout/internal/cache"
	"grid-scout/internal/constants"
	"grid-scout/internal/domain"
	"grid-scout/internal/grid"

	"github.com/rs/zerolog"
)

// DiscoveryGateway is the slice of the GRID client discovery needs.
type DiscoveryGateway interface {
	RecentTournaments(ctx context.Context, limit int) ([]domain.Tournament, error)
	TeamsForTournaments(ctx context.Context, tournamentIDs []string) ([]grid.TeamAppearance, error)
}

// DiscoveryService resolves tournament listings and the teams competing in
// them. It only populates pickers, so every failure degrades to an empty
// result instead of an error.
type DiscoveryService struct {
	gateway DiscoveryGateway
	cache   *cache.Discovery
	logger  zerolog.Logger
}

func NewDiscoveryService(gateway DiscoveryGateway, c *cache.Discovery, logger zerolog.Logger) *DiscoveryService {
	return &DiscoveryService{gateway: gateway, cache: c, logger: logger}
}

// RecentTournaments lists the most recent tournaments, newest first.
func (s *DiscoveryService) RecentTournaments(ctx context.Context, limit int) []domain.Tournament {
	if limit <= 0 {
		limit = constants.TournamentScanLimit
	}

	if tournaments, ok := s.cache.Tournaments(); ok {
		s.logger.Debug().Int("count", len(tournaments)).Msg("returning cached tournaments")
		return tournaments
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	tournaments, err := s.gateway.RecentTournaments(ctx, limit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("tournament listing unavailable")
		return []domain.Tournament{}
	}

	s.cache.SetTournaments(tournaments)
	s.logger.Info().Int("count", len(tournaments)).Msg("tournaments fetched")
	return tournaments
}

// DiscoverTeams returns the distinct teams competing in any of the given
// tournaments, merged by name, sorted alphabetically. An empty id list means
// an empty result with no gateway call.
func (s *DiscoveryService) DiscoverTeams(ctx context.Context, tournamentIDs []string) []domain.TeamIdentity {
	if len(tournamentIDs) == 0 {
		return []domain.TeamIdentity{}
	}

	key := cache.Key(tournamentIDs)
	if teams, ok := s.cache.Teams(key); ok {
		s.logger.Debug().Int("count", len(teams)).Msg("returning cached teams")
		return teams
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	appearances, err := s.gateway.TeamsForTournaments(ctx, tournamentIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("team discovery unavailable")
		return []domain.TeamIdentity{}
	}

	teams := mergeAppearances(appearances)
	s.cache.SetTeams(key, teams)
	s.logger.Info().Int("teams", len(teams)).Int("tournaments", len(tournamentIDs)).Msg("teams discovered")
	return teams
}

type teamContext struct {
	id          string
	tournaments []string // first-seen order
	seen        map[string]struct{}
}

// mergeAppearances folds duplicate series rows into one identity per team
// name, accumulating a set of tournament contexts for the display label.
func mergeAppearances(appearances []grid.TeamAppearance) []domain.TeamIdentity {
	merged := make(map[string]*teamContext)
	for _, a := range appearances {
		if a.TeamName == "" {
			continue
		}
		entry, ok := merged[a.TeamName]
		if !ok {
			entry = &teamContext{id: a.TeamID, seen: make(map[string]struct{})}
			merged[a.TeamName] = entry
		}
		if _, dup := entry.seen[a.Tournament]; !dup {
			entry.seen[a.Tournament] = struct{}{}
			entry.tournaments = append(entry.tournaments, a.Tournament)
		}
	}

	teams := make([]domain.TeamIdentity, 0, len(merged))
	for name, entry := range merged {
		teams = append(teams, domain.TeamIdentity{
			ID:      entry.id,
			Name:    name,
			Display: displayLabel(name, entry.tournaments),
		})
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

// displayLabel renders "Name (T1, T2)" with up to two tournament contexts,
// suffixed with "..." when more exist.
func displayLabel(name string, tournaments []string) string {
	shown := tournaments
	suffix := ""
	if len(tournaments) > 2 {
		shown = tournaments[:2]
		suffix = "..."
	}
	return name + " (" + strings.Join(shown, ", ") + suffix + ")"
}
