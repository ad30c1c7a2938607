package service

import (
	"context"

	"grid-scout/internal/constants"
	"grid-scout/internal/domain"
	"grid-scout/internal/grid"

	"github.com/rs/zerolog"
)

// SeriesGateway is the slice of the GRID client series resolution needs.
type SeriesGateway interface {
	SeriesForTeam(ctx context.Context, teamID, tournamentID string, limit int) ([]grid.SeriesNode, error)
}

// SeriesService resolves the ordered list of recent series references for a
// team. Detailed state is fetched lazily by the aggregation engine.
type SeriesService struct {
	gateway      SeriesGateway
	defaultLimit int
	logger       zerolog.Logger
}

func NewSeriesService(gateway SeriesGateway, defaultLimit int, logger zerolog.Logger) *SeriesService {
	if defaultLimit <= 0 {
		defaultLimit = constants.DefaultSeriesLimit
	}
	return &SeriesService{gateway: gateway, defaultLimit: defaultLimit, logger: logger}
}

// RecentSeries returns up to limit series references, most recent first.
// tournamentID optionally scopes the listing. Fewer rows than requested is
// normal; gateway failure yields an empty list.
func (s *SeriesService) RecentSeries(ctx context.Context, teamID, tournamentID string, limit int) []domain.SeriesReference {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	nodes, err := s.gateway.SeriesForTeam(ctx, teamID, tournamentID, limit)
	if err != nil {
		s.logger.Warn().Err(err).Str("team_id", teamID).Msg("series listing unavailable")
		return []domain.SeriesReference{}
	}

	refs := make([]domain.SeriesReference, 0, len(nodes))
	for _, n := range nodes {
		refs = append(refs, domain.SeriesReference{
			ID:         n.ID,
			Tournament: n.TournamentName,
			Date:       normalizeDate(n.StartTimeScheduled),
		})
	}

	s.logger.Info().Str("team_id", teamID).Int("count", len(refs)).Msg("series resolved")
	return refs
}

// normalizeDate keeps only the date portion of a timestamp, or "Unknown"
// when the gateway sent nothing usable.
func normalizeDate(timestamp string) string {
	if len(timestamp) < 10 {
		return "Unknown"
	}
	return timestamp[:10]
}
