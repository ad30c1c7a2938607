package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"grid-scout/internal/constants"
	"grid-scout/internal/domain"
	"grid-scout/internal/report"
	"grid-scout/internal/service"

	"github.com/rs/zerolog"
)

// ScoutServer exposes the pipeline as a JSON API.
type ScoutServer struct {
	discovery  *service.DiscoveryService
	series     *service.SeriesService
	aggregator *service.Aggregator
	narrative  *service.NarrativeService
	logger     zerolog.Logger
}

func NewScoutServer(
	discovery *service.DiscoveryService,
	series *service.SeriesService,
	aggregator *service.Aggregator,
	narrative *service.NarrativeService,
	logger zerolog.Logger,
) *ScoutServer {
	return &ScoutServer{
		discovery:  discovery,
		series:     series,
		aggregator: aggregator,
		narrative:  narrative,
		logger:     logger,
	}
}

// Routes registers all handlers on a fresh mux.
func (s *ScoutServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/tournaments", s.handleTournaments)
	mux.HandleFunc("GET /api/v1/teams", s.handleTeams)
	mux.HandleFunc("GET /api/v1/scout", s.handleScout)
	mux.HandleFunc("GET /api/v1/compare", s.handleCompare)
	return mux
}

func (s *ScoutServer) handleTournaments(w http.ResponseWriter, r *http.Request) {
	tournaments := s.discovery.RecentTournaments(r.Context(), constants.TournamentScanLimit)
	writeJSON(w, http.StatusOK, map[string]any{"tournaments": tournaments})
}

func (s *ScoutServer) handleTeams(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tournaments")
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	teams := s.discovery.DiscoverTeams(r.Context(), ids)
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

type scoutResponse struct {
	ReportID  string                  `json:"report_id"`
	Team      string                  `json:"team"`
	Stats     *domain.TeamStatsBundle `json:"stats"`
	Narrative *domain.Narrative       `json:"narrative,omitempty"`
}

func (s *ScoutServer) handleScout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teamID := q.Get("team_id")
	teamName := q.Get("team_name")
	if teamID == "" || teamName == "" {
		writeError(w, http.StatusBadRequest, "team_id and team_name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	refs := s.series.RecentSeries(ctx, teamID, q.Get("tournament_id"), 0)
	if len(refs) == 0 {
		writeError(w, http.StatusNotFound, "no recent series found for this team")
		return
	}

	bundle := s.aggregator.CollectTeamData(ctx, teamName, refs)
	if len(bundle.Series) == 0 {
		// Series metadata existed but no state could be attributed; callers
		// show "insufficient data" rather than an empty report.
		writeError(w, http.StatusUnprocessableEntity, "insufficient data for this team")
		return
	}

	resp := scoutResponse{
		ReportID: report.NewReportID(),
		Team:     teamName,
		Stats:    bundle,
	}
	if s.narrative.Enabled() {
		resp.Narrative = s.narrative.ScoutingReport(ctx, teamName, bundle)
	}
	writeJSON(w, http.StatusOK, resp)
}

type compareResponse struct {
	TeamA     string                     `json:"team_a"`
	TeamB     string                     `json:"team_b"`
	Matchup   domain.Matchup             `json:"matchup"`
	StatsA    *domain.TeamStatsBundle    `json:"stats_a"`
	StatsB    *domain.TeamStatsBundle    `json:"stats_b"`
	Narrative *domain.ComparisonNarrative `json:"narrative,omitempty"`
}

func (s *ScoutServer) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	idA, nameA := q.Get("team_a_id"), q.Get("team_a_name")
	idB, nameB := q.Get("team_b_id"), q.Get("team_b_name")
	if idA == "" || nameA == "" || idB == "" || nameB == "" {
		writeError(w, http.StatusBadRequest, "team_a_id, team_a_name, team_b_id and team_b_name are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	bundleA := s.aggregator.CollectTeamData(ctx, nameA, s.series.RecentSeries(ctx, idA, "", 0))
	bundleB := s.aggregator.CollectTeamData(ctx, nameB, s.series.RecentSeries(ctx, idB, "", 0))

	resp := compareResponse{
		TeamA:   nameA,
		TeamB:   nameB,
		Matchup: service.Compare(bundleA, bundleB),
		StatsA:  bundleA,
		StatsB:  bundleB,
	}
	if s.narrative.Enabled() && (len(bundleA.Series) > 0 || len(bundleB.Series) > 0) {
		resp.Narrative = s.narrative.ComparisonReport(ctx, nameA, bundleA, nameB, bundleB)
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
