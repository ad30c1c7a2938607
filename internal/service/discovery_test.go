package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"grid-scout/internal/cache"
	"grid-scout/internal/domain"
	"grid-scout/internal/grid"

	"github.com/rs/zerolog"
)

type fakeDiscoveryGateway struct {
	tournaments     []domain.Tournament
	appearances     []grid.TeamAppearance
	err             error
	tournamentCalls int
	teamCalls       int
}

func (f *fakeDiscoveryGateway) RecentTournaments(context.Context, int) ([]domain.Tournament, error) {
	f.tournamentCalls++
	return f.tournaments, f.err
}

func (f *fakeDiscoveryGateway) TeamsForTournaments(context.Context, []string) ([]grid.TeamAppearance, error) {
	f.teamCalls++
	return f.appearances, f.err
}

func newTestDiscovery(gw *fakeDiscoveryGateway) *DiscoveryService {
	return NewDiscoveryService(gw, cache.NewDiscovery(time.Minute), zerolog.Nop())
}

func TestDiscoverTeamsMergesAndSorts(t *testing.T) {
	gw := &fakeDiscoveryGateway{appearances: []grid.TeamAppearance{
		{TeamID: "10", TeamName: "Sentinels", Tournament: "VCT Americas"},
		{TeamID: "7", TeamName: "Cloud9", Tournament: "VCT Americas"},
		{TeamID: "7", TeamName: "Cloud9", Tournament: "VCT Americas"}, // duplicate row
		{TeamID: "7", TeamName: "Cloud9", Tournament: "Masters Madrid"},
		{TeamID: "", TeamName: "", Tournament: "VCT Americas"}, // unnamed, skipped
	}}

	teams := newTestDiscovery(gw).DiscoverTeams(context.Background(), []string{"t1", "t2"})

	if len(teams) != 2 {
		t.Fatalf("got %d teams, want 2", len(teams))
	}
	if teams[0].Name != "Cloud9" || teams[1].Name != "Sentinels" {
		t.Errorf("order = [%s, %s], want alphabetical", teams[0].Name, teams[1].Name)
	}
	if teams[0].Display != "Cloud9 (VCT Americas, Masters Madrid)" {
		t.Errorf("Display = %q", teams[0].Display)
	}
	if teams[1].Display != "Sentinels (VCT Americas)" {
		t.Errorf("Display = %q", teams[1].Display)
	}
}

func TestDiscoverTeamsTruncatesDisplayContexts(t *testing.T) {
	gw := &fakeDiscoveryGateway{appearances: []grid.TeamAppearance{
		{TeamID: "1", TeamName: "Fnatic", Tournament: "A"},
		{TeamID: "1", TeamName: "Fnatic", Tournament: "B"},
		{TeamID: "1", TeamName: "Fnatic", Tournament: "C"},
	}}

	teams := newTestDiscovery(gw).DiscoverTeams(context.Background(), []string{"t1"})

	if teams[0].Display != "Fnatic (A, B...)" {
		t.Errorf("Display = %q, want two contexts plus ellipsis", teams[0].Display)
	}
}

func TestDiscoverTeamsEmptyInputSkipsGateway(t *testing.T) {
	gw := &fakeDiscoveryGateway{}
	teams := newTestDiscovery(gw).DiscoverTeams(context.Background(), nil)

	if len(teams) != 0 {
		t.Errorf("got %d teams, want 0", len(teams))
	}
	if gw.teamCalls != 0 {
		t.Errorf("gateway called %d times on empty input", gw.teamCalls)
	}
}

func TestDiscoverTeamsGatewayFailureDegrades(t *testing.T) {
	gw := &fakeDiscoveryGateway{err: errors.New("upstream 500")}
	teams := newTestDiscovery(gw).DiscoverTeams(context.Background(), []string{"t1"})

	if len(teams) != 0 {
		t.Errorf("failure should yield empty result, got %d teams", len(teams))
	}
}

func TestRecentTournamentsUsesCache(t *testing.T) {
	gw := &fakeDiscoveryGateway{tournaments: []domain.Tournament{{ID: "t1", Name: "Champions 2026"}}}
	svc := newTestDiscovery(gw)

	first := svc.RecentTournaments(context.Background(), 10)
	second := svc.RecentTournaments(context.Background(), 10)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("lens = %d, %d, want 1, 1", len(first), len(second))
	}
	if gw.tournamentCalls != 1 {
		t.Errorf("gateway called %d times, want 1 (second hit cached)", gw.tournamentCalls)
	}
}
