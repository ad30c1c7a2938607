package service

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"grid-scout/internal/domain"
	"grid-scout/internal/grid"
	"grid-scout/internal/matcher"

	"github.com/rs/zerolog"
)

type fakeStateGateway struct {
	mu     sync.Mutex
	states map[string]*grid.SeriesState
	errs   map[string]error
	calls  []string
}

func (f *fakeStateGateway) SeriesState(_ context.Context, seriesID string) (*grid.SeriesState, error) {
	f.mu.Lock()
	f.calls = append(f.calls, seriesID)
	f.mu.Unlock()

	if err, ok := f.errs[seriesID]; ok {
		return nil, err
	}
	return f.states[seriesID], nil
}

func newTestAggregator(gw *fakeStateGateway, maxMatches int) *Aggregator {
	return NewAggregator(gw, matcher.SubstringMatcher{}, maxMatches, 2, zerolog.Nop())
}

func ref(id string) domain.SeriesReference {
	return domain.SeriesReference{ID: id, Tournament: "VCT Americas", Date: "2026-01-10"}
}

func gameFor(mapName string, ours, theirs grid.GameTeamState) grid.GameState {
	g := grid.GameState{Teams: []grid.GameTeamState{ours, theirs}}
	if mapName != "" {
		g.Map = &struct {
			Name string `json:"name"`
		}{Name: mapName}
	}
	return g
}

func side(name string, won bool, score int, players ...grid.GamePlayer) grid.GameTeamState {
	kills, deaths, netWorth := 0, 0, 0
	for _, p := range players {
		kills += p.Kills
		deaths += p.Deaths
		netWorth += p.NetWorth
	}
	return grid.GameTeamState{
		Name: name, Won: won, Side: "attacker", Score: score,
		Kills: kills, Deaths: deaths, NetWorth: netWorth, Players: players,
	}
}

func player(name string, kills, deaths, assists, netWorth int) grid.GamePlayer {
	return grid.GamePlayer{Name: name, Kills: kills, Deaths: deaths, KillAssistsGiven: assists, NetWorth: netWorth}
}

func TestCollectTeamDataSweep(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "Cloud9 Blue", Won: true}, {Name: "Sentinels", Won: false}},
			Games: []grid.GameState{
				gameFor("Ascent",
					side("Cloud9 Blue", true, 13, player("leaf", 6, 1, 2, 4000)),
					side("Sentinels", false, 7, player("zekken", 5, 6, 1, 3000)),
				),
				gameFor("Bind",
					side("Cloud9 Blue", true, 13, player("leaf", 4, 1, 3, 4000)),
					side("Sentinels", false, 9, player("zekken", 6, 4, 0, 3500)),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "Cloud9", []domain.SeriesReference{ref("s1")})

	if bundle.TotalSeries != 1 {
		t.Fatalf("TotalSeries = %d, want 1", bundle.TotalSeries)
	}
	if bundle.TotalMaps != 2 {
		t.Fatalf("TotalMaps = %d, want 2", bundle.TotalMaps)
	}
	if bundle.MapWinRate != 100.0 {
		t.Errorf("MapWinRate = %v, want 100.0", bundle.MapWinRate)
	}
	if got := bundle.SeriesWins(); got != 1 {
		t.Errorf("SeriesWins() = %d, want 1", got)
	}

	s := bundle.Series[0]
	if s.Opponent != "Sentinels" {
		t.Errorf("Opponent = %q, want Sentinels", s.Opponent)
	}
	if s.KeyPlayer != "leaf" {
		t.Errorf("KeyPlayer = %q, want leaf", s.KeyPlayer)
	}
	if s.Games[0].Map != "Ascent" || s.Games[0].Score != "13-7" {
		t.Errorf("game 0 = %q %q, want Ascent 13-7", s.Games[0].Map, s.Games[0].Score)
	}

	if len(bundle.TopPlayers) != 1 {
		t.Fatalf("TopPlayers len = %d, want 1", len(bundle.TopPlayers))
	}
	p := bundle.TopPlayers[0]
	if p.AvgKDA != 7.5 {
		t.Errorf("AvgKDA = %v, want 7.5", p.AvgKDA)
	}
	if p.AvgNetWorth != 4000 {
		t.Errorf("AvgNetWorth = %d, want 4000", p.AvgNetWorth)
	}
	// 7.5*5 + 4000/2000
	if p.ImpactScore != 39.5 {
		t.Errorf("ImpactScore = %v, want 39.5", p.ImpactScore)
	}
	if p.GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d, want 2", p.GamesPlayed)
	}
}

func TestCollectTeamDataSkipsUnreachableSeries(t *testing.T) {
	gw := &fakeStateGateway{
		states: map[string]*grid.SeriesState{
			"ok": {
				Teams: []grid.SeriesTeam{{Name: "Fnatic", Won: false}, {Name: "NAVI", Won: true}},
				Games: []grid.GameState{
					gameFor("Lotus",
						side("Fnatic", false, 9, player("Derke", 14, 15, 3, 3200)),
						side("NAVI", true, 13, player("aleksib", 10, 9, 12, 3100)),
					),
				},
			},
		},
		errs: map[string]error{"down": errors.New("context deadline exceeded")},
	}

	refs := []domain.SeriesReference{ref("down"), ref("ok")}
	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "Fnatic", refs)

	if bundle.TotalSeries != 1 {
		t.Fatalf("TotalSeries = %d, want 1 after skipping the failed fetch", bundle.TotalSeries)
	}
	if bundle.Series[0].SeriesID != "ok" {
		t.Errorf("surviving series = %q, want ok", bundle.Series[0].SeriesID)
	}
}

func TestCollectTeamDataEmptyInput(t *testing.T) {
	gw := &fakeStateGateway{}
	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "Cloud9", nil)

	if bundle.TotalSeries != 0 || bundle.TotalMaps != 0 || bundle.MapWinRate != 0 {
		t.Errorf("empty input: got series=%d maps=%d winrate=%v, want all zero",
			bundle.TotalSeries, bundle.TotalMaps, bundle.MapWinRate)
	}
	if len(bundle.Series) != 0 || len(bundle.TopPlayers) != 0 {
		t.Errorf("empty input should yield empty slices")
	}
	if len(gw.calls) != 0 {
		t.Errorf("gateway called %d times on empty input", len(gw.calls))
	}
}

func TestCollectTeamDataZeroDeathKDA(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "G2", Won: true}, {Name: "100T", Won: false}},
			Games: []grid.GameState{
				gameFor("Haven",
					side("G2", true, 13, player("trent", 3, 0, 2, 2500)),
					side("100T", false, 2, player("Cryo", 2, 3, 0, 2000)),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "G2", []domain.SeriesReference{ref("s1")})

	if got := bundle.TopPlayers[0].AvgKDA; got != 5.0 {
		t.Errorf("zero-death KDA = %v, want 5.0 (kills+assists)", got)
	}
}

func TestCollectTeamDataDropsUnmatchedSeries(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"other": {
			Teams: []grid.SeriesTeam{{Name: "EDward Gaming", Won: true}, {Name: "Paper Rex", Won: false}},
			Games: []grid.GameState{
				gameFor("Split",
					side("EDward Gaming", true, 13, player("ZmjjKK", 20, 10, 4, 4100)),
					side("Paper Rex", false, 8, player("f0rsakeN", 12, 14, 6, 3600)),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "Cloud9", []domain.SeriesReference{ref("other")})

	if bundle.TotalSeries != 0 {
		t.Errorf("unmatched series should be dropped, got TotalSeries = %d", bundle.TotalSeries)
	}
	if len(bundle.TopPlayers) != 0 {
		t.Errorf("no stats should be attributed from a dropped series")
	}
}

func TestCollectTeamDataDropsGameWithoutOurSide(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "Liquid", Won: true}, {Name: "KOI", Won: false}},
			Games: []grid.GameState{
				gameFor("Pearl",
					side("Liquid", true, 13, player("nAts", 15, 8, 5, 3900)),
					side("KOI", false, 10, player("Wolfen", 11, 13, 2, 3300)),
				),
				// Broken game record: neither side carries our exact name.
				gameFor("Icebox",
					side("???", false, 0),
					side("KOI", true, 13, player("Wolfen", 18, 6, 3, 4200)),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "Liquid", []domain.SeriesReference{ref("s1")})

	if bundle.TotalSeries != 1 {
		t.Fatalf("series should survive a broken game, got TotalSeries = %d", bundle.TotalSeries)
	}
	if bundle.TotalMaps != 1 {
		t.Errorf("TotalMaps = %d, want 1 (broken game dropped)", bundle.TotalMaps)
	}
}

func TestCollectTeamDataCapsAtMaxMatches(t *testing.T) {
	state := &grid.SeriesState{
		Teams: []grid.SeriesTeam{{Name: "Heretics", Won: true}, {Name: "Vitality", Won: false}},
		Games: []grid.GameState{
			gameFor("Sunset",
				side("Heretics", true, 13, player("benjyfishy", 12, 10, 4, 3500)),
				side("Vitality", false, 9, player("Sayf", 13, 12, 2, 3400)),
			),
		},
	}
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{"s1": state, "s2": state, "s3": state}}

	refs := []domain.SeriesReference{ref("s1"), ref("s2"), ref("s3")}
	bundle := newTestAggregator(gw, 2).CollectTeamData(context.Background(), "Heretics", refs)

	if bundle.TotalSeries != 2 {
		t.Errorf("TotalSeries = %d, want 2 (capped)", bundle.TotalSeries)
	}
	if len(gw.calls) != 2 {
		t.Errorf("gateway called %d times, want 2", len(gw.calls))
	}
}

func TestCollectTeamDataTopPlayersOrderAndCut(t *testing.T) {
	players := []grid.GamePlayer{
		player("p1", 10, 2, 0, 2000), // KDA 5.00
		player("p2", 10, 5, 0, 2000), // KDA 2.00
		player("p3", 8, 4, 0, 2000),  // KDA 2.00, after p2 on tie
		player("p4", 30, 2, 0, 2000), // KDA 15.00
		player("p5", 1, 10, 0, 2000), // KDA 0.10
		player("p6", 2, 10, 0, 2000), // KDA 0.20
	}
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "DRX", Won: true}, {Name: "T1", Won: false}},
			Games: []grid.GameState{
				gameFor("Abyss",
					grid.GameTeamState{Name: "DRX", Won: true, Side: "defender", Score: 13, Players: players},
					side("T1", false, 11),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "DRX", []domain.SeriesReference{ref("s1")})

	want := []string{"p4", "p1", "p2", "p3", "p6"}
	if len(bundle.TopPlayers) != 5 {
		t.Fatalf("TopPlayers len = %d, want 5", len(bundle.TopPlayers))
	}
	for i, name := range want {
		if bundle.TopPlayers[i].Name != name {
			t.Errorf("TopPlayers[%d] = %q, want %q", i, bundle.TopPlayers[i].Name, name)
		}
	}
}

func TestCollectTeamDataKeyPlayerTieKeepsFirstSeen(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "LOUD", Won: true}, {Name: "MIBR", Won: false}},
			Games: []grid.GameState{
				gameFor("Fracture",
					side("LOUD", true, 13,
						player("aspas", 10, 5, 0, 3000),
						player("Less", 8, 4, 0, 2800), // same 2.0 ratio
					),
					side("MIBR", false, 6),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "LOUD", []domain.SeriesReference{ref("s1")})

	if got := bundle.Series[0].KeyPlayer; got != "aspas" {
		t.Errorf("KeyPlayer = %q, want aspas (first seen wins ties)", got)
	}
}

func TestCollectTeamDataIsDeterministic(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "NRG", Won: false}, {Name: "EG", Won: true}},
			Games: []grid.GameState{
				gameFor("Ascent",
					side("NRG", false, 8, player("Ethan", 12, 14, 7, 3100), player("crashies", 10, 12, 9, 2900)),
					side("EG", true, 13, player("Demon1", 22, 8, 3, 4400)),
				),
			},
		},
		"s2": {
			Teams: []grid.SeriesTeam{{Name: "NRG", Won: true}, {Name: "FURIA", Won: false}},
			Games: []grid.GameState{
				gameFor("Bind",
					side("NRG", true, 13, player("crashies", 16, 9, 6, 3600), player("Ethan", 14, 10, 8, 3400)),
					side("FURIA", false, 7, player("mwzera", 15, 13, 1, 3300)),
				),
			},
		},
	}}

	refs := []domain.SeriesReference{ref("s1"), ref("s2")}
	agg := newTestAggregator(gw, 10)

	first := agg.CollectTeamData(context.Background(), "NRG", refs)
	for range 5 {
		again := agg.CollectTeamData(context.Background(), "NRG", refs)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("repeated aggregation diverged:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}

func TestCollectTeamDataAccumulatesAcrossSeries(t *testing.T) {
	gw := &fakeStateGateway{states: map[string]*grid.SeriesState{
		"s1": {
			Teams: []grid.SeriesTeam{{Name: "KRU", Won: true}, {Name: "Leviatan", Won: false}},
			Games: []grid.GameState{
				gameFor("Haven",
					side("KRU", true, 13, player("keznit", 20, 10, 0, 4000)),
					side("Leviatan", false, 5),
				),
			},
		},
		"s2": {
			Teams: []grid.SeriesTeam{{Name: "KRU", Won: false}, {Name: "Leviatan", Won: true}},
			Games: []grid.GameState{
				gameFor("Lotus",
					side("KRU", false, 9, player("keznit", 10, 10, 0, 2000)),
					side("Leviatan", true, 13),
				),
			},
		},
	}}

	bundle := newTestAggregator(gw, 10).CollectTeamData(context.Background(), "KRU", []domain.SeriesReference{ref("s1"), ref("s2")})

	p := bundle.TopPlayers[0]
	if p.TotalKills != 30 || p.TotalDeaths != 20 || p.GamesPlayed != 2 {
		t.Errorf("totals = %d/%d over %d games, want 30/20 over 2", p.TotalKills, p.TotalDeaths, p.GamesPlayed)
	}
	if p.AvgKDA != 1.5 {
		t.Errorf("AvgKDA = %v, want 1.5", p.AvgKDA)
	}
	if p.AvgNetWorth != 3000 {
		t.Errorf("AvgNetWorth = %d, want 3000", p.AvgNetWorth)
	}
	if bundle.MapWinRate != 50.0 {
		t.Errorf("MapWinRate = %v, want 50.0", bundle.MapWinRate)
	}
	if rec := bundle.TournamentSummary["VCT Americas"]; rec.Wins != 1 || rec.Losses != 1 {
		t.Errorf("tournament record = %+v, want 1W 1L", rec)
	}
}
