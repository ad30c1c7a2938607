package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"grid-scout/internal/constants"
	"grid-scout/internal/domain"
	"grid-scout/internal/grid"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// StateGateway is the slice of the GRID client the aggregation engine needs.
type StateGateway interface {
	SeriesState(ctx context.Context, seriesID string) (*grid.SeriesState, error)
}

// Aggregator turns a team's recent series references into one
// TeamStatsBundle. It never fails on data-quality problems: unreachable or
// unattributable series are skipped and the output simply shrinks. Callers
// detect the zero-series outcome through an empty Series slice.
type Aggregator struct {
	gateway     StateGateway
	matcher     TeamMatcher
	maxMatches  int
	concurrency int
	logger      zerolog.Logger
}

// TeamMatcher mirrors matcher.TeamMatcher; redeclared here so the engine
// depends only on the rule, not the package of strategies.
type TeamMatcher interface {
	Match(target string, candidates []string) (int, bool)
}

func NewAggregator(gateway StateGateway, m TeamMatcher, maxMatches, concurrency int, logger zerolog.Logger) *Aggregator {
	if maxMatches <= 0 {
		maxMatches = constants.DefaultMaxMatches
	}
	if concurrency <= 0 {
		concurrency = constants.DefaultFetchConcurrency
	}
	return &Aggregator{
		gateway:     gateway,
		matcher:     m,
		maxMatches:  maxMatches,
		concurrency: concurrency,
		logger:      logger,
	}
}

// playerTotals is the run-global accumulator for one raw player name.
type playerTotals struct {
	kills, deaths, assists, netWorth int
	games                            int
}

// CollectTeamData fetches detailed state for up to maxMatches of the given
// series and folds them into a stats bundle. States are fetched in parallel
// but folded strictly in resolution order, so the output is deterministic
// for a given input.
func (a *Aggregator) CollectTeamData(ctx context.Context, teamName string, refs []domain.SeriesReference) *domain.TeamStatsBundle {
	if len(refs) > a.maxMatches {
		refs = refs[:a.maxMatches]
	}

	states := a.fetchStates(ctx, refs)

	bundle := &domain.TeamStatsBundle{
		Series:            []domain.SeriesSummary{},
		TopPlayers:        []domain.PlayerAggregate{},
		Wins:              []domain.MatchRecord{},
		Losses:            []domain.MatchRecord{},
		TournamentSummary: make(map[string]domain.TournamentRecord),
	}

	totals := make(map[string]*playerTotals)
	var playerOrder []string

	for i, ref := range refs {
		state := states[i]
		if state == nil || len(state.Teams) == 0 {
			continue
		}

		summary, ok := a.foldSeries(teamName, ref, state, bundle, totals, &playerOrder)
		if !ok {
			a.logger.Debug().Str("series_id", ref.ID).Str("team", teamName).Msg("no competitor matched target, series dropped")
			continue
		}
		bundle.Series = append(bundle.Series, summary)
	}

	a.deriveBundle(bundle, totals, playerOrder)

	a.logger.Info().
		Str("team", teamName).
		Int("series_requested", len(refs)).
		Int("series_resolved", bundle.TotalSeries).
		Int("maps", bundle.TotalMaps).
		Msg("team data collected")
	return bundle
}

// fetchStates retrieves all series states with bounded parallelism, stamped
// by original index. Failures leave a nil slot; the fold treats that as a
// skipped series.
func (a *Aggregator) fetchStates(ctx context.Context, refs []domain.SeriesReference) []*grid.SeriesState {
	states := make([]*grid.SeriesState, len(refs))

	g := new(errgroup.Group)
	g.SetLimit(a.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
			defer cancel()

			state, err := a.gateway.SeriesState(callCtx, ref.ID)
			if err != nil {
				a.logger.Warn().Err(err).Str("series_id", ref.ID).Msg("series state unavailable, skipping")
				return nil
			}
			states[i] = state
			return nil
		})
	}
	g.Wait()
	return states
}

// foldSeries attributes one series to the target team and accumulates it
// into the bundle and the run-global player totals. ok is false when no
// competitor matched.
func (a *Aggregator) foldSeries(
	teamName string,
	ref domain.SeriesReference,
	state *grid.SeriesState,
	bundle *domain.TeamStatsBundle,
	totals map[string]*playerTotals,
	playerOrder *[]string,
) (domain.SeriesSummary, bool) {
	names := make([]string, len(state.Teams))
	for i, t := range state.Teams {
		names[i] = t.Name
	}
	idx, ok := a.matcher.Match(teamName, names)
	if !ok {
		return domain.SeriesSummary{}, false
	}

	// From here on the resolved canonical name is used exactly; the fuzzy
	// rule is only for picking the side.
	actual := state.Teams[idx].Name
	seriesWin := state.Teams[idx].Won

	opponent := "Unknown"
	for _, t := range state.Teams {
		if t.Name != actual {
			opponent = t.Name
			break
		}
	}

	record := bundle.TournamentSummary[ref.Tournament]
	if seriesWin {
		record.Wins++
		bundle.Wins = append(bundle.Wins, domain.MatchRecord{Opponent: opponent, Tournament: ref.Tournament})
	} else {
		record.Losses++
		bundle.Losses = append(bundle.Losses, domain.MatchRecord{Opponent: opponent, Tournament: ref.Tournament})
	}
	bundle.TournamentSummary[ref.Tournament] = record

	summary := domain.SeriesSummary{
		SeriesID:   ref.ID,
		Tournament: ref.Tournament,
		Opponent:   opponent,
		SeriesWin:  seriesWin,
		Date:       ref.Date,
		Games:      []domain.GameRecord{},
		KeyPlayer:  "N/A",
	}

	seriesTotals := make(map[string]*playerTotals)
	var seriesOrder []string

	for _, game := range state.Games {
		ours, theirs := splitGameTeams(game.Teams, actual)
		if ours == nil {
			// Our side has no record for this game; drop the game, keep
			// the series.
			continue
		}

		summary.Games = append(summary.Games, buildGameRecord(game, ours, theirs))

		for _, p := range ours.Players {
			if p.Name == "" {
				continue
			}
			global, ok := totals[p.Name]
			if !ok {
				global = &playerTotals{}
				totals[p.Name] = global
				*playerOrder = append(*playerOrder, p.Name)
			}
			global.kills += p.Kills
			global.deaths += p.Deaths
			global.assists += p.KillAssistsGiven
			global.netWorth += p.NetWorth
			global.games++

			local, ok := seriesTotals[p.Name]
			if !ok {
				local = &playerTotals{}
				seriesTotals[p.Name] = local
				seriesOrder = append(seriesOrder, p.Name)
			}
			local.kills += p.Kills
			local.deaths += p.Deaths
			local.assists += p.KillAssistsGiven
		}
	}

	if name, ok := keyPlayer(seriesTotals, seriesOrder); ok {
		summary.KeyPlayer = name
	}
	return summary, true
}

// splitGameTeams finds the target side by exact name and the first other
// side for the score line.
func splitGameTeams(teams []grid.GameTeamState, actual string) (ours, theirs *grid.GameTeamState) {
	for i := range teams {
		if teams[i].Name == actual {
			ours = &teams[i]
		} else if theirs == nil {
			theirs = &teams[i]
		}
	}
	return ours, theirs
}

func buildGameRecord(game grid.GameState, ours, theirs *grid.GameTeamState) domain.GameRecord {
	mapName := "Unknown"
	if game.Map != nil && game.Map.Name != "" {
		mapName = game.Map.Name
	}
	side := ours.Side
	if side == "" {
		side = "Unknown"
	}
	theirScore := 0
	if theirs != nil {
		theirScore = theirs.Score
	}

	players := make([]domain.PlayerGameStat, 0, len(ours.Players))
	for _, p := range ours.Players {
		players = append(players, domain.PlayerGameStat{
			Name:        p.Name,
			Kills:       p.Kills,
			Deaths:      p.Deaths,
			KillAssists: p.KillAssistsGiven,
			NetWorth:    p.NetWorth,
		})
	}

	return domain.GameRecord{
		Map:      mapName,
		Won:      ours.Won,
		Side:     side,
		Score:    formatScore(ours.Score, theirScore),
		Kills:    ours.Kills,
		Deaths:   ours.Deaths,
		NetWorth: ours.NetWorth,
		Players:  players,
	}
}

// keyPlayer picks the series-local player maximizing (K+A)/max(D,1). Ties go
// to the earlier first appearance, which keeps the selection deterministic.
func keyPlayer(seriesTotals map[string]*playerTotals, order []string) (string, bool) {
	best := ""
	bestRatio := math.Inf(-1)
	for _, name := range order {
		t := seriesTotals[name]
		divisor := t.deaths
		if divisor == 0 {
			divisor = 1
		}
		ratio := float64(t.kills+t.assists) / float64(divisor)
		if ratio > bestRatio {
			best, bestRatio = name, ratio
		}
	}
	return best, best != ""
}

// deriveBundle fills every post-fold metric: per-player averages and KDA,
// the top-five selection with impact scores, and the map win rate.
func (a *Aggregator) deriveBundle(bundle *domain.TeamStatsBundle, totals map[string]*playerTotals, playerOrder []string) {
	players := make([]domain.PlayerAggregate, 0, len(totals))
	for _, name := range playerOrder {
		t := totals[name]
		if t.games == 0 {
			continue
		}
		kda := float64(t.kills + t.assists)
		if t.deaths > 0 {
			kda = kda / float64(t.deaths)
		}
		players = append(players, domain.PlayerAggregate{
			Name:          name,
			TotalKills:    t.kills,
			TotalDeaths:   t.deaths,
			TotalAssists:  t.assists,
			TotalNetWorth: t.netWorth,
			GamesPlayed:   t.games,
			AvgKDA:        round2(kda),
			AvgKills:      round2(float64(t.kills) / float64(t.games)),
			AvgDeaths:     round2(float64(t.deaths) / float64(t.games)),
			AvgNetWorth:   t.netWorth / t.games,
		})
	}

	// Stable sort: equal KDAs keep first-appearance order.
	sort.SliceStable(players, func(i, j int) bool { return players[i].AvgKDA > players[j].AvgKDA })
	if len(players) > constants.TopPlayerCount {
		players = players[:constants.TopPlayerCount]
	}
	for i := range players {
		players[i].ImpactScore = round1(players[i].AvgKDA*5 + float64(players[i].AvgNetWorth)/2000)
	}
	bundle.TopPlayers = players

	mapWins, totalMaps := 0, 0
	for _, s := range bundle.Series {
		totalMaps += len(s.Games)
		for _, g := range s.Games {
			if g.Won {
				mapWins++
			}
		}
	}
	bundle.TotalSeries = len(bundle.Series)
	bundle.TotalMaps = totalMaps
	if totalMaps > 0 {
		bundle.MapWinRate = round1(float64(mapWins) / float64(totalMaps) * 100)
	}
}

func formatScore(ours, theirs int) string { return fmt.Sprintf("%d-%d", ours, theirs) }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
