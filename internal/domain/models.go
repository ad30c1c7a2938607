package domain

// Tournament is a minimal identity row from the central-data listing.
type Tournament struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamIdentity is one entry of a discovery result. Display carries the team
// name plus up to two tournament contexts so same-named orgs are
// distinguishable in pickers.
type TeamIdentity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Display string `json:"display"`
}

// SeriesReference identifies one series a team has played. Date is the date
// portion of the scheduled start time, or "Unknown" when absent.
type SeriesReference struct {
	ID         string `json:"id"`
	Tournament string `json:"tournament"`
	Date       string `json:"date"`
}

// PlayerGameStat is one player's line within one game, scoped to one team.
type PlayerGameStat struct {
	Name        string `json:"name"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	KillAssists int    `json:"kill_assists"`
	NetWorth    int    `json:"net_worth"`
}

// GameRecord is one map/game within a series from the target team's
// perspective. Score is formatted "ours-theirs".
type GameRecord struct {
	Map      string           `json:"map"`
	Won      bool             `json:"won"`
	Side     string           `json:"side"`
	Score    string           `json:"score"`
	Kills    int              `json:"kills"`
	Deaths   int              `json:"deaths"`
	NetWorth int              `json:"net_worth"`
	Players  []PlayerGameStat `json:"players"`
}

// SeriesSummary is one resolved series where the target team was identified
// among the two competitors.
type SeriesSummary struct {
	SeriesID   string       `json:"series_id"`
	Tournament string       `json:"tournament"`
	Opponent   string       `json:"opponent"`
	SeriesWin  bool         `json:"series_win"`
	Date       string       `json:"date"`
	Games      []GameRecord `json:"games"`
	KeyPlayer  string       `json:"key_player"`
}

// PlayerAggregate accumulates one player's stats across all series of a run,
// keyed by the raw name string. Derived fields are filled after the fold;
// ImpactScore only for the top-five selection.
type PlayerAggregate struct {
	Name          string  `json:"name"`
	TotalKills    int     `json:"total_kills"`
	TotalDeaths   int     `json:"total_deaths"`
	TotalAssists  int     `json:"total_assists"`
	TotalNetWorth int     `json:"total_net_worth"`
	GamesPlayed   int     `json:"participation"`
	AvgKDA        float64 `json:"avg_kda"`
	AvgKills      float64 `json:"avg_kills"`
	AvgDeaths     float64 `json:"avg_deaths"`
	AvgNetWorth   int     `json:"avg_networth"`
	ImpactScore   float64 `json:"impact_score"`
}

// MatchRecord is a single win or loss entry.
type MatchRecord struct {
	Opponent   string `json:"opponent"`
	Tournament string `json:"tournament"`
}

// TournamentRecord is the per-tournament win/loss tally.
type TournamentRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// TeamStatsBundle is the aggregation engine's output. Series holds entries in
// resolution order (most recent first); an empty Series means the run found
// nothing attributable and callers should treat the report as insufficient.
type TeamStatsBundle struct {
	Series            []SeriesSummary             `json:"series"`
	TopPlayers        []PlayerAggregate           `json:"top_players"`
	Wins              []MatchRecord               `json:"wins"`
	Losses            []MatchRecord               `json:"losses"`
	TournamentSummary map[string]TournamentRecord `json:"tournament_summary"`
	TotalSeries       int                         `json:"total_series"`
	MapWinRate        float64                     `json:"map_win_rate"`
	TotalMaps         int                         `json:"total_maps"`
}

// SeriesWins counts series won across the bundle.
func (b *TeamStatsBundle) SeriesWins() int {
	wins := 0
	for _, s := range b.Series {
		if s.SeriesWin {
			wins++
		}
	}
	return wins
}

// Comparison is one side of the side-by-side numeric summary.
type Comparison struct {
	WinRate      string  `json:"win_rate"`
	SeriesPlayed int     `json:"series_played"`
	AvgKDA       float64 `json:"avg_kda"`
	MapWinRate   float64 `json:"map_win_rate"`
}

// Matchup pairs the two reduced sides of a comparison.
type Matchup struct {
	TeamA Comparison `json:"team_a"`
	TeamB Comparison `json:"team_b"`
}

// Playbook holds the long-form tactical sections of a scouting narrative.
type Playbook struct {
	Vulnerability  string `json:"vulnerability"`
	RosterThreats  string `json:"roster_threats"`
	KillerStrategy string `json:"killer_strategy"`
	ExecutionPlan  string `json:"execution_plan"`
}

// RosterNote is per-player role annotation from the narrative generator.
type RosterNote struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Strength string `json:"strength"`
	Weakness string `json:"weakness"`
}

// Narrative is the structured text produced for one team's report.
type Narrative struct {
	Playbook        Playbook     `json:"playbook"`
	Roster          []RosterNote `json:"roster"`
	WinningTrends   string       `json:"winning_trends"`
	CounterStrategy string       `json:"counter_strategy"`
}

// ComparisonNarrative is the sectional verdict for a two-team matchup.
type ComparisonNarrative struct {
	Verdict         string `json:"verdict"`
	PlayerWar       string `json:"player_war"`
	TacticalGap     string `json:"tactical_gap"`
	PriorityTargets string `json:"priority_targets"`
	KillStrategy    string `json:"kill_strategy"`
}
