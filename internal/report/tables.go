package report

import (
	"fmt"
	"io"
	"strconv"

	"grid-scout/internal/domain"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintSeriesTable writes the per-series results table.
func PrintSeriesTable(w io.Writer, bundle *domain.TeamStatsBundle) {
	table := newTable(w)
	table.Header("DATE", "TOURNAMENT", "OPPONENT", "RESULT", "MAPS", "KEY PLAYER")

	for _, s := range bundle.Series {
		result := "L"
		if s.SeriesWin {
			result = "W"
		}
		mapsWon := 0
		for _, g := range s.Games {
			if g.Won {
				mapsWon++
			}
		}
		table.Append(
			s.Date,
			s.Tournament,
			s.Opponent,
			result,
			fmt.Sprintf("%d-%d", mapsWon, len(s.Games)-mapsWon),
			s.KeyPlayer,
		)
	}
	table.Render()
}

// PrintPlayerTable writes the top-player stat table.
func PrintPlayerTable(w io.Writer, bundle *domain.TeamStatsBundle) {
	table := newTable(w)
	table.Header("PLAYER", "GAMES", "K", "D", "A", "KDA", "AVG_K", "AVG_D", "NET_WORTH", "IMPACT")

	for _, p := range bundle.TopPlayers {
		table.Append(
			p.Name,
			strconv.Itoa(p.GamesPlayed),
			strconv.Itoa(p.TotalKills),
			strconv.Itoa(p.TotalDeaths),
			strconv.Itoa(p.TotalAssists),
			fmt.Sprintf("%.2f", p.AvgKDA),
			fmt.Sprintf("%.2f", p.AvgKills),
			fmt.Sprintf("%.2f", p.AvgDeaths),
			strconv.Itoa(p.AvgNetWorth),
			fmt.Sprintf("%.1f", p.ImpactScore),
		)
	}
	table.Render()
}

// PrintMatchupTable writes the side-by-side comparison table.
func PrintMatchupTable(w io.Writer, nameA, nameB string, matchup domain.Matchup) {
	table := newTable(w)
	table.Header("METRIC", nameA, nameB)
	table.Append("Win Rate", matchup.TeamA.WinRate, matchup.TeamB.WinRate)
	table.Append("Series Played", strconv.Itoa(matchup.TeamA.SeriesPlayed), strconv.Itoa(matchup.TeamB.SeriesPlayed))
	table.Append("Average KDA", fmt.Sprintf("%v", matchup.TeamA.AvgKDA), fmt.Sprintf("%v", matchup.TeamB.AvgKDA))
	table.Append("Map Win %", fmt.Sprintf("%v%%", matchup.TeamA.MapWinRate), fmt.Sprintf("%v%%", matchup.TeamB.MapWinRate))
	table.Render()
}

// PrintTournamentTable writes the discovery tournament listing.
func PrintTournamentTable(w io.Writer, tournaments []domain.Tournament) {
	table := newTable(w)
	table.Header("ID", "NAME")
	for _, t := range tournaments {
		table.Append(t.ID, t.Name)
	}
	table.Render()
}

// PrintTeamTable writes the discovery team listing.
func PrintTeamTable(w io.Writer, teams []domain.TeamIdentity) {
	table := newTable(w)
	table.Header("ID", "TEAM")
	for _, t := range teams {
		table.Append(t.ID, t.Display)
	}
	table.Render()
}
