package service

import (
	"fmt"

	"grid-scout/internal/domain"
)

// BriefStats reduces one bundle to the four scalars shown side by side in a
// matchup. Pure; empty bundles produce the documented zero values.
func BriefStats(bundle *domain.TeamStatsBundle) domain.Comparison {
	played := len(bundle.Series)

	winRate := "0%"
	if played > 0 {
		winRate = fmt.Sprintf("%.1f%%", float64(bundle.SeriesWins())/float64(played)*100)
	}

	avgKDA := 0.0
	if len(bundle.TopPlayers) > 0 {
		sum := 0.0
		for _, p := range bundle.TopPlayers {
			sum += p.AvgKDA
		}
		avgKDA = round1(sum / float64(len(bundle.TopPlayers)))
	}

	return domain.Comparison{
		WinRate:      winRate,
		SeriesPlayed: played,
		AvgKDA:       avgKDA,
		MapWinRate:   bundle.MapWinRate,
	}
}

// Compare aligns two independently aggregated bundles for a matchup view.
func Compare(a, b *domain.TeamStatsBundle) domain.Matchup {
	return domain.Matchup{TeamA: BriefStats(a), TeamB: BriefStats(b)}
}
