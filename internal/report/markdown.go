// Package report assembles the aggregation output into shareable documents:
// Markdown dossiers, PDF exports, and terminal tables.
package report

import (
	"fmt"
	"strings"

	"grid-scout/internal/domain"
	"grid-scout/internal/service"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewReportID returns a short unique id used to name exported documents.
func NewReportID() string {
	id, err := gonanoid.New()
	if err != nil {
		return "report"
	}
	return id
}

// BuildDossier renders the single-team scouting dossier as Markdown.
func BuildDossier(teamName string, bundle *domain.TeamStatsBundle, narrative *domain.Narrative) string {
	brief := service.BriefStats(bundle)
	wins := bundle.SeriesWins()
	starImpact := 0.0
	if len(bundle.TopPlayers) > 0 {
		starImpact = bundle.TopPlayers[0].ImpactScore
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Strategic Dossier: %s\n\n", strings.ToUpper(teamName))

	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "- **Win Rate:** %s\n", brief.WinRate)
	fmt.Fprintf(&b, "- **Record:** %dW - %dL\n", wins, bundle.TotalSeries-wins)
	fmt.Fprintf(&b, "- **Combat Rating:** %v\n", brief.AvgKDA)
	fmt.Fprintf(&b, "- **Map Win %%:** %v%%\n", bundle.MapWinRate)
	fmt.Fprintf(&b, "- **Star Impact:** %v\n", starImpact)
	if narrative != nil {
		fmt.Fprintf(&b, "- **Winning Pattern:** %s\n", narrative.WinningTrends)
		fmt.Fprintf(&b, "- **Critical Counter Plan:** %s\n", narrative.CounterStrategy)
	}
	b.WriteString("\n")

	b.WriteString("## Recent Series\n")
	b.WriteString("| Date | Tournament | Opponent | Result | Key Player |\n")
	b.WriteString("|------|------------|----------|--------|------------|\n")
	for _, s := range bundle.Series {
		result := "L"
		if s.SeriesWin {
			result = "W"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", s.Date, s.Tournament, s.Opponent, result, s.KeyPlayer)
	}
	b.WriteString("\n")

	b.WriteString("## Roster Intelligence\n")
	notes := make(map[string]domain.RosterNote)
	if narrative != nil {
		for _, n := range narrative.Roster {
			notes[strings.ToLower(strings.TrimSpace(n.Name))] = n
		}
	}
	for _, p := range bundle.TopPlayers {
		note := notes[strings.ToLower(strings.TrimSpace(p.Name))]
		category := note.Category
		if category == "" {
			category = "Combatant"
		}
		fmt.Fprintf(&b, "### %s (%s)\n", p.Name, category)
		fmt.Fprintf(&b, "- **Avg KDA:** %v\n", p.AvgKDA)
		fmt.Fprintf(&b, "- **Impact Score:** %v\n", p.ImpactScore)
		fmt.Fprintf(&b, "- **Strength:** %s\n", orNA(note.Strength))
		fmt.Fprintf(&b, "- **Weakness:** %s\n\n", orNA(note.Weakness))
	}

	if narrative != nil {
		b.WriteString("## Strategic Playbook\n")
		fmt.Fprintf(&b, "### Vulnerability Report\n%s\n\n", narrative.Playbook.Vulnerability)
		fmt.Fprintf(&b, "### Killer Strategy\n%s\n\n", narrative.Playbook.KillerStrategy)
		fmt.Fprintf(&b, "### Threat Assessment\n%s\n\n", narrative.Playbook.RosterThreats)
		fmt.Fprintf(&b, "### Operation Timeline\n%s\n", narrative.Playbook.ExecutionPlan)
	}

	return b.String()
}

// BuildComparison renders the two-team matchup as Markdown.
func BuildComparison(nameA, nameB string, matchup domain.Matchup, narrative *domain.ComparisonNarrative, topA, topB []domain.PlayerAggregate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Matchup Analysis: %s vs %s\n\n", nameA, nameB)

	b.WriteString("## Side-by-Side\n")
	fmt.Fprintf(&b, "| Metric | %s | %s |\n", nameA, nameB)
	b.WriteString("|--------|------|------|\n")
	fmt.Fprintf(&b, "| Win Rate | %s | %s |\n", matchup.TeamA.WinRate, matchup.TeamB.WinRate)
	fmt.Fprintf(&b, "| Series Played | %d | %d |\n", matchup.TeamA.SeriesPlayed, matchup.TeamB.SeriesPlayed)
	fmt.Fprintf(&b, "| Average KDA | %v | %v |\n", matchup.TeamA.AvgKDA, matchup.TeamB.AvgKDA)
	fmt.Fprintf(&b, "| Map Win %% | %v%% | %v%% |\n\n", matchup.TeamA.MapWinRate, matchup.TeamB.MapWinRate)

	b.WriteString("## Top Profiles\n")
	fmt.Fprintf(&b, "| # | %s | KDA | %s | KDA |\n", nameA, nameB)
	b.WriteString("|---|------|-----|------|-----|\n")
	rows := len(topA)
	if len(topB) > rows {
		rows = len(topB)
	}
	if rows > 3 {
		rows = 3
	}
	for i := 0; i < rows; i++ {
		na, ka, nb, kb := "-", "-", "-", "-"
		if i < len(topA) {
			na, ka = topA[i].Name, fmt.Sprintf("%v", topA[i].AvgKDA)
		}
		if i < len(topB) {
			nb, kb = topB[i].Name, fmt.Sprintf("%v", topB[i].AvgKDA)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, na, ka, nb, kb)
	}
	b.WriteString("\n")

	if narrative != nil {
		fmt.Fprintf(&b, "## Verdict\n%s\n\n", narrative.Verdict)
		fmt.Fprintf(&b, "## Player War\n%s\n\n", narrative.PlayerWar)
		fmt.Fprintf(&b, "## Tactical Gap\n%s\n\n", narrative.TacticalGap)
		fmt.Fprintf(&b, "## Priority Targets\n%s\n\n", narrative.PriorityTargets)
		fmt.Fprintf(&b, "## Kill Strategy\n%s\n", narrative.KillStrategy)
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
