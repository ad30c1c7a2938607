package main

import (
	"fmt"
	"os"

	"grid-scout/internal/domain"
	"grid-scout/internal/report"
	"grid-scout/internal/service"

	"github.com/spf13/cobra"
)

var (
	compareMarkdownOut string
	compareNarrative   bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <team-a-id> <team-a-name> <team-b-id> <team-b-name>",
	Short: "Compare two teams side by side",
	Args:  cobra.ExactArgs(4),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareMarkdownOut, "md", "", "write a Markdown comparison to this path (or a generated name for '-')")
	compareCmd.Flags().BoolVar(&compareNarrative, "narrative", false, "include the AI matchup verdict (requires ANTHROPIC_API_KEY)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	idA, nameA, idB, nameB := args[0], args[1], args[2], args[3]

	a, err := newApp()
	if err != nil {
		return err
	}

	bundleA := a.aggregator.CollectTeamData(cmd.Context(), nameA, a.series.RecentSeries(cmd.Context(), idA, flagTournament, flagLimit))
	bundleB := a.aggregator.CollectTeamData(cmd.Context(), nameB, a.series.RecentSeries(cmd.Context(), idB, flagTournament, flagLimit))

	matchup := service.Compare(bundleA, bundleB)
	report.PrintMatchupTable(os.Stdout, nameA, nameB, matchup)

	var narrative *domain.ComparisonNarrative
	if compareNarrative || compareMarkdownOut != "" {
		narrative = a.narrative.ComparisonReport(cmd.Context(), nameA, bundleA, nameB, bundleB)
	}
	if compareNarrative {
		fmt.Fprintf(os.Stdout, "\nVerdict: %s\n", narrative.Verdict)
	}

	if compareMarkdownOut != "" {
		path := compareMarkdownOut
		if path == "-" {
			path = fmt.Sprintf("matchup-%s-vs-%s-%s.md", sanitize(nameA), sanitize(nameB), report.NewReportID())
		}
		md := report.BuildComparison(nameA, nameB, matchup, narrative, bundleA.TopPlayers, bundleB.TopPlayers)
		if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write markdown comparison: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\nmarkdown comparison written to %s\n", path)
	}

	return nil
}
