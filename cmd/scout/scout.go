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
	scoutMarkdownOut string
	scoutPDFOut      string
	scoutNarrative   bool
)

var scoutCmd = &cobra.Command{
	Use:   "scout <team-id> <team-name>",
	Short: "Build a scouting report for one team",
	Args:  cobra.ExactArgs(2),
	RunE:  runScout,
}

func init() {
	scoutCmd.Flags().StringVar(&scoutMarkdownOut, "md", "", "write a Markdown dossier to this path (or a generated name for '-')")
	scoutCmd.Flags().StringVar(&scoutPDFOut, "pdf", "", "write a PDF dossier to this path (or a generated name for '-')")
	scoutCmd.Flags().BoolVar(&scoutNarrative, "narrative", false, "include AI narrative sections (requires ANTHROPIC_API_KEY)")
}

func runScout(cmd *cobra.Command, args []string) error {
	teamID, teamName := args[0], args[1]

	a, err := newApp()
	if err != nil {
		return err
	}

	refs := a.series.RecentSeries(cmd.Context(), teamID, flagTournament, flagLimit)
	if len(refs) == 0 {
		return fmt.Errorf("no recent series found for %q", teamName)
	}

	bundle := a.aggregator.CollectTeamData(cmd.Context(), teamName, refs)
	if len(bundle.Series) == 0 {
		return fmt.Errorf("insufficient data: series metadata exists for %q but no state could be attributed", teamName)
	}

	brief := service.BriefStats(bundle)
	wins := bundle.SeriesWins()
	fmt.Fprintf(os.Stdout, "\n%s  |  Win rate: %s  |  Record: %dW-%dL  |  Map win: %v%%  |  Maps: %d\n\n",
		teamName, brief.WinRate, wins, bundle.TotalSeries-wins, bundle.MapWinRate, bundle.TotalMaps)

	report.PrintSeriesTable(os.Stdout, bundle)
	fmt.Fprintln(os.Stdout)
	report.PrintPlayerTable(os.Stdout, bundle)

	var n *domain.Narrative
	if scoutNarrative || scoutMarkdownOut != "" || scoutPDFOut != "" {
		if scoutNarrative && !a.narrative.Enabled() {
			fmt.Fprintln(os.Stderr, "narrative requested but ANTHROPIC_API_KEY is not set; using fallback text")
		}
		n = a.narrative.ScoutingReport(cmd.Context(), teamName, bundle)
	}
	if scoutNarrative {
		fmt.Fprintf(os.Stdout, "\nWinning pattern: %s\nCounter strategy: %s\n", n.WinningTrends, n.CounterStrategy)
	}

	if scoutMarkdownOut != "" {
		path := exportPath(scoutMarkdownOut, teamName, "md")
		if err := os.WriteFile(path, []byte(report.BuildDossier(teamName, bundle, n)), 0o644); err != nil {
			return fmt.Errorf("write markdown dossier: %w", err)
		}
		fmt.Fprintf(os.Stdout, "\nmarkdown dossier written to %s\n", path)
	}

	if scoutPDFOut != "" {
		pdfBytes, err := report.BuildDossierPDF(teamName, bundle, n)
		if err != nil {
			return fmt.Errorf("render pdf dossier: %w", err)
		}
		path := exportPath(scoutPDFOut, teamName, "pdf")
		if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
			return fmt.Errorf("write pdf dossier: %w", err)
		}
		fmt.Fprintf(os.Stdout, "pdf dossier written to %s\n", path)
	}

	return nil
}

// exportPath resolves "-" to a generated unique filename.
func exportPath(flagValue, teamName, ext string) string {
	if flagValue != "-" {
		return flagValue
	}
	return fmt.Sprintf("dossier-%s-%s.%s", sanitize(teamName), report.NewReportID(), ext)
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
