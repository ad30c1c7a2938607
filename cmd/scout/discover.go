package main

import (
	"fmt"
	"os"

	"grid-scout/internal/constants"
	"grid-scout/internal/report"

	"github.com/spf13/cobra"
)

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List recent tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		tournaments := a.discovery.RecentTournaments(cmd.Context(), constants.TournamentScanLimit)
		if len(tournaments) == 0 {
			return fmt.Errorf("no tournaments returned; check GRID_API_KEY and connectivity")
		}
		report.PrintTournamentTable(os.Stdout, tournaments)
		return nil
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams <tournament-id> [tournament-id...]",
	Short: "List teams competing in the given tournaments",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		teams := a.discovery.DiscoverTeams(cmd.Context(), args)
		if len(teams) == 0 {
			return fmt.Errorf("no teams found for the given tournaments")
		}
		report.PrintTeamTable(os.Stdout, teams)
		return nil
	},
}
