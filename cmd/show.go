package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/report"
	"github.com/tmessick/prepball/internal/storage"
)

var (
	showSeason int
	showTeam   string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Read archived results from the SQLite store",
}

var showStrengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Show an archived power table",
	Args:  cobra.NoArgs,
	RunE:  runShowStrength,
}

var showGamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Show an archived schedule simulation",
	Args:  cobra.NoArgs,
	RunE:  runShowGames,
}

func init() {
	showCmd.PersistentFlags().IntVar(&showSeason, "season", 0, "season to show (required)")
	showCmd.MarkPersistentFlagRequired("season")
	showGamesCmd.Flags().StringVar(&showTeam, "team", "", "focus team (required)")
	showGamesCmd.MarkFlagRequired("team")

	showCmd.AddCommand(showStrengthCmd)
	showCmd.AddCommand(showGamesCmd)
}

func runShowStrength(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	teams, err := db.ListTeamStrength(showSeason)
	if err != nil {
		return fmt.Errorf("list strength: %w", err)
	}
	if len(teams) == 0 {
		return fmt.Errorf("no archived power table for season %d", showSeason)
	}
	report.PrintPowerRankings(teams, "")
	return nil
}

func runShowGames(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	games, summary, err := db.GetGameResults(showSeason, showTeam)
	if err != nil {
		return fmt.Errorf("get game results: %w", err)
	}
	if len(games) == 0 {
		seasons, teams, lerr := db.ListSimulatedSeasons()
		if lerr == nil && len(seasons) > 0 {
			fmt.Fprintln(os.Stderr, "archived simulations:")
			for i := range seasons {
				fmt.Fprintf(os.Stderr, "  %d  %s\n", seasons[i], teams[i])
			}
		}
		return fmt.Errorf("no archived simulation for %q in season %d", showTeam, showSeason)
	}
	report.PrintSchedule(games, summary, showTeam)
	return nil
}
