package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/dataset"
	"github.com/tmessick/prepball/internal/report"
	"github.com/tmessick/prepball/internal/simulator"
	"github.com/tmessick/prepball/internal/storage"
)

var (
	simTeam     string
	simSchedule string
	simSeason   int
	simSeed     uint64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a team's schedule against the projected league",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runSimulate(cfg, newLogger())
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simTeam, "team", "", "focus team name (required)")
	simulateCmd.Flags().StringVar(&simSchedule, "schedule", "", "schedule CSV (default <data-dir>/schedule.csv)")
	simulateCmd.Flags().IntVar(&simSeason, "season", 0, "season label for the archive (default from projections)")
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "random seed (0 = time-based)")
	simulateCmd.MarkFlagRequired("team")
}

func runSimulate(cfg *config.Config, log *logrus.Logger) error {
	teams, err := dataset.LoadStrength(dataPath(strengthFile))
	if err != nil {
		return fmt.Errorf("load strength: %w", err)
	}

	schedulePath := simSchedule
	if schedulePath == "" {
		schedulePath = dataPath(scheduleFile)
	}
	schedule, err := dataset.LoadSchedule(schedulePath)
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	season := simSeason
	if season == 0 {
		if players, _, err := dataset.LoadProjections(dataPath(projectionsFile), cfg); err == nil && len(players) > 0 {
			season = players[0].Season
		}
	}

	seed := simSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sim := simulator.New(cfg, log, teams, seed)
	results, summary := sim.SimulateSeason(simTeam, schedule)
	if len(results) == 0 {
		return fmt.Errorf("schedule has no games for %q", simTeam)
	}

	if err := dataset.WriteGameResults(dataPath(gamesFile), results); err != nil {
		return fmt.Errorf("write game results: %w", err)
	}

	if season != 0 {
		if err := ensureDBDir(); err != nil {
			return err
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		if err := db.SaveGameResults(season, simTeam, results, summary); err != nil {
			return fmt.Errorf("archive game results: %w", err)
		}
	}

	report.PrintSchedule(results, summary, simTeam)
	return nil
}
