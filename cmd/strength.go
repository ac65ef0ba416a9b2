package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/dataset"
	"github.com/tmessick/prepball/internal/model"
	"github.com/tmessick/prepball/internal/report"
	"github.com/tmessick/prepball/internal/storage"
	"github.com/tmessick/prepball/internal/strength"
)

var strengthCmd = &cobra.Command{
	Use:   "strength",
	Short: "Aggregate projected rosters into a league power table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runStrength(cfg, newLogger())
	},
}

func runStrength(cfg *config.Config, log *logrus.Logger) error {
	players, _, err := dataset.LoadProjections(dataPath(projectionsFile), cfg)
	if err != nil {
		return fmt.Errorf("load projections: %w", err)
	}
	if len(players) == 0 {
		return fmt.Errorf("projections file is empty")
	}
	season := players[0].Season

	teams := strength.New(cfg, log).Aggregate(players)

	if err := dataset.WriteStrength(dataPath(strengthFile), teams); err != nil {
		return fmt.Errorf("write strength: %w", err)
	}

	if err := archiveStrength(season, teams); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"season": season, "teams": len(teams)}).
		Info("archived power table")

	report.PrintPowerRankings(teams, "")
	return nil
}

func archiveStrength(season int, teams []model.TeamStrength) error {
	if err := ensureDBDir(); err != nil {
		return err
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.SaveTeamStrength(season, teams); err != nil {
		return fmt.Errorf("archive strength: %w", err)
	}
	return nil
}
