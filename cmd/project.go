package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/dataset"
	"github.com/tmessick/prepball/internal/identity"
	"github.com/tmessick/prepball/internal/model"
	"github.com/tmessick/prepball/internal/projector"
	"github.com/tmessick/prepball/internal/report"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project next season's rosters from the latest observed season",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runProject(cfg, newLogger())
	},
}

func runProject(cfg *config.Config, log *logrus.Logger) error {
	records, columns, err := dataset.LoadPlayers(dataPath(historyFile), cfg, log)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	records = identity.Resolve(records, log)

	base := identity.SeasonSlice(records, identity.LatestSeason(records))
	if len(base) == 0 {
		return fmt.Errorf("no records in the latest season")
	}

	pooled, err := dataset.LoadMultipliers(dataPath(pooledFile), model.TierPooled)
	if err != nil {
		return fmt.Errorf("load pooled multipliers: %w", err)
	}
	elite, err := dataset.LoadMultipliers(dataPath(eliteFile), model.TierElite)
	if err != nil {
		return fmt.Errorf("load elite multipliers: %w", err)
	}
	standard, err := dataset.LoadMultipliers(dataPath(standardFile), model.TierStandard)
	if err != nil {
		return fmt.Errorf("load standard multipliers: %w", err)
	}
	profiles, _, err := dataset.LoadProfiles(dataPath(profilesFile), cfg)
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	proj := projector.New(cfg, log, pooled, elite, standard, profiles)
	projected, diag := proj.Project(base)

	if err := dataset.WriteProjections(dataPath(projectionsFile), projected, columns, cfg); err != nil {
		return fmt.Errorf("write projections: %w", err)
	}

	log.WithFields(logrus.Fields{
		"players":   len(projected),
		"regressed": diag.Regressed,
		"capped":    diag.Capped,
		"backfill":  diag.BackfillSlots,
	}).Info("wrote projected rosters")
	report.PrintProjectionSummary(os.Stdout, projected)
	return nil
}
