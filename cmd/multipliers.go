package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/dataset"
	"github.com/tmessick/prepball/internal/identity"
	"github.com/tmessick/prepball/internal/model"
	"github.com/tmessick/prepball/internal/multiplier"
)

var multipliersCmd = &cobra.Command{
	Use:   "multipliers",
	Short: "Learn development multiplier tables from the season history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runMultipliers(cfg, newLogger())
	},
}

func runMultipliers(cfg *config.Config, log *logrus.Logger) error {
	records, columns, err := dataset.LoadPlayers(dataPath(historyFile), cfg, log)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	records = identity.Resolve(records, log)

	pooled, elite, standard := multiplier.New(cfg, log).Build(records, columns)

	outputs := []struct {
		file  string
		table *model.MultiplierTable
	}{
		{pooledFile, pooled},
		{eliteFile, elite},
		{standardFile, standard},
	}
	for _, out := range outputs {
		if err := dataset.WriteMultipliers(dataPath(out.file), out.table); err != nil {
			return fmt.Errorf("write %s multipliers: %w", out.table.Tier, err)
		}
	}

	log.WithFields(logrus.Fields{
		"pooled":   len(pooled.Transitions),
		"elite":    len(elite.Transitions),
		"standard": len(standard.Transitions),
	}).Info("wrote multiplier tables")
	return nil
}
