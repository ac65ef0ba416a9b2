package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/dataset"
	"github.com/tmessick/prepball/internal/identity"
	"github.com/tmessick/prepball/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Build generic replacement-level profiles from historical sophomores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runProfiles(cfg, newLogger())
	},
}

func runProfiles(cfg *config.Config, log *logrus.Logger) error {
	records, columns, err := dataset.LoadPlayers(dataPath(historyFile), cfg, log)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	records = identity.Resolve(records, log)

	profiles := profile.Generate(records, columns, cfg, log)
	if len(profiles) == 0 {
		return fmt.Errorf("no generic profiles could be built from the history")
	}

	if err := dataset.WriteProfiles(dataPath(profilesFile), profiles, columns, cfg); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	log.WithField("profiles", len(profiles)).Info("wrote generic profiles")
	return nil
}
