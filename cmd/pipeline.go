package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run multipliers, profiles, project, and strength in order",
	Long: "Runs the full projection pipeline from the season history through\n" +
		"the league power table. Each stage reads the previous stage's CSV\n" +
		"artifact; a failing stage aborts the run. Simulation stays separate\n" +
		"because it needs a focus team and a schedule.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		stages := []struct {
			name string
			run  func() error
		}{
			{"multipliers", func() error { return runMultipliers(cfg, log) }},
			{"profiles", func() error { return runProfiles(cfg, log) }},
			{"project", func() error { return runProject(cfg, log) }},
			{"strength", func() error { return runStrength(cfg, log) }},
		}
		for _, stage := range stages {
			log.WithField("stage", stage.name).Info("starting stage")
			if err := stage.run(); err != nil {
				return fmt.Errorf("%s stage: %w", stage.name, err)
			}
		}
		return nil
	},
}
