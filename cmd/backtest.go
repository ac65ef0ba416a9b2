package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/backtest"
	"github.com/tmessick/prepball/internal/dataset"
	"github.com/tmessick/prepball/internal/identity"
	"github.com/tmessick/prepball/internal/report"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Score a past projection against the season that actually happened",
	Long: "Match the projections file's players against the same season's rows\n" +
		"in the history file, then report per-stat projection error and how the\n" +
		"projected power rankings compare with the observed ones.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		projected, _, err := dataset.LoadProjections(dataPath(projectionsFile), cfg)
		if err != nil {
			return fmt.Errorf("load projections: %w", err)
		}
		if len(projected) == 0 {
			return fmt.Errorf("projections file is empty")
		}
		season := projected[0].Season

		records, _, err := dataset.LoadPlayers(dataPath(historyFile), cfg, log)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}
		records = identity.Resolve(records, log)

		actual := identity.SeasonSlice(records, season)
		if len(actual) == 0 {
			return fmt.Errorf("no observed records for season %d, nothing to score against", season)
		}

		rep := backtest.Evaluate(cfg, log, projected, actual)
		report.PrintBacktest(rep)
		return nil
	},
}
