package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmessick/prepball/internal/config"
)

// Pipeline artifact filenames, all relative to the data directory.
const (
	historyFile     = "player_history.csv"
	scheduleFile    = "schedule.csv"
	pooledFile      = "multipliers_pooled.csv"
	eliteFile       = "multipliers_elite.csv"
	standardFile    = "multipliers_standard.csv"
	profilesFile    = "profiles.csv"
	projectionsFile = "projections.csv"
	strengthFile    = "team_strength.csv"
	gamesFile       = "simulated_games.csv"
)

var (
	cfgPath string
	dataDir string
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "prepball",
	Short: "High school baseball projection and simulation tool",
	Long: "Learn player development multipliers from multi-season box scores,\n" +
		"project next season's rosters, grade team strength, and simulate\n" +
		"schedules with Monte Carlo trials.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".prepball", "prepball.db")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config overlay")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "directory for CSV artifacts")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite archive")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(multipliersCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(strengthCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(showCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgPath)
}

func dataPath(name string) string {
	return filepath.Join(dataDir, name)
}

func ensureDBDir() error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	return nil
}
