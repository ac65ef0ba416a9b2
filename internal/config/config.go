// Package config defines the single immutable configuration object for the
// projection pipeline: the statistic schema, the elite-program roster, and
// every threshold, cap, ladder, and weight the stages consume. It is built
// once at process start and passed explicitly into each component.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Stat categories. The schema is data, not code: every component iterates
// the ordered descriptor list, so adding a statistic requires only a new
// descriptor (plus a cap if it should be bounded).
const (
	CategoryBatting     = "Batting"
	CategoryPitching    = "Pitching"
	CategoryBaserunning = "Baserunning"
	CategoryFielding    = "Fielding"
)

// StatDef describes one statistic column.
type StatDef struct {
	Code     string `mapstructure:"code"`
	Category string `mapstructure:"category"`
	Rare     bool   `mapstructure:"rare"`    // rare counting event: ratio uses +1/+1 smoothing
	Innings  bool   `mapstructure:"innings"` // persisted in fractional-thirds notation
}

// MultiplierConfig gates the development multiplier engine.
type MultiplierConfig struct {
	MinSample     int     `mapstructure:"min_sample"`      // below this, multiplier defaults to 1.0
	PitchingMinIP float64 `mapstructure:"pitching_min_ip"` // prior-season IP gate for pitching stats
	BattingMinPA  float64 `mapstructure:"batting_min_pa"`  // prior-season PA gate for everything else
}

// RoleConfig derives Is_Batter / Is_Pitcher from volume.
type RoleConfig struct {
	BatterABMin  float64 `mapstructure:"batter_ab_min"`
	PitcherIPMin float64 `mapstructure:"pitcher_ip_min"`
}

// ProjectionConfig controls the roster projector.
type ProjectionConfig struct {
	SurvivorshipAdjustment float64 `mapstructure:"survivorship_adjustment"`

	HighVolumePA       float64 `mapstructure:"high_volume_pa"`
	HighVolumeIP       float64 `mapstructure:"high_volume_ip"`
	RegressionStrength float64 `mapstructure:"regression_strength"`

	Caps map[string]float64 `mapstructure:"caps"`

	MinBatters  int `mapstructure:"min_batters"`
	MinPitchers int `mapstructure:"min_pitchers"`

	StandardLadder []float64 `mapstructure:"standard_ladder"`
	EliteLadder    []float64 `mapstructure:"elite_ladder"`
}

// ProfileConfig controls generic-profile generation.
type ProfileConfig struct {
	Quantiles    []float64 `mapstructure:"quantiles"`
	BatterMinPA  float64   `mapstructure:"batter_min_pa"`
	PitcherMinIP float64   `mapstructure:"pitcher_min_ip"`
}

// StrengthConfig controls the team strength aggregator.
type StrengthConfig struct {
	TopBatters  int `mapstructure:"top_batters"`
	TopPitchers int `mapstructure:"top_pitchers"`

	MinRCScore       float64 `mapstructure:"min_rc_score"`
	MinPitchingScore float64 `mapstructure:"min_pitching_score"`

	OrderWeights []float64 `mapstructure:"order_weights"` // batting-order emphasis, top slots first
	AceWeights   []float64 `mapstructure:"ace_weights"`   // rotation emphasis, ace first

	SeniorWeight        float64 `mapstructure:"senior_weight"`
	JuniorWeight        float64 `mapstructure:"junior_weight"`
	UnderclassWeight    float64 `mapstructure:"underclass_weight"`
	SyntheticWeight     float64 `mapstructure:"synthetic_weight"`
	EliteBackfillWeight float64 `mapstructure:"elite_backfill_weight"`
}

// SimConfig controls the Monte Carlo game simulator.
type SimConfig struct {
	BaseRuns      float64 `mapstructure:"base_runs"`
	HomeAdvantage float64 `mapstructure:"home_advantage"`
	Dispersion    float64 `mapstructure:"dispersion"`
	Trials        int     `mapstructure:"trials"`

	IndexFloor      float64 `mapstructure:"index_floor"`
	GenericOffense  float64 `mapstructure:"generic_offense"`
	GenericPitching float64 `mapstructure:"generic_pitching"`
}

// Config is the full pipeline configuration. Treat as read-only after Load.
type Config struct {
	Schema     []StatDef `mapstructure:"schema"`
	EliteTeams []string  `mapstructure:"elite_teams"`

	Multipliers MultiplierConfig `mapstructure:"multipliers"`
	Roles       RoleConfig       `mapstructure:"roles"`
	Projection  ProjectionConfig `mapstructure:"projection"`
	Profiles    ProfileConfig    `mapstructure:"profiles"`
	Strength    StrengthConfig   `mapstructure:"strength"`
	Simulation  SimConfig        `mapstructure:"simulation"`

	elite map[string]struct{}
}

// Default returns the compiled-in configuration: the league's box-score
// schema and the calibrated constants.
func Default() *Config {
	cfg := &Config{
		Schema: []StatDef{
			// Batting
			{Code: "PA", Category: CategoryBatting},
			{Code: "AB", Category: CategoryBatting},
			{Code: "H", Category: CategoryBatting},
			{Code: "2B", Category: CategoryBatting},
			{Code: "3B", Category: CategoryBatting, Rare: true},
			{Code: "HR", Category: CategoryBatting, Rare: true},
			{Code: "RBI", Category: CategoryBatting},
			{Code: "R", Category: CategoryBatting},
			{Code: "SF", Category: CategoryBatting},
			{Code: "BB", Category: CategoryBatting},
			{Code: "K", Category: CategoryBatting},
			{Code: "HBP", Category: CategoryBatting},
			// Pitching
			{Code: "APP", Category: CategoryPitching},
			{Code: "IP", Category: CategoryPitching, Innings: true},
			{Code: "BF", Category: CategoryPitching},
			{Code: "K_P", Category: CategoryPitching},
			{Code: "ER", Category: CategoryPitching},
			{Code: "H_P", Category: CategoryPitching},
			{Code: "2B_P", Category: CategoryPitching},
			{Code: "3B_P", Category: CategoryPitching, Rare: true},
			{Code: "HR_P", Category: CategoryPitching, Rare: true},
			{Code: "BB_P", Category: CategoryPitching},
			// Baserunning
			{Code: "SB", Category: CategoryBaserunning},
			// Fielding
			{Code: "FP", Category: CategoryFielding},
			{Code: "TC", Category: CategoryFielding},
			{Code: "PO", Category: CategoryFielding},
			{Code: "A", Category: CategoryFielding},
			{Code: "E", Category: CategoryFielding},
			{Code: "DP", Category: CategoryFielding},
		},
		Multipliers: MultiplierConfig{
			MinSample:     3,
			PitchingMinIP: 5,
			BattingMinPA:  10,
		},
		Roles: RoleConfig{
			BatterABMin:  10,
			PitcherIPMin: 5,
		},
		Projection: ProjectionConfig{
			SurvivorshipAdjustment: 0.95,
			HighVolumePA:           80,
			HighVolumeIP:           30,
			RegressionStrength:     0.5,
			Caps: map[string]float64{
				"H": 75, "PA": 200, "AB": 180, "RBI": 60, "R": 60,
				"HR": 15, "2B": 25, "3B": 10, "BB": 50, "K": 70, "SB": 40,
				"IP": 70, "APP": 25, "K_P": 100, "BB_P": 40, "ER": 50, "H_P": 80,
			},
			MinBatters:     10,
			MinPitchers:    6,
			StandardLadder: []float64{0.3, 0.1},
			EliteLadder:    []float64{0.5, 0.2, 0.1},
		},
		Profiles: ProfileConfig{
			Quantiles:    []float64{0.1, 0.2, 0.3, 0.4, 0.5},
			BatterMinPA:  10,
			PitcherMinIP: 3,
		},
		Strength: StrengthConfig{
			TopBatters:          10,
			TopPitchers:         6,
			MinRCScore:          0.1,
			MinPitchingScore:    0.1,
			OrderWeights:        []float64{1.2, 1.15, 1.1},
			AceWeights:          []float64{1.5, 1.25},
			SeniorWeight:        1.10,
			JuniorWeight:        1.00,
			UnderclassWeight:    0.90,
			SyntheticWeight:     0.75,
			EliteBackfillWeight: 0.85,
		},
		Simulation: SimConfig{
			BaseRuns:        6.0,
			HomeAdvantage:   1.10,
			Dispersion:      1.3,
			Trials:          1000,
			IndexFloor:      0.1,
			GenericOffense:  0.8,
			GenericPitching: 0.8,
		},
	}
	cfg.index()
	return cfg
}

// Load builds the configuration, overlaying a YAML file onto the defaults
// when path is non-empty.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.index()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) index() {
	c.elite = make(map[string]struct{}, len(c.EliteTeams))
	for _, t := range c.EliteTeams {
		c.elite[normalizeTeam(t)] = struct{}{}
	}
}

func (c *Config) validate() error {
	if c.Multipliers.MinSample < 1 {
		return fmt.Errorf("multipliers.min_sample must be >= 1, got %d", c.Multipliers.MinSample)
	}
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("simulation.trials must be >= 1, got %d", c.Simulation.Trials)
	}
	if len(c.Projection.StandardLadder) == 0 || len(c.Projection.EliteLadder) == 0 {
		return fmt.Errorf("backfill ladders must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Schema))
	for _, d := range c.Schema {
		if d.Code == "" {
			return fmt.Errorf("schema entry with empty code")
		}
		if _, dup := seen[d.Code]; dup {
			return fmt.Errorf("duplicate schema code %q", d.Code)
		}
		seen[d.Code] = struct{}{}
	}
	return nil
}

func normalizeTeam(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

// SetEliteTeams replaces the elite-program roster and rebuilds its index.
func (c *Config) SetEliteTeams(teams []string) {
	c.EliteTeams = teams
	c.index()
}

// IsElite reports whether a team belongs to the configured elite-program roster.
// Matching is case-insensitive and whitespace-trimmed, like identity keys.
func (c *Config) IsElite(team string) bool {
	_, ok := c.elite[normalizeTeam(team)]
	return ok
}

// Stat returns the schema descriptor for a code.
func (c *Config) Stat(code string) (StatDef, bool) {
	for _, d := range c.Schema {
		if d.Code == code {
			return d, true
		}
	}
	return StatDef{}, false
}

// VolumeGate returns the prior-season volume column and threshold that gate
// a statistic's multiplier sample: pitching stats key off IP, everything
// else off PA.
func (c *Config) VolumeGate(def StatDef) (code string, min float64) {
	if def.Category == CategoryPitching {
		return "IP", c.Multipliers.PitchingMinIP
	}
	return "PA", c.Multipliers.BattingMinPA
}
