package model

import "strings"

// Class is a player's academic class label.
type Class string

const (
	ClassFreshman  Class = "Freshman"
	ClassSophomore Class = "Sophomore"
	ClassJunior    Class = "Junior"
	ClassSenior    Class = "Senior"
	ClassUnknown   Class = "Unknown"
)

// ParseClass normalizes a raw class label. Anything unrecognized maps to Unknown.
func ParseClass(s string) Class {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freshman", "fr", "fr.":
		return ClassFreshman
	case "sophomore", "so", "so.", "soph":
		return ClassSophomore
	case "junior", "jr", "jr.":
		return ClassJunior
	case "senior", "sr", "sr.":
		return ClassSenior
	default:
		return ClassUnknown
	}
}

// Next returns the class a player advances to the following season.
// Seniors graduate, so Senior (and Unknown) map to Unknown.
func (c Class) Next() Class {
	switch c {
	case ClassFreshman:
		return ClassSophomore
	case ClassSophomore:
		return ClassJunior
	case ClassJunior:
		return ClassSenior
	default:
		return ClassUnknown
	}
}

// IdentityKey is the stable composite key replacing the source system's
// volatile per-season athlete id: normalized (name, team).
// Two distinct players sharing the same normalized name on the same team
// are merged; that is a documented limitation, not corrected here.
type IdentityKey struct {
	Name string
	Team string
}

// MakeIdentityKey builds the normalized key: lower-cased, whitespace-trimmed.
func MakeIdentityKey(name, team string) IdentityKey {
	return IdentityKey{
		Name: strings.ToLower(strings.TrimSpace(name)),
		Team: strings.ToLower(strings.TrimSpace(team)),
	}
}

// Less orders keys by team then name, giving a deterministic tie-break
// wherever record order would otherwise be implementation-defined.
func (k IdentityKey) Less(o IdentityKey) bool {
	if k.Team != o.Team {
		return k.Team < o.Team
	}
	return k.Name < o.Name
}

// PlayerSeasonRecord is one player's stat line for one season.
// Stats holds only the columns actually present in the source file;
// absence and zero are distinct.
type PlayerSeasonRecord struct {
	Name   string
	Team   string
	Season int
	Class  Class
	Tenure int // varsity tenure, assigned by the identity resolver; 0 = unassigned
	Elite  bool
	Stats  map[string]float64
}

// Key returns the record's identity key.
func (r *PlayerSeasonRecord) Key() IdentityKey {
	return MakeIdentityKey(r.Name, r.Team)
}

// Stat returns a stat value and whether the column was present.
func (r *PlayerSeasonRecord) Stat(code string) (float64, bool) {
	v, ok := r.Stats[code]
	return v, ok
}

// Val returns a stat value, treating a missing column as zero.
func (r *PlayerSeasonRecord) Val(code string) float64 {
	return r.Stats[code]
}

// SetStat stores a stat value, allocating the map on first use.
func (r *PlayerSeasonRecord) SetStat(code string, v float64) {
	if r.Stats == nil {
		r.Stats = make(map[string]float64)
	}
	r.Stats[code] = v
}

// Role distinguishes the two synthetic-profile populations.
type Role string

const (
	RoleBatter  Role = "Batter"
	RolePitcher Role = "Pitcher"
)

// GenericProfile is a synthetic replacement-level stat line representing one
// percentile tier of incoming varsity talent, built from historical sophomores.
type GenericProfile struct {
	Name   string
	Role   Role
	Tier   float64 // percentile tier, 0.1 .. 0.5
	Class  Class
	Tenure int
	Stats  map[string]float64
}

// ProjectedPlayerRecord is a PlayerSeasonRecord shifted one season forward,
// annotated with how the projection was produced. Scores and ranks are
// filled by the strength aggregator.
type ProjectedPlayerRecord struct {
	PlayerSeasonRecord

	Method        string  // provenance of the multiplier lookup or backfill
	Synthetic     bool    // true for backfilled generic players
	BackfillElite bool    // synthetic slot drawn from the elite ladder
	TierLabel     float64 // percentile tier for synthetic slots, 0 otherwise

	IsBatter  bool
	IsPitcher bool

	RCScore       float64
	PitchingScore float64

	OffensiveRank     int
	OffensiveRankTeam int
	PitchingRank      int
	PitchingRankTeam  int
}

// Projection provenance labels.
const (
	MethodClass       = "Class"
	MethodClassTenure = "Class+Tenure"
	MethodTenure      = "Tenure (Pooled)"
	MethodDefault     = "Default (1.0)"
	MethodBackfill    = "Roster Backfill"
)

// Tier identifies which cohort a multiplier table was trained on.
type Tier string

const (
	TierPooled   Tier = "Pooled"
	TierElite    Tier = "Elite"
	TierStandard Tier = "Standard"
)

// TransitionKind categorizes how a transition cohort is keyed.
type TransitionKind string

const (
	KindClass       TransitionKind = "Class"
	KindTenure      TransitionKind = "Tenure"
	KindClassTenure TransitionKind = "Class_Tenure"
)

// StatMultiplier is the learned growth ratio for one statistic within one
// transition cohort, with its qualifying sample size and the ratio
// distribution's standard deviation as a volatility diagnostic.
type StatMultiplier struct {
	Ratio      float64
	SampleSize int
	StdDev     float64
}

// Transition holds the multipliers for one start-state -> end-state cohort.
type Transition struct {
	Name          string
	Kind          TransitionKind
	CohortSize    int     // paired rows matching the transition, before stat filters
	AvgVolatility float64 // mean of per-stat ratio std-devs
	Stats         map[string]StatMultiplier
}

// MultiplierTable maps transition name -> learned multipliers for one tier.
type MultiplierTable struct {
	Tier        Tier
	Transitions map[string]Transition
}

// Lookup returns the transition entry for a name, if present.
func (t *MultiplierTable) Lookup(name string) (Transition, bool) {
	tr, ok := t.Transitions[name]
	return tr, ok
}

// Empty reports whether the table carries no transitions at all.
func (t *MultiplierTable) Empty() bool {
	return t == nil || len(t.Transitions) == 0
}

// TeamStrength is the per-team composite produced by the aggregator.
type TeamStrength struct {
	Team string

	OffenseRaw  float64 // weighted sum of the top batters' RC scores
	PitchingRaw float64 // weighted sum of the top pitchers' dominance scores

	OffenseIndex  float64 // 0-100, relative to league max
	PitchingIndex float64
	PowerIndex    float64 // mean of the two indices

	BattersCounted  int
	PitchersCounted int
	TopHitter       string
	TopHitterRC     float64
	AcePitcher      string
	AceScore        float64

	TotalRoster         int
	ReturningPlayers    int
	ReturningSeniors    int
	ReturningJuniors    int
	ReturningSophomores int
	TotalTenure         int
	AvgTenure           float64
	CompositionLabel    string // "Veteran", "Rebuilding", or ""
}

// ScheduledGame is one schedule row.
type ScheduledGame struct {
	Home string
	Away string
	Date string
}

// GameResult is the simulated outcome distribution for one game, viewed
// from the focus team's perspective.
type GameResult struct {
	Date       string
	Opponent   string
	HomeGame   bool
	WinPct     float64
	AvgRunsFor float64
	AvgRunsVs  float64
	Confidence string
	Analysis   string

	OffIndex    float64
	PitIndex    float64
	OppOffIndex float64
	OppPitIndex float64
}

// SeasonResult summarizes the win-total distribution across trial universes.
type SeasonResult struct {
	Games       int
	Trials      int
	MeanWins    float64
	FloorWins   float64 // 10th percentile
	CeilingWins float64 // 90th percentile
}
