package projector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

func table(tier model.Tier, transitions ...model.Transition) *model.MultiplierTable {
	t := &model.MultiplierTable{Tier: tier, Transitions: make(map[string]model.Transition)}
	for _, tr := range transitions {
		t.Transitions[tr.Name] = tr
	}
	return t
}

func classEntry(name string, stats map[string]float64) model.Transition {
	tr := model.Transition{Name: name, Kind: model.KindClass, Stats: make(map[string]model.StatMultiplier)}
	for code, ratio := range stats {
		tr.Stats[code] = model.StatMultiplier{Ratio: ratio, SampleSize: 5}
	}
	return tr
}

func emptyTables() (pooled, elite, standard *model.MultiplierTable) {
	return table(model.TierPooled), table(model.TierElite), table(model.TierStandard)
}

func player(name, team string, class model.Class, tenure int, stats map[string]float64) model.PlayerSeasonRecord {
	r := model.PlayerSeasonRecord{Name: name, Team: team, Season: 2025, Class: class, Tenure: tenure}
	for code, v := range stats {
		r.SetStat(code, v)
	}
	return r
}

func defaultProfiles() []model.GenericProfile {
	batter := model.GenericProfile{
		Name: "Generic Batter (30th Percentile)", Role: model.RoleBatter, Tier: 0.3,
		Class: model.ClassSophomore, Tenure: 1,
		Stats: map[string]float64{"PA": 25, "AB": 20, "H": 5},
	}
	pitcher := model.GenericProfile{
		Name: "Generic Pitcher (30th Percentile)", Role: model.RolePitcher, Tier: 0.3,
		Class: model.ClassSophomore, Tenure: 1,
		Stats: map[string]float64{"IP": 8, "K_P": 6},
	}
	return []model.GenericProfile{batter, pitcher}
}

func TestSurvivorshipHaircut(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	pooled := table(model.TierPooled,
		classEntry("Sophomore_to_Junior", map[string]float64{"H": 1.0}))
	standard := table(model.TierStandard,
		classEntry("Sophomore_to_Junior", map[string]float64{"H": 1.0}))

	base := []model.PlayerSeasonRecord{
		player("J. Smith", "Fossil Ridge", model.ClassSophomore, 2, map[string]float64{"H": 12}),
	}
	out, _ := New(cfg, nil, pooled, table(model.TierElite), standard, nil).Project(base)
	require.Len(t, out, 1)
	// A neutral multiplier still pays the roster-survival haircut.
	require.InDelta(t, 12*0.95, out[0].Val("H"), 1e-9)
	require.Equal(t, model.MethodClass, out[0].Method)
}

func TestSeniorsGraduate(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0
	pooled, elite, standard := emptyTables()

	base := []model.PlayerSeasonRecord{
		player("A. Senior", "Legacy", model.ClassSenior, 4, map[string]float64{"H": 30}),
		player("B. Junior", "Legacy", model.ClassJunior, 3, map[string]float64{"H": 20}),
	}
	out, diag := New(cfg, nil, pooled, elite, standard, nil).Project(base)
	require.Len(t, out, 1)
	require.Equal(t, "B. Junior", out[0].Name)
	require.Equal(t, model.ClassSenior, out[0].Class)
	require.Equal(t, 4, out[0].Tenure)
	require.Equal(t, 2026, out[0].Season)
	require.Equal(t, 1, diag.Graduated)
}

func TestLookupHierarchy(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	classTr := classEntry("Sophomore_to_Junior", map[string]float64{"H": 2.0})
	ctTr := model.Transition{
		Name: "Sophomore_Y2_to_Junior_Y3", Kind: model.KindClassTenure,
		Stats: map[string]model.StatMultiplier{"H": {Ratio: 3.0, SampleSize: 5}},
	}
	tenureTr := model.Transition{
		Name: "Varsity_Year2_to_Year3", Kind: model.KindTenure,
		Stats: map[string]model.StatMultiplier{"H": {Ratio: 4.0, SampleSize: 5}},
	}

	base := []model.PlayerSeasonRecord{
		player("J. Smith", "Fossil Ridge", model.ClassSophomore, 2, map[string]float64{"H": 10}),
	}

	// All three available: the class cohort wins.
	standard := table(model.TierStandard, classTr, ctTr)
	pooled := table(model.TierPooled, tenureTr)
	out, _ := New(cfg, nil, pooled, table(model.TierElite), standard, nil).Project(base)
	require.Equal(t, model.MethodClass, out[0].Method)
	require.InDelta(t, 10*2.0*0.95, out[0].Val("H"), 1e-9)

	// Without the class cohort the combined cohort wins.
	standard = table(model.TierStandard, ctTr)
	out, _ = New(cfg, nil, pooled, table(model.TierElite), standard, nil).Project(base)
	require.Equal(t, model.MethodClassTenure, out[0].Method)
	require.InDelta(t, 10*3.0*0.95, out[0].Val("H"), 1e-9)

	// The pooled tenure cohort is the catch-all.
	standard = table(model.TierStandard,
		classEntry("Freshman_to_Sophomore", map[string]float64{"H": 9.0}))
	out, _ = New(cfg, nil, pooled, table(model.TierElite), standard, nil).Project(base)
	require.Equal(t, model.MethodTenure, out[0].Method)
	require.InDelta(t, 10*4.0*0.95, out[0].Val("H"), 1e-9)

	// Nothing matches: stats carry over untouched.
	pooled, elite, standard := emptyTables()
	out, _ = New(cfg, nil, pooled, elite, standard, nil).Project(base)
	require.Equal(t, model.MethodDefault, out[0].Method)
	require.InDelta(t, 10.0, out[0].Val("H"), 1e-9)
}

func TestEmptyTierFallsBackToPooled(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	pooled := table(model.TierPooled,
		classEntry("Sophomore_to_Junior", map[string]float64{"H": 1.5}))
	base := []model.PlayerSeasonRecord{
		player("J. Smith", "Fossil Ridge", model.ClassSophomore, 2, map[string]float64{"H": 10}),
	}
	out, _ := New(cfg, nil, pooled, table(model.TierElite), table(model.TierStandard), nil).Project(base)
	require.Equal(t, model.MethodClass, out[0].Method)
	require.InDelta(t, 10*1.5*0.95, out[0].Val("H"), 1e-9)
}

func TestHighVolumeRegression(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	standard := table(model.TierStandard,
		classEntry("Sophomore_to_Junior", map[string]float64{"H": 2.0}))
	pooled := table(model.TierPooled)

	lowVolume := []model.PlayerSeasonRecord{
		player("Part Timer", "Fossil Ridge", model.ClassSophomore, 2, map[string]float64{"PA": 60, "H": 10}),
	}
	highVolume := []model.PlayerSeasonRecord{
		player("Full Timer", "Fossil Ridge", model.ClassSophomore, 2, map[string]float64{"PA": 120, "H": 10}),
	}
	extreme := []model.PlayerSeasonRecord{
		player("Iron Man", "Fossil Ridge", model.ClassSophomore, 2, map[string]float64{"PA": 400, "H": 10}),
	}

	proj := New(cfg, nil, pooled, table(model.TierElite), standard, nil)
	low, _ := proj.Project(lowVolume)
	high, diag := proj.Project(highVolume)
	max, _ := proj.Project(extreme)

	require.InDelta(t, 10*2.0*0.95, low[0].Val("H"), 1e-9, "below the volume threshold nothing regresses")

	// 120 PA is 0.5 over the 80 PA threshold: m = 2.0 + (1-2.0)*0.5*0.5 = 1.75.
	require.InDelta(t, 10*1.75*0.95, high[0].Val("H"), 1e-9)
	require.Equal(t, 1, diag.Regressed)

	// The excess ratio saturates at 1.0: m = 2.0 + (1-2.0)*1.0*0.5 = 1.5.
	require.InDelta(t, 10*1.5*0.95, max[0].Val("H"), 1e-9)

	// Regressed never crosses below the anchor when the multiplier is optimistic.
	require.Greater(t, max[0].Val("H"), 10*1.0*0.95-1e-9)
}

func TestDiagnosticsCountPlayersNotStats(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	standard := table(model.TierStandard,
		classEntry("Sophomore_to_Junior", map[string]float64{"H": 2.0, "2B": 2.0, "RBI": 2.0}))
	base := []model.PlayerSeasonRecord{
		player("Full Timer", "Fossil Ridge", model.ClassSophomore, 2,
			map[string]float64{"PA": 120, "H": 60, "2B": 20, "RBI": 40}),
	}
	_, diag := New(cfg, nil, table(model.TierPooled), table(model.TierElite), standard, nil).Project(base)

	// Three stats regress and three clip their caps, all on the same player.
	require.Equal(t, 1, diag.Regressed)
	require.Equal(t, 1, diag.Capped)
}

func TestJuniorNotRegressed(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	standard := table(model.TierStandard,
		classEntry("Junior_to_Senior", map[string]float64{"H": 2.0}))
	base := []model.PlayerSeasonRecord{
		player("Vet", "Fossil Ridge", model.ClassJunior, 3, map[string]float64{"PA": 150, "H": 10}),
	}
	out, diag := New(cfg, nil, table(model.TierPooled), table(model.TierElite), standard, nil).Project(base)
	require.InDelta(t, 10*2.0*0.95, out[0].Val("H"), 1e-9)
	require.Zero(t, diag.Regressed)
}

func TestCapsApply(t *testing.T) {
	cfg := config.Default()
	cfg.Projection.MinBatters = 0
	cfg.Projection.MinPitchers = 0

	standard := table(model.TierStandard,
		classEntry("Junior_to_Senior", map[string]float64{"H": 3.0}))
	base := []model.PlayerSeasonRecord{
		player("Masher", "Fossil Ridge", model.ClassJunior, 3, map[string]float64{"H": 50}),
	}
	out, diag := New(cfg, nil, table(model.TierPooled), table(model.TierElite), standard, nil).Project(base)
	require.InDelta(t, 75.0, out[0].Val("H"), 1e-9, "hit projection clips at the ceiling")
	require.Equal(t, 1, diag.Capped)
}

func TestBackfillToMinimums(t *testing.T) {
	cfg := config.Default()
	pooled, elite, standard := emptyTables()

	base := []model.PlayerSeasonRecord{
		player("Only Guy", "Fossil Ridge", model.ClassJunior, 3, map[string]float64{"AB": 40, "H": 15}),
	}
	out, diag := New(cfg, nil, pooled, elite, standard, defaultProfiles()).Project(base)

	batters, pitchers := 0, 0
	for _, r := range out {
		require.Equal(t, "Fossil Ridge", r.Team)
		if r.IsBatter {
			batters++
		}
		if r.IsPitcher {
			pitchers++
		}
		if r.Synthetic {
			require.Equal(t, model.MethodBackfill, r.Method)
			require.Equal(t, model.ClassSophomore, r.Class)
			require.Equal(t, 1, r.Tenure)
			require.False(t, r.BackfillElite)
		}
	}
	require.Equal(t, cfg.Projection.MinBatters, batters)
	require.Equal(t, cfg.Projection.MinPitchers, pitchers)
	require.Equal(t, diag.BackfillSlots, 9+6)
}

func TestEliteBackfillUsesEliteLadder(t *testing.T) {
	cfg := config.Default()
	cfg.SetEliteTeams([]string{"Rocky Mountain"})
	cfg.Projection.MinBatters = 3
	cfg.Projection.MinPitchers = 0
	pooled, elite, standard := emptyTables()

	profiles := []model.GenericProfile{
		{Name: "b50", Role: model.RoleBatter, Tier: 0.5, Class: model.ClassSophomore, Tenure: 1,
			Stats: map[string]float64{"AB": 30}},
		{Name: "b20", Role: model.RoleBatter, Tier: 0.2, Class: model.ClassSophomore, Tenure: 1,
			Stats: map[string]float64{"AB": 15}},
		{Name: "b10", Role: model.RoleBatter, Tier: 0.1, Class: model.ClassSophomore, Tenure: 1,
			Stats: map[string]float64{"AB": 10}},
	}

	base := []model.PlayerSeasonRecord{
		player("Lone Star", "Rocky Mountain", model.ClassJunior, 3, map[string]float64{"H": 5}),
	}
	out, _ := New(cfg, nil, pooled, elite, standard, profiles).Project(base)

	var tiers []float64
	for _, r := range out {
		if r.Synthetic {
			require.True(t, r.BackfillElite)
			tiers = append(tiers, r.TierLabel)
		}
	}
	require.Equal(t, []float64{0.5, 0.2, 0.1}, tiers, "elite ladder walks 50th, 20th, 10th")
}

func TestBackfillWithoutProfilesLeavesRosterShort(t *testing.T) {
	cfg := config.Default()
	pooled, elite, standard := emptyTables()

	base := []model.PlayerSeasonRecord{
		player("Only Guy", "Fossil Ridge", model.ClassJunior, 3, map[string]float64{"AB": 40}),
	}
	out, diag := New(cfg, nil, pooled, elite, standard, nil).Project(base)
	require.Len(t, out, 1)
	require.Zero(t, diag.BackfillSlots)
}
