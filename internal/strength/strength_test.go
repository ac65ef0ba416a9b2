package strength

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

func batter(name, team string, class model.Class, h, bb, ab, doubles, triples, hr float64) model.ProjectedPlayerRecord {
	p := model.ProjectedPlayerRecord{
		PlayerSeasonRecord: model.PlayerSeasonRecord{Name: name, Team: team, Season: 2026, Class: class, Tenure: 3},
		IsBatter:           true,
	}
	p.SetStat("H", h)
	p.SetStat("BB", bb)
	p.SetStat("AB", ab)
	p.SetStat("2B", doubles)
	p.SetStat("3B", triples)
	p.SetStat("HR", hr)
	return p
}

func pitcher(name, team string, class model.Class, ip, k, bb, er float64) model.ProjectedPlayerRecord {
	p := model.ProjectedPlayerRecord{
		PlayerSeasonRecord: model.PlayerSeasonRecord{Name: name, Team: team, Season: 2026, Class: class, Tenure: 3},
		IsPitcher:          true,
	}
	p.SetStat("IP", ip)
	p.SetStat("K_P", k)
	p.SetStat("BB_P", bb)
	p.SetStat("ER", er)
	return p
}

func TestRCScore(t *testing.T) {
	// 20 H (12 singles, 5 2B, 1 3B, 2 HR), 10 BB, 60 AB.
	// TB = 20 + 5 + 2*1 + 3*2 = 33; RC = (20+10)*33/(60+10).
	p := batter("A", "T", model.ClassJunior, 20, 10, 60, 5, 1, 2)
	require.InDelta(t, 30.0*33/70, RCScore(&p), 1e-9)
}

func TestRCScoreZeroDenominator(t *testing.T) {
	p := batter("A", "T", model.ClassJunior, 0, 0, 0, 0, 0, 0)
	require.Zero(t, RCScore(&p))
}

func TestPitchingScore(t *testing.T) {
	// 1.5*40 + 50 - 12 - 2*15 = 68.
	p := pitcher("A", "T", model.ClassSenior, 40, 50, 12, 15)
	require.InDelta(t, 68.0, PitchingScore(&p), 1e-9)
}

func TestSeniorOutweighsSophomore(t *testing.T) {
	cfg := config.Default()
	// Identical stat lines; the senior roster should grade out stronger.
	players := []model.ProjectedPlayerRecord{
		batter("Sr", "Seniors", model.ClassSenior, 20, 10, 60, 5, 1, 2),
		batter("So", "Sophs", model.ClassSophomore, 20, 10, 60, 5, 1, 2),
	}
	teams := New(cfg, nil).Aggregate(players)
	require.Len(t, teams, 2)
	require.Equal(t, "Seniors", teams[0].Team)
	require.Greater(t, teams[0].OffenseRaw, teams[1].OffenseRaw)
}

func TestSyntheticDiscount(t *testing.T) {
	cfg := config.Default()
	real := batter("Real", "A", model.ClassJunior, 20, 10, 60, 5, 1, 2)
	synth := batter("Generic Batter 1 (30th)", "B", model.ClassSophomore, 20, 10, 60, 5, 1, 2)
	synth.Synthetic = true

	teams := New(cfg, nil).Aggregate([]model.ProjectedPlayerRecord{real, synth})
	var a, b model.TeamStrength
	for _, ts := range teams {
		switch ts.Team {
		case "A":
			a = ts
		case "B":
			b = ts
		}
	}
	require.Greater(t, a.OffenseRaw, b.OffenseRaw)
	// 0.75 vs the junior's 1.00, same slot weight.
	require.InDelta(t, a.OffenseRaw*0.75, b.OffenseRaw, 1e-9)
}

func TestEliteBackfillDiscountIsSmaller(t *testing.T) {
	cfg := config.Default()
	std := batter("Generic Batter 1 (30th)", "Std", model.ClassSophomore, 20, 10, 60, 5, 1, 2)
	std.Synthetic = true
	el := batter("Generic Batter 1 (50th)", "Elite", model.ClassSophomore, 20, 10, 60, 5, 1, 2)
	el.Synthetic = true
	el.BackfillElite = true

	teams := New(cfg, nil).Aggregate([]model.ProjectedPlayerRecord{std, el})
	require.Equal(t, "Elite", teams[0].Team)
}

func TestTopNSelectsByWeightedScore(t *testing.T) {
	cfg := config.Default()
	cfg.Strength.TopBatters = 1
	cfg.Strength.OrderWeights = []float64{1.0}

	// Raw RC: senior 10*10/30 = 3.333, synthetic 12*12/35 = 4.114.
	// Weighted: senior 3.667 (x1.10), synthetic 3.086 (x0.75).
	sr := batter("Sr", "T", model.ClassSenior, 10, 0, 30, 0, 0, 0)
	gen := batter("Generic Batter 1 (30th)", "T", model.ClassSophomore, 12, 0, 35, 0, 0, 0)
	gen.Synthetic = true

	teams := New(cfg, nil).Aggregate([]model.ProjectedPlayerRecord{sr, gen})
	require.Len(t, teams, 1)
	require.Equal(t, "Sr", teams[0].TopHitter, "the higher weighted score takes the slot")
	require.InDelta(t, (10.0*10/30)*1.10, teams[0].OffenseRaw, 1e-9)
}

func TestTopNAndSlotWeights(t *testing.T) {
	cfg := config.Default()
	cfg.Strength.TopBatters = 2
	cfg.Strength.OrderWeights = []float64{2.0}

	players := []model.ProjectedPlayerRecord{
		batter("Best", "T", model.ClassJunior, 30, 10, 60, 5, 0, 0),
		batter("Mid", "T", model.ClassJunior, 20, 10, 60, 5, 0, 0),
		batter("Worst", "T", model.ClassJunior, 10, 10, 60, 5, 0, 0),
	}
	rc := make(map[string]float64)
	for i := range players {
		rc[players[i].Name] = RCScore(&players[i])
	}

	teams := New(cfg, nil).Aggregate(players)
	require.Len(t, teams, 1)
	// Top two only: best doubled by the slot weight, second at face value.
	want := rc["Best"]*2.0 + rc["Mid"]*1.0
	require.InDelta(t, want, teams[0].OffenseRaw, 1e-9)
	require.Equal(t, 2, teams[0].BattersCounted)
	require.Equal(t, "Best", teams[0].TopHitter)
}

func TestIndicesNormalizeToLeagueMax(t *testing.T) {
	cfg := config.Default()
	players := []model.ProjectedPlayerRecord{
		batter("A", "Strong", model.ClassJunior, 30, 10, 60, 5, 1, 3),
		pitcher("P", "Strong", model.ClassJunior, 40, 50, 12, 15),
		batter("B", "Weak", model.ClassJunior, 10, 5, 60, 1, 0, 0),
		pitcher("Q", "Weak", model.ClassJunior, 20, 15, 10, 12),
	}
	teams := New(cfg, nil).Aggregate(players)
	require.Equal(t, "Strong", teams[0].Team)
	require.InDelta(t, 100.0, teams[0].OffenseIndex, 1e-9)
	require.InDelta(t, 100.0, teams[0].PitchingIndex, 1e-9)
	require.InDelta(t, 100.0, teams[0].PowerIndex, 1e-9)
	require.Less(t, teams[1].PowerIndex, 100.0)
}

func TestRanks(t *testing.T) {
	cfg := config.Default()
	players := []model.ProjectedPlayerRecord{
		batter("Best", "T1", model.ClassJunior, 30, 10, 60, 5, 0, 0),
		batter("Tied A", "T1", model.ClassJunior, 20, 10, 60, 5, 0, 0),
		batter("Tied B", "T2", model.ClassJunior, 20, 10, 60, 5, 0, 0),
		pitcher("Arm", "T2", model.ClassJunior, 40, 50, 12, 15),
	}
	New(cfg, nil).Aggregate(players)

	byName := make(map[string]*model.ProjectedPlayerRecord)
	for i := range players {
		byName[players[i].Name] = &players[i]
	}

	require.Equal(t, 1, byName["Best"].OffensiveRank)
	require.Equal(t, 2, byName["Tied A"].OffensiveRank)
	require.Equal(t, 2, byName["Tied B"].OffensiveRank, "ties share the min rank")
	require.Equal(t, 1, byName["Tied B"].OffensiveRankTeam)

	require.Equal(t, NonQualifierRank, byName["Arm"].OffensiveRank)
	require.Equal(t, 1, byName["Arm"].PitchingRank)
	require.Equal(t, NonQualifierRank, byName["Best"].PitchingRank)
}

func TestCompositionLabels(t *testing.T) {
	cfg := config.Default()
	var players []model.ProjectedPlayerRecord
	add := func(team string, tenure, n int) {
		for i := 0; i < n; i++ {
			p := batter(team+"-p", team, model.ClassJunior, 15, 5, 50, 2, 0, 0)
			p.Name = p.Name + string(rune('a'+i))
			p.Tenure = tenure
			players = append(players, p)
		}
	}
	add("Old", 4, 8)
	add("MidA", 2, 8)
	add("MidB", 2, 8)
	add("Young", 1, 8)

	teams := New(cfg, nil).Aggregate(players)
	labels := make(map[string]string)
	for _, ts := range teams {
		labels[ts.Team] = ts.CompositionLabel
	}
	require.Equal(t, "Veteran", labels["Old"])
	require.Equal(t, "Rebuilding", labels["Young"])
	require.Empty(t, labels["MidA"])
}
