package profile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// sophomorePool spreads n sophomores evenly across playing-time levels so
// every percentile bucket is populated.
func sophomorePool(n int) []model.PlayerSeasonRecord {
	var records []model.PlayerSeasonRecord
	for i := 0; i < n; i++ {
		r := model.PlayerSeasonRecord{
			Name: fmt.Sprintf("Soph %d", i), Team: "Various",
			Season: 2023, Class: model.ClassSophomore,
		}
		r.SetStat("PA", float64(10+i*5))
		r.SetStat("AB", float64(8+i*4))
		r.SetStat("H", float64(2+i))
		r.SetStat("IP", float64(3+i*2))
		r.SetStat("K_P", float64(2+i*2))
		records = append(records, r)
	}
	return records
}

func TestGenerateCoversAllTiers(t *testing.T) {
	cfg := config.Default()
	// Distinct names per index avoids identity merges; records are all 2023
	// so no tenure resolution is needed for profile generation.
	profiles := Generate(sophomorePool(20), []string{"PA", "AB", "H", "IP", "K_P"}, cfg, nil)

	for _, tier := range cfg.Profiles.Quantiles {
		_, ok := Find(profiles, model.RoleBatter, tier)
		require.True(t, ok, "missing batter tier %.1f", tier)
		_, ok = Find(profiles, model.RolePitcher, tier)
		require.True(t, ok, "missing pitcher tier %.1f", tier)
	}
}

func TestTiersAreMonotoneInVolume(t *testing.T) {
	cfg := config.Default()
	profiles := Generate(sophomorePool(30), []string{"PA", "AB", "H", "IP"}, cfg, nil)

	p10, _ := Find(profiles, model.RoleBatter, 0.1)
	p50, _ := Find(profiles, model.RoleBatter, 0.5)
	require.Less(t, p10.Stats["PA"], p50.Stats["PA"],
		"a higher percentile tier should carry more playing time")
}

func TestProfileFloors(t *testing.T) {
	cfg := config.Default()
	// Three low-volume sophomores: medians fall under the usability floors.
	var records []model.PlayerSeasonRecord
	for i := 0; i < 3; i++ {
		r := model.PlayerSeasonRecord{
			Name: fmt.Sprintf("Bench %d", i), Team: "Various",
			Season: 2023, Class: model.ClassSophomore,
		}
		r.SetStat("PA", 11)
		r.SetStat("AB", 4)
		r.SetStat("IP", 3)
		records = append(records, r)
	}

	profiles := Generate(records, []string{"PA", "AB", "IP"}, cfg, nil)
	for _, p := range profiles {
		switch p.Role {
		case model.RoleBatter:
			require.GreaterOrEqual(t, p.Stats["AB"], 10.0)
		case model.RolePitcher:
			require.GreaterOrEqual(t, p.Stats["IP"], 5.0)
		}
	}
}

func TestNonSophomoresExcluded(t *testing.T) {
	cfg := config.Default()
	r := model.PlayerSeasonRecord{
		Name: "J. Senior", Team: "Legacy", Season: 2023, Class: model.ClassSenior,
	}
	r.SetStat("PA", 100)
	r.SetStat("AB", 90)

	profiles := Generate([]model.PlayerSeasonRecord{r}, []string{"PA", "AB"}, cfg, nil)
	require.Empty(t, profiles)
}

func TestLadder(t *testing.T) {
	l := NewLadder([]float64{0.5, 0.2, 0.1})
	got := []float64{l.Next(), l.Next(), l.Next(), l.Next(), l.Next()}
	require.Equal(t, []float64{0.5, 0.2, 0.1, 0.1, 0.1}, got,
		"exhausted ladder repeats the final tier")

	l.Reset()
	require.Equal(t, 0.5, l.Next())
}

func TestNearestFallsBackAcrossTiers(t *testing.T) {
	profiles := []model.GenericProfile{
		{Role: model.RoleBatter, Tier: 0.3},
		{Role: model.RoleBatter, Tier: 0.5},
	}
	p, ok := Nearest(profiles, model.RoleBatter, 0.2)
	require.True(t, ok)
	require.Equal(t, 0.3, p.Tier)

	_, ok = Nearest(profiles, model.RolePitcher, 0.2)
	require.False(t, ok)
}
