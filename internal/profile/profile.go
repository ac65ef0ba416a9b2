// Package profile builds generic replacement-level player profiles from the
// historical sophomore population. Each profile is the median stat line of
// one percentile bucket of sophomore playing time, and stands in for the
// unknown underclassmen who will fill a projected roster's empty slots.
package profile

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// bucketWidth is the span of each percentile bucket; tiers are the bucket's
// upper edge. widenBy relaxes an empty bucket's edges before giving up.
const (
	bucketWidth = 0.1
	widenBy     = 0.05
)

// Generate builds batter and pitcher profiles for every configured tier.
// Tiers whose bucket stays empty even after widening are skipped.
func Generate(records []model.PlayerSeasonRecord, columns []string, cfg *config.Config, log *logrus.Logger) []model.GenericProfile {
	var batters, pitchers []*model.PlayerSeasonRecord
	for i := range records {
		r := &records[i]
		if r.Class != model.ClassSophomore {
			continue
		}
		if r.Val("PA") >= cfg.Profiles.BatterMinPA {
			batters = append(batters, r)
		}
		if r.Val("IP") >= cfg.Profiles.PitcherMinIP {
			pitchers = append(pitchers, r)
		}
	}
	if log != nil {
		log.WithFields(logrus.Fields{
			"stage":    "profiles",
			"batters":  len(batters),
			"pitchers": len(pitchers),
		}).Info("sophomore candidate pools")
	}

	var profiles []model.GenericProfile
	profiles = append(profiles, buildRole(model.RoleBatter, batters, "PA", columns, cfg, log)...)
	profiles = append(profiles, buildRole(model.RolePitcher, pitchers, "IP", columns, cfg, log)...)
	return profiles
}

func buildRole(role model.Role, pool []*model.PlayerSeasonRecord, volume string, columns []string, cfg *config.Config, log *logrus.Logger) []model.GenericProfile {
	if len(pool) == 0 {
		return nil
	}
	pct := percentileRanks(pool, volume)

	var profiles []model.GenericProfile
	for _, tier := range cfg.Profiles.Quantiles {
		bucket := inBucket(pool, pct, tier-bucketWidth, tier)
		if len(bucket) == 0 {
			bucket = inBucket(pool, pct, tier-bucketWidth-widenBy, tier+widenBy)
		}
		if len(bucket) == 0 {
			if log != nil {
				log.WithFields(logrus.Fields{"role": role, "tier": tier}).
					Warn("no sophomores in percentile bucket, skipping tier")
			}
			continue
		}

		stats := medianStats(bucket, columns)
		applyFloors(role, stats)
		profiles = append(profiles, model.GenericProfile{
			Name:   fmt.Sprintf("Generic %s (%.0fth Percentile)", role, tier*100),
			Role:   role,
			Tier:   tier,
			Class:  model.ClassSophomore,
			Tenure: 1,
			Stats:  stats,
		})
	}
	return profiles
}

// percentileRanks assigns each record its min-method percentile rank by the
// volume column: rank = 1 + count of strictly smaller values, scaled by pool
// size. Ties share the lowest rank.
func percentileRanks(pool []*model.PlayerSeasonRecord, volume string) []float64 {
	values := make([]float64, len(pool))
	for i, r := range pool {
		values[i] = r.Val(volume)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := float64(len(values))
	pct := make([]float64, len(values))
	for i, v := range values {
		below := sort.SearchFloat64s(sorted, v)
		pct[i] = (float64(below) + 1) / n
	}
	return pct
}

func inBucket(pool []*model.PlayerSeasonRecord, pct []float64, lo, hi float64) []*model.PlayerSeasonRecord {
	var out []*model.PlayerSeasonRecord
	for i, r := range pool {
		if pct[i] > lo && pct[i] <= hi {
			out = append(out, r)
		}
	}
	return out
}

// medianStats takes the per-stat median over the bucket, ignoring absent
// columns rather than treating them as zero.
func medianStats(bucket []*model.PlayerSeasonRecord, columns []string) map[string]float64 {
	stats := make(map[string]float64, len(columns))
	for _, code := range columns {
		var vals []float64
		for _, r := range bucket {
			if v, ok := r.Stat(code); ok {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Float64s(vals)
		n := len(vals)
		if n%2 == 1 {
			stats[code] = vals[n/2]
		} else {
			stats[code] = (vals[n/2-1] + vals[n/2]) / 2
		}
	}
	return stats
}

// applyFloors keeps a profile usable downstream: a batter profile always has
// enough at-bats to register as a batter, a pitcher profile enough innings
// to register as a pitcher.
func applyFloors(role model.Role, stats map[string]float64) {
	switch role {
	case model.RoleBatter:
		if stats["AB"] < 10 {
			stats["AB"] = 10
		}
	case model.RolePitcher:
		if stats["IP"] < 5 {
			stats["IP"] = 5
		}
	}
}

// Find returns the profile for a role and tier.
func Find(profiles []model.GenericProfile, role model.Role, tier float64) (model.GenericProfile, bool) {
	for _, p := range profiles {
		if p.Role == role && p.Tier == tier {
			return p, true
		}
	}
	return model.GenericProfile{}, false
}

// Nearest returns the profile for a role whose tier is closest to the
// requested one, used when the exact tier was skipped for lack of data.
func Nearest(profiles []model.GenericProfile, role model.Role, tier float64) (model.GenericProfile, bool) {
	best := -1
	for i, p := range profiles {
		if p.Role != role {
			continue
		}
		if best < 0 || abs(p.Tier-tier) < abs(profiles[best].Tier-tier) {
			best = i
		}
	}
	if best < 0 {
		return model.GenericProfile{}, false
	}
	return profiles[best], true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
