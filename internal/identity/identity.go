// Package identity resolves the source system's volatile per-season athlete
// id into a stable composite key and assigns longitudinal varsity tenure.
//
// The upstream site issues a new athlete id every season, so the same player
// appears under unrelated surrogate keys across years. We ignore that id
// entirely and key on normalized (name, team) instead. Distinct players who
// share a normalized key on the same team are merged; the source behavior
// offers no disambiguation and neither do we.
package identity

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tmessick/prepball/internal/model"
)

// Resolve canonicalizes a season-record history: duplicate (key, season)
// rows collapse to the first occurrence in input order, records are sorted
// by team, name, season, and each identity's seasons are enumerated 1..N as
// varsity tenure. The input slice is not modified.
func Resolve(records []model.PlayerSeasonRecord, log *logrus.Logger) []model.PlayerSeasonRecord {
	type seasonKey struct {
		id     model.IdentityKey
		season int
	}

	out := make([]model.PlayerSeasonRecord, 0, len(records))
	seen := make(map[seasonKey]struct{}, len(records))
	dups := 0
	for _, r := range records {
		k := seasonKey{r.Key(), r.Season}
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	if dups > 0 && log != nil {
		log.WithFields(logrus.Fields{
			"stage":      "identity",
			"duplicates": dups,
		}).Warn("collapsed duplicate (identity, season) rows, keeping first occurrence")
	}

	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].Key(), out[j].Key()
		if ki != kj {
			return ki.Less(kj)
		}
		return out[i].Season < out[j].Season
	})

	tenure := 0
	var prev model.IdentityKey
	for i := range out {
		k := out[i].Key()
		if i == 0 || k != prev {
			tenure = 0
			prev = k
		}
		tenure++
		out[i].Tenure = tenure
	}
	return out
}

// LatestSeason returns the highest season year present in a resolved history.
func LatestSeason(records []model.PlayerSeasonRecord) int {
	latest := 0
	for _, r := range records {
		if r.Season > latest {
			latest = r.Season
		}
	}
	return latest
}

// SeasonSlice returns the records for one season, preserving resolved order.
func SeasonSlice(records []model.PlayerSeasonRecord, season int) []model.PlayerSeasonRecord {
	var out []model.PlayerSeasonRecord
	for _, r := range records {
		if r.Season == season {
			out = append(out, r)
		}
	}
	return out
}
