// Package backtest scores an archived projection against the season that
// actually happened: per-stat error summaries over matched players, plus a
// side-by-side of projected and observed team strength.
package backtest

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
	"github.com/tmessick/prepball/internal/strength"
)

// StatAccuracy summarizes projection error for one statistic across all
// matched players. MeanError keeps its sign (projected minus actual), so a
// positive value means the projection ran hot.
type StatAccuracy struct {
	Stat      string
	Players   int
	MeanError float64
	MAE       float64
}

// TeamDelta pairs a team's projected power ranking with the one its actual
// season produced.
type TeamDelta struct {
	Team           string
	ProjectedRank  int
	ActualRank     int
	ProjectedPower float64
	ActualPower    float64
}

// Report is the full backtest result for one season.
type Report struct {
	Season    int
	Matched   int
	Unmatched int // projected players with no observed line
	Missed    int // observed players the projection never saw
	Stats     []StatAccuracy
	Teams     []TeamDelta
}

// Evaluate matches projected players to the season's observed records by
// identity key and scores the projection. Synthetic backfill players have no
// real counterpart and sit out the matching entirely.
func Evaluate(cfg *config.Config, log *logrus.Logger, projected []model.ProjectedPlayerRecord, actual []model.PlayerSeasonRecord) Report {
	var rep Report
	if len(actual) > 0 {
		rep.Season = actual[0].Season
	}

	actualByKey := make(map[model.IdentityKey]*model.PlayerSeasonRecord, len(actual))
	for i := range actual {
		actualByKey[actual[i].Key()] = &actual[i]
	}

	errsByStat := make(map[string][]float64)
	seen := make(map[model.IdentityKey]bool)
	for i := range projected {
		p := &projected[i]
		if p.Synthetic {
			continue
		}
		a, ok := actualByKey[p.Key()]
		if !ok {
			rep.Unmatched++
			continue
		}
		rep.Matched++
		seen[p.Key()] = true
		for code, pv := range p.Stats {
			av, ok := a.Stat(code)
			if !ok {
				continue
			}
			errsByStat[code] = append(errsByStat[code], pv-av)
		}
	}
	for i := range actual {
		if !seen[actual[i].Key()] {
			rep.Missed++
		}
	}

	for _, def := range cfg.Schema {
		errs := errsByStat[def.Code]
		if len(errs) == 0 {
			continue
		}
		abs := make([]float64, len(errs))
		for i, e := range errs {
			abs[i] = math.Abs(e)
		}
		rep.Stats = append(rep.Stats, StatAccuracy{
			Stat:      def.Code,
			Players:   len(errs),
			MeanError: stat.Mean(errs, nil),
			MAE:       stat.Mean(abs, nil),
		})
	}

	rep.Teams = compareStrength(cfg, log, projected, actual)

	if log != nil {
		log.WithFields(logrus.Fields{
			"stage":     "backtest",
			"season":    rep.Season,
			"matched":   rep.Matched,
			"unmatched": rep.Unmatched,
			"missed":    rep.Missed,
		}).Info("scored projection against actuals")
	}
	return rep
}

// compareStrength grades both rosters through the same aggregator and joins
// the two power tables by team. Teams present on only one side drop out of
// the comparison.
func compareStrength(cfg *config.Config, log *logrus.Logger, projected []model.ProjectedPlayerRecord, actual []model.PlayerSeasonRecord) []TeamDelta {
	projCopy := append([]model.ProjectedPlayerRecord(nil), projected...)

	observed := make([]model.ProjectedPlayerRecord, len(actual))
	for i := range actual {
		observed[i] = model.ProjectedPlayerRecord{PlayerSeasonRecord: actual[i]}
		observed[i].IsBatter = actual[i].Val("AB") >= cfg.Roles.BatterABMin
		observed[i].IsPitcher = actual[i].Val("IP") >= cfg.Roles.PitcherIPMin
	}

	agg := strength.New(cfg, log)
	projTeams := agg.Aggregate(projCopy)
	actTeams := agg.Aggregate(observed)

	actRank := make(map[string]int, len(actTeams))
	actPower := make(map[string]float64, len(actTeams))
	for i, t := range actTeams {
		actRank[t.Team] = i + 1
		actPower[t.Team] = t.PowerIndex
	}

	var out []TeamDelta
	for i, t := range projTeams {
		rank, ok := actRank[t.Team]
		if !ok {
			continue
		}
		out = append(out, TeamDelta{
			Team:           t.Team,
			ProjectedRank:  i + 1,
			ActualRank:     rank,
			ProjectedPower: t.PowerIndex,
			ActualPower:    actPower[t.Team],
		})
	}
	return out
}
