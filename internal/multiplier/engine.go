// Package multiplier learns year-over-year development ratios from paired
// consecutive player seasons. Each (transition cohort, statistic) pair gets a
// median growth ratio with sample size and volatility, grouped into three
// tables: one pooled over the whole league, plus elite and standard splits
// keyed on the prior season's program.
package multiplier

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// Engine builds multiplier tables from a resolved season history.
type Engine struct {
	cfg *config.Config
	log *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, log: log}
}

// pair is one player observed in two consecutive seasons.
type pair struct {
	prior *model.PlayerSeasonRecord
	next  *model.PlayerSeasonRecord
}

// transitionDef matches a pair against a start state and names the cohort.
type transitionDef struct {
	name  string
	kind  model.TransitionKind
	match func(p pair) bool
}

func classTransition(from model.Class) transitionDef {
	return transitionDef{
		name: fmt.Sprintf("%s_to_%s", from, from.Next()),
		kind: model.KindClass,
		match: func(p pair) bool {
			return p.prior.Class == from && p.next.Class == from.Next()
		},
	}
}

func tenureTransition(from int) transitionDef {
	return transitionDef{
		name: fmt.Sprintf("Varsity_Year%d_to_Year%d", from, from+1),
		kind: model.KindTenure,
		match: func(p pair) bool {
			return p.prior.Tenure == from && p.next.Tenure == from+1
		},
	}
}

func classTenureTransition(from model.Class, tenure int) transitionDef {
	return transitionDef{
		name: fmt.Sprintf("%s_Y%d_to_%s_Y%d", from, tenure, from.Next(), tenure+1),
		kind: model.KindClassTenure,
		match: func(p pair) bool {
			return p.prior.Class == from && p.prior.Tenure == tenure &&
				p.next.Class == from.Next() && p.next.Tenure == tenure+1
		},
	}
}

func transitions() []transitionDef {
	return []transitionDef{
		classTransition(model.ClassFreshman),
		classTransition(model.ClassSophomore),
		classTransition(model.ClassJunior),

		tenureTransition(1),
		tenureTransition(2),
		tenureTransition(3),

		classTenureTransition(model.ClassFreshman, 1),
		classTenureTransition(model.ClassSophomore, 1),
		classTenureTransition(model.ClassSophomore, 2),
		classTenureTransition(model.ClassJunior, 1),
		classTenureTransition(model.ClassJunior, 2),
		classTenureTransition(model.ClassJunior, 3),
	}
}

// Build learns the three multiplier tables from a resolved history. The
// elite and standard splits assign each pair by the prior season's program.
func (e *Engine) Build(records []model.PlayerSeasonRecord, columns []string) (pooled, elite, standard *model.MultiplierTable) {
	pairs := e.pairSeasons(records)

	var elitePairs, standardPairs []pair
	for _, p := range pairs {
		if e.cfg.IsElite(p.prior.Team) {
			elitePairs = append(elitePairs, p)
		} else {
			standardPairs = append(standardPairs, p)
		}
	}
	if e.log != nil {
		e.log.WithFields(logrus.Fields{
			"stage":    "multipliers",
			"pairs":    len(pairs),
			"elite":    len(elitePairs),
			"standard": len(standardPairs),
		}).Info("paired consecutive seasons")
	}

	pooled = e.buildTable(model.TierPooled, pairs, columns)
	elite = e.buildTable(model.TierElite, elitePairs, columns)
	standard = e.buildTable(model.TierStandard, standardPairs, columns)
	return pooled, elite, standard
}

// pairSeasons self-joins the history on identity with the season shifted by
// one year. Gaps in a player's history produce no pair for the gap seasons.
func (e *Engine) pairSeasons(records []model.PlayerSeasonRecord) []pair {
	type joinKey struct {
		id     model.IdentityKey
		season int
	}
	next := make(map[joinKey]*model.PlayerSeasonRecord, len(records))
	for i := range records {
		r := &records[i]
		next[joinKey{r.Key(), r.Season}] = r
	}

	var pairs []pair
	for i := range records {
		r := &records[i]
		if n, ok := next[joinKey{r.Key(), r.Season + 1}]; ok {
			pairs = append(pairs, pair{prior: r, next: n})
		}
	}
	return pairs
}

func (e *Engine) buildTable(tier model.Tier, pairs []pair, columns []string) *model.MultiplierTable {
	table := &model.MultiplierTable{Tier: tier, Transitions: make(map[string]model.Transition)}
	for _, def := range transitions() {
		var cohort []pair
		for _, p := range pairs {
			if def.match(p) {
				cohort = append(cohort, p)
			}
		}
		if len(cohort) == 0 {
			continue
		}
		tr := model.Transition{
			Name:       def.name,
			Kind:       def.kind,
			CohortSize: len(cohort),
			Stats:      make(map[string]model.StatMultiplier, len(columns)),
		}

		var vols []float64
		for _, code := range columns {
			sd, ok := e.cfg.Stat(code)
			if !ok {
				continue
			}
			m := e.statMultiplier(sd, cohort)
			tr.Stats[code] = m
			if m.SampleSize >= e.cfg.Multipliers.MinSample {
				vols = append(vols, m.StdDev)
			}
		}
		if len(vols) > 0 {
			tr.AvgVolatility = stat.Mean(vols, nil)
		}
		table.Transitions[def.name] = tr
	}
	return table
}

// statMultiplier computes one cohort's growth ratio for one statistic.
// Qualifying pairs must clear the prior-season volume gate and carry the
// column in both seasons; non-rare stats additionally need a positive prior
// value, while rare counting events use +1/+1 smoothing so a zero prior
// still contributes.
func (e *Engine) statMultiplier(def config.StatDef, cohort []pair) model.StatMultiplier {
	gateCode, gateMin := e.cfg.VolumeGate(def)

	var ratios []float64
	for _, p := range cohort {
		if p.prior.Val(gateCode) < gateMin {
			continue
		}
		prior, ok := p.prior.Stat(def.Code)
		if !ok {
			continue
		}
		next, ok := p.next.Stat(def.Code)
		if !ok {
			continue
		}
		if def.Rare {
			ratios = append(ratios, (next+1)/(prior+1))
			continue
		}
		if prior <= 0 {
			continue
		}
		ratios = append(ratios, next/prior)
	}

	if len(ratios) < e.cfg.Multipliers.MinSample {
		return model.StatMultiplier{Ratio: 1.0, SampleSize: len(ratios)}
	}
	return model.StatMultiplier{
		Ratio:      median(ratios),
		SampleSize: len(ratios),
		StdDev:     stat.StdDev(ratios, nil),
	}
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
