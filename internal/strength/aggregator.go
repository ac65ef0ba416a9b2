// Package strength condenses a projected league roster into per-team
// composite power numbers: a weighted top-of-lineup offense score, a
// weighted top-of-rotation pitching score, both normalized 0-100 against the
// league's best, plus roster-composition diagnostics.
package strength

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// NonQualifierRank marks players excluded from a ranking.
const NonQualifierRank = 9999

// Aggregator turns projected players into team strength composites.
type Aggregator struct {
	cfg *config.Config
	log *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *Aggregator {
	return &Aggregator{cfg: cfg, log: log}
}

// Aggregate scores and ranks every projected player in place, then builds
// the league power table sorted by power index descending.
func (a *Aggregator) Aggregate(players []model.ProjectedPlayerRecord) []model.TeamStrength {
	for i := range players {
		players[i].RCScore = RCScore(&players[i])
		players[i].PitchingScore = PitchingScore(&players[i])
	}
	a.rankPlayers(players)

	byTeam := make(map[string][]*model.ProjectedPlayerRecord)
	for i := range players {
		p := &players[i]
		byTeam[p.Team] = append(byTeam[p.Team], p)
	}

	teams := make([]model.TeamStrength, 0, len(byTeam))
	for name, roster := range byTeam {
		teams = append(teams, a.teamStrength(name, roster))
	}

	a.normalize(teams)
	labelComposition(teams)

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].PowerIndex != teams[j].PowerIndex {
			return teams[i].PowerIndex > teams[j].PowerIndex
		}
		return teams[i].Team < teams[j].Team
	})

	if a.log != nil {
		a.log.WithFields(logrus.Fields{
			"stage": "strength",
			"teams": len(teams),
		}).Info("aggregated team strength")
	}
	return teams
}

// confidenceWeight discounts a projected contribution by how much we trust
// it. Upperclass projections rest on more observed seasons; synthetic
// backfill players are the least certain, though elite-program backfill is
// a safer bet than the league-wide ladder.
func (a *Aggregator) confidenceWeight(p *model.ProjectedPlayerRecord) float64 {
	s := &a.cfg.Strength
	if p.Synthetic {
		if p.BackfillElite {
			return s.EliteBackfillWeight
		}
		return s.SyntheticWeight
	}
	switch p.Class {
	case model.ClassSenior:
		return s.SeniorWeight
	case model.ClassJunior:
		return s.JuniorWeight
	case model.ClassSophomore, model.ClassFreshman:
		return s.UnderclassWeight
	}
	// Unknown class: fall back on varsity tenure.
	switch {
	case p.Tenure >= 3:
		return s.SeniorWeight
	case p.Tenure == 2:
		return s.JuniorWeight
	default:
		return s.UnderclassWeight
	}
}

func (a *Aggregator) teamStrength(name string, roster []*model.ProjectedPlayerRecord) model.TeamStrength {
	ts := model.TeamStrength{Team: name, TotalRoster: len(roster)}

	// Selection and slot order go by confidence-weighted score; the
	// qualifying floor stays on the raw score.
	batters := qualifying(roster, func(p *model.ProjectedPlayerRecord) (bool, float64) {
		return p.IsBatter && p.RCScore > a.cfg.Strength.MinRCScore,
			p.RCScore * a.confidenceWeight(p)
	})
	pitchers := qualifying(roster, func(p *model.ProjectedPlayerRecord) (bool, float64) {
		return p.IsPitcher && p.PitchingScore > a.cfg.Strength.MinPitchingScore,
			p.PitchingScore * a.confidenceWeight(p)
	})

	if n := a.cfg.Strength.TopBatters; len(batters) > n {
		batters = batters[:n]
	}
	if n := a.cfg.Strength.TopPitchers; len(pitchers) > n {
		pitchers = pitchers[:n]
	}
	ts.BattersCounted = len(batters)
	ts.PitchersCounted = len(pitchers)

	for i, p := range batters {
		ts.OffenseRaw += p.RCScore * a.confidenceWeight(p) * slotWeight(a.cfg.Strength.OrderWeights, i)
	}
	for i, p := range pitchers {
		ts.PitchingRaw += p.PitchingScore * a.confidenceWeight(p) * slotWeight(a.cfg.Strength.AceWeights, i)
	}

	if len(batters) > 0 {
		ts.TopHitter = batters[0].Name
		ts.TopHitterRC = batters[0].RCScore
	}
	if len(pitchers) > 0 {
		ts.AcePitcher = pitchers[0].Name
		ts.AceScore = pitchers[0].PitchingScore
	}

	for _, p := range roster {
		if p.Synthetic {
			continue
		}
		ts.ReturningPlayers++
		ts.TotalTenure += p.Tenure
		switch p.Class {
		case model.ClassSenior:
			ts.ReturningSeniors++
		case model.ClassJunior:
			ts.ReturningJuniors++
		case model.ClassSophomore:
			ts.ReturningSophomores++
		}
	}
	if ts.ReturningPlayers > 0 {
		ts.AvgTenure = float64(ts.TotalTenure) / float64(ts.ReturningPlayers)
	}
	return ts
}

// qualifying filters a roster by the predicate and sorts the survivors by
// score descending, breaking ties on identity key so selection order never
// depends on map iteration.
func qualifying(roster []*model.ProjectedPlayerRecord, fn func(*model.ProjectedPlayerRecord) (bool, float64)) []*model.ProjectedPlayerRecord {
	var out []*model.ProjectedPlayerRecord
	for _, p := range roster {
		if ok, _ := fn(p); ok {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, si := fn(out[i])
		_, sj := fn(out[j])
		if si != sj {
			return si > sj
		}
		return out[i].Key().Less(out[j].Key())
	})
	return out
}

// slotWeight emphasizes the top of the order; slots past the configured
// weights count at face value.
func slotWeight(weights []float64, slot int) float64 {
	if slot < len(weights) {
		return weights[slot]
	}
	return 1.0
}

// rankPlayers assigns league-wide and within-team ranks for both scores.
// Ranks use the min method, so ties share the best position; players who do
// not qualify for a ranking get the sentinel instead.
func (a *Aggregator) rankPlayers(players []model.ProjectedPlayerRecord) {
	assign := func(qualify func(*model.ProjectedPlayerRecord) bool,
		score func(*model.ProjectedPlayerRecord) float64,
		set func(p *model.ProjectedPlayerRecord, league, team int)) {

		var scores []float64
		teamScores := make(map[string][]float64)
		for i := range players {
			p := &players[i]
			if !qualify(p) {
				continue
			}
			s := score(p)
			scores = append(scores, s)
			teamScores[p.Team] = append(teamScores[p.Team], s)
		}
		for i := range players {
			p := &players[i]
			if !qualify(p) {
				set(p, NonQualifierRank, NonQualifierRank)
				continue
			}
			s := score(p)
			set(p, minRankDesc(scores, s), minRankDesc(teamScores[p.Team], s))
		}
	}

	assign(
		func(p *model.ProjectedPlayerRecord) bool { return p.IsBatter },
		func(p *model.ProjectedPlayerRecord) float64 { return p.RCScore },
		func(p *model.ProjectedPlayerRecord, league, team int) {
			p.OffensiveRank, p.OffensiveRankTeam = league, team
		},
	)
	assign(
		func(p *model.ProjectedPlayerRecord) bool { return p.IsPitcher },
		func(p *model.ProjectedPlayerRecord) float64 { return p.PitchingScore },
		func(p *model.ProjectedPlayerRecord, league, team int) {
			p.PitchingRank, p.PitchingRankTeam = league, team
		},
	)
}

// minRankDesc is the descending min-method rank of s within scores:
// 1 plus the count of strictly larger values.
func minRankDesc(scores []float64, s float64) int {
	rank := 1
	for _, v := range scores {
		if v > s {
			rank++
		}
	}
	return rank
}

// normalize scales raw scores to 0-100 indices against the league leader.
func (a *Aggregator) normalize(teams []model.TeamStrength) {
	var maxOff, maxPit float64
	for i := range teams {
		if teams[i].OffenseRaw > maxOff {
			maxOff = teams[i].OffenseRaw
		}
		if teams[i].PitchingRaw > maxPit {
			maxPit = teams[i].PitchingRaw
		}
	}
	for i := range teams {
		t := &teams[i]
		if maxOff > 0 {
			t.OffenseIndex = 100 * t.OffenseRaw / maxOff
		}
		if maxPit > 0 {
			t.PitchingIndex = 100 * t.PitchingRaw / maxPit
		}
		t.PowerIndex = (t.OffenseIndex + t.PitchingIndex) / 2
	}
}

// labelComposition tags rosters in the league's top tenure quartile as
// veteran and the bottom quartile as rebuilding.
func labelComposition(teams []model.TeamStrength) {
	if len(teams) < 2 {
		return
	}
	tenures := make([]float64, len(teams))
	for i := range teams {
		tenures[i] = float64(teams[i].TotalTenure)
	}
	sort.Float64s(tenures)
	hi := quantileLinear(tenures, 0.75)
	lo := quantileLinear(tenures, 0.25)

	for i := range teams {
		t := &teams[i]
		switch {
		case float64(t.TotalTenure) >= hi:
			t.CompositionLabel = "Veteran"
		case float64(t.TotalTenure) <= lo:
			t.CompositionLabel = "Rebuilding"
		}
	}
}

// quantileLinear interpolates linearly between order statistics, so quartile
// thresholds land between observed totals instead of on them.
func quantileLinear(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := p * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
