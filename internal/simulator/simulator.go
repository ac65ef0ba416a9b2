// Package simulator plays out scheduled games as Monte Carlo trials. Team
// strength composites become league-relative offense and pitching indices;
// each matchup turns those into expected run rates, and per-trial run totals
// are drawn from a negative binomial so blowouts and duds show up at
// realistic frequency.
package simulator

import (
	"math"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
)

// Index is a team's league-average-relative strength pair.
type Index struct {
	Offense  float64
	Pitching float64
}

// Simulator holds the league index table and a seeded random source.
type Simulator struct {
	cfg *config.Config
	log *logrus.Logger
	rng *rand.Rand

	indices map[string]Index // keyed by normalized team name
}

// New builds a simulator from the league power table. Raw scores are scaled
// so the league average sits at 1.0, then floored; a team at the floor still
// scores occasionally instead of never.
func New(cfg *config.Config, log *logrus.Logger, teams []model.TeamStrength, seed uint64) *Simulator {
	s := &Simulator{
		cfg:     cfg,
		log:     log,
		rng:     rand.New(rand.NewSource(seed)),
		indices: make(map[string]Index, len(teams)),
	}

	var offSum, pitSum float64
	for i := range teams {
		offSum += teams[i].OffenseRaw
		pitSum += teams[i].PitchingRaw
	}
	n := float64(len(teams))
	offAvg, pitAvg := offSum/math.Max(n, 1), pitSum/math.Max(n, 1)

	for i := range teams {
		t := &teams[i]
		idx := Index{Offense: 1.0, Pitching: 1.0}
		if offAvg > 0 {
			idx.Offense = t.OffenseRaw / offAvg
		}
		if pitAvg > 0 {
			idx.Pitching = t.PitchingRaw / pitAvg
		}
		idx.Offense = math.Max(idx.Offense, cfg.Simulation.IndexFloor)
		idx.Pitching = math.Max(idx.Pitching, cfg.Simulation.IndexFloor)
		s.indices[normalize(t.Team)] = idx
	}
	return s
}

func normalize(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}

// stripParens drops a trailing parenthetical, the common "(City, ST)"
// disambiguation suffix schedules leave off.
func stripParens(team string) string {
	if i := strings.Index(team, "("); i > 0 {
		return strings.TrimSpace(team[:i])
	}
	return strings.TrimSpace(team)
}

// Resolve finds a scheduled opponent's index. Exact normalized match first,
// then a substring match with the parenthetical suffixes stripped, and
// finally a below-average generic opponent for teams outside the projected
// league.
func (s *Simulator) Resolve(team string) (Index, bool) {
	if idx, ok := s.indices[normalize(team)]; ok {
		return idx, true
	}
	want := normalize(stripParens(team))
	if want != "" {
		var names []string
		for name := range s.indices {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			have := normalize(stripParens(name))
			if strings.Contains(have, want) || strings.Contains(want, have) {
				return s.indices[name], true
			}
		}
	}
	if s.log != nil {
		s.log.WithField("team", team).Warn("opponent not in projection, using generic strength")
	}
	return Index{
		Offense:  s.cfg.Simulation.GenericOffense,
		Pitching: s.cfg.Simulation.GenericPitching,
	}, false
}

// runRate is the expected runs for an offense facing a pitching staff:
// the league-average run environment scaled up by offense quality and down
// by opponent pitching quality, both dampened by the square root so a
// lopsided index difference does not explode the score.
func (s *Simulator) runRate(offense, oppPitching float64) float64 {
	return s.cfg.Simulation.BaseRuns * math.Sqrt(offense) / math.Sqrt(oppPitching)
}

// sampleRuns draws one game's run total. The negative binomial comes from a
// gamma-poisson mixture with mean lambda and variance lambda*d, where d is
// the configured dispersion; d is floored just above 1 because d = 1
// collapses to a plain poisson.
func (s *Simulator) sampleRuns(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	d := math.Max(s.cfg.Simulation.Dispersion, 1.01)
	r := lambda / (d - 1)

	g := distuv.Gamma{Alpha: r, Beta: 1 / (d - 1), Src: s.rng}
	p := distuv.Poisson{Lambda: g.Rand(), Src: s.rng}
	return int(p.Rand())
}

// SimulateGame runs the configured number of trials for one matchup and
// reports it from the focus team's perspective.
func (s *Simulator) SimulateGame(focus, opponent string, home bool, date string) model.GameResult {
	us, _ := s.Resolve(focus)
	them, _ := s.Resolve(opponent)

	ourRate := s.runRate(us.Offense, them.Pitching)
	theirRate := s.runRate(them.Offense, us.Pitching)
	if home {
		ourRate *= s.cfg.Simulation.HomeAdvantage
	} else {
		theirRate *= s.cfg.Simulation.HomeAdvantage
	}

	trials := s.cfg.Simulation.Trials
	wins, runsFor, runsVs := 0.0, 0, 0
	for t := 0; t < trials; t++ {
		ours := s.sampleRuns(ourRate)
		theirs := s.sampleRuns(theirRate)
		runsFor += ours
		runsVs += theirs
		switch {
		case ours > theirs:
			wins++
		case ours == theirs:
			// No ties in baseball: extra innings as a coin flip.
			if s.rng.Float64() < 0.5 {
				wins++
			}
		}
	}

	winPct := wins / float64(trials)
	return model.GameResult{
		Date:        date,
		Opponent:    opponent,
		HomeGame:    home,
		WinPct:      winPct,
		AvgRunsFor:  float64(runsFor) / float64(trials),
		AvgRunsVs:   float64(runsVs) / float64(trials),
		Confidence:  confidence(winPct),
		Analysis:    analysis(us, them, home),
		OffIndex:    us.Offense,
		PitIndex:    us.Pitching,
		OppOffIndex: them.Offense,
		OppPitIndex: them.Pitching,
	}
}

// matchesFocus accepts schedule spellings that differ from the focus name by
// a suffix, the same loose rule opponent resolution uses.
func matchesFocus(listed, focusKey string) bool {
	have := normalize(stripParens(listed))
	if have == focusKey {
		return true
	}
	return have != "" && focusKey != "" &&
		(strings.Contains(have, focusKey) || strings.Contains(focusKey, have))
}

// SimulateSeason simulates the focus team's full schedule. Each trial
// universe replays every game, so the win-total distribution reflects
// whole-season variance, not per-game averages.
func (s *Simulator) SimulateSeason(focus string, schedule []model.ScheduledGame) ([]model.GameResult, model.SeasonResult) {
	focusKey := normalize(stripParens(focus))
	var results []model.GameResult
	for _, g := range schedule {
		home := matchesFocus(g.Home, focusKey)
		away := !home && matchesFocus(g.Away, focusKey)
		if !home && !away {
			continue
		}
		opponent := g.Away
		if away {
			opponent = g.Home
		}
		results = append(results, s.SimulateGame(focus, opponent, home, g.Date))
	}

	trials := s.cfg.Simulation.Trials
	winTotals := make([]float64, trials)
	for t := 0; t < trials; t++ {
		for _, g := range results {
			if s.rng.Float64() < g.WinPct {
				winTotals[t]++
			}
		}
	}
	sort.Float64s(winTotals)

	season := model.SeasonResult{
		Games:  len(results),
		Trials: trials,
	}
	if len(results) > 0 {
		sum := 0.0
		for _, w := range winTotals {
			sum += w
		}
		season.MeanWins = sum / float64(trials)
		season.FloorWins = quantileLinear(winTotals, 0.10)
		season.CeilingWins = quantileLinear(winTotals, 0.90)
	}

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"stage": "simulation",
			"team":  focus,
			"games": season.Games,
			"mean":  season.MeanWins,
		}).Info("simulated season")
	}
	return results, season
}

// confidence buckets a win probability into a betting-style label.
func confidence(winPct float64) string {
	switch {
	case winPct > 0.90:
		return "Lock W"
	case winPct > 0.65:
		return "Solid W"
	case winPct < 0.10:
		return "Lock L"
	case winPct < 0.35:
		return "Solid L"
	default:
		return "Toss-up"
	}
}

// analysis names the index edges in the matchup, plus the venue when it
// favors us.
func analysis(us, them Index, home bool) string {
	offEdge := us.Offense - them.Pitching
	pitEdge := us.Pitching - them.Offense

	describe := func(edge float64, strong, weak string) string {
		switch {
		case edge > 0.25:
			return strong
		case edge < -0.25:
			return weak
		default:
			return ""
		}
	}

	var notes []string
	if n := describe(offEdge, "lineup overpowers their staff", "their staff shuts down our lineup"); n != "" {
		notes = append(notes, n)
	}
	if n := describe(pitEdge, "our staff controls their lineup", "their lineup gets to our staff"); n != "" {
		notes = append(notes, n)
	}
	if home {
		notes = append(notes, "home field")
	}
	if len(notes) == 0 {
		return "evenly matched"
	}
	return strings.Join(notes, "; ")
}

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
