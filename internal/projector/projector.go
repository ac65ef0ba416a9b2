// Package projector rolls a base-season roster one year forward. Returning
// players advance a class and a varsity year and have their stat lines
// scaled by learned development multipliers; graduating seniors drop off;
// thin rosters are backfilled with generic replacement-level players drawn
// from percentile-tier profiles.
package projector

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tmessick/prepball/internal/config"
	"github.com/tmessick/prepball/internal/model"
	"github.com/tmessick/prepball/internal/profile"
)

// Projector applies multiplier tables and profiles to a base season.
type Projector struct {
	cfg      *config.Config
	log      *logrus.Logger
	pooled   *model.MultiplierTable
	elite    *model.MultiplierTable
	standard *model.MultiplierTable
	profiles []model.GenericProfile
}

// Diagnostics summarizes the adjustments made during one projection run.
type Diagnostics struct {
	Returning     int
	Graduated     int
	Regressed     int // players with a multiplier pulled toward 1.0 for high volume
	Capped        int // players with at least one stat clipped at its ceiling
	BackfillSlots int // synthetic players added
}

func New(cfg *config.Config, log *logrus.Logger, pooled, elite, standard *model.MultiplierTable, profiles []model.GenericProfile) *Projector {
	return &Projector{
		cfg: cfg, log: log,
		pooled: pooled, elite: elite, standard: standard,
		profiles: profiles,
	}
}

// Project rolls the given base-season records forward one year and returns
// the projected roster sorted by team then name.
func (p *Projector) Project(base []model.PlayerSeasonRecord) ([]model.ProjectedPlayerRecord, Diagnostics) {
	var diag Diagnostics
	var out []model.ProjectedPlayerRecord

	for i := range base {
		r := &base[i]
		if r.Class == model.ClassSenior || r.Class == model.ClassUnknown {
			diag.Graduated++
			continue
		}
		out = append(out, p.projectPlayer(r, &diag))
		diag.Returning++
	}

	out = p.backfill(out, &diag)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Name < out[j].Name
	})

	if p.log != nil {
		p.log.WithFields(logrus.Fields{
			"stage":     "projection",
			"returning": diag.Returning,
			"graduated": diag.Graduated,
			"regressed": diag.Regressed,
			"capped":    diag.Capped,
			"backfill":  diag.BackfillSlots,
		}).Info("projected roster")
	}
	return out, diag
}

// tierTable picks the multiplier table for a team, falling back to the
// pooled table when the tier split has no data.
func (p *Projector) tierTable(team string) *model.MultiplierTable {
	t := p.standard
	if p.cfg.IsElite(team) {
		t = p.elite
	}
	if t.Empty() {
		return p.pooled
	}
	return t
}

// lookupTransition finds the multipliers governing a player's advance. Class
// cohorts are the largest and most stable, so they win; the combined
// class-and-tenure cohort refines them; the pooled tenure cohort is the
// catch-all for odd class sequences.
func (p *Projector) lookupTransition(r *model.PlayerSeasonRecord) (model.Transition, string) {
	table := p.tierTable(r.Team)

	name := fmt.Sprintf("%s_to_%s", r.Class, r.Class.Next())
	if tr, ok := table.Lookup(name); ok {
		return tr, model.MethodClass
	}

	name = fmt.Sprintf("%s_Y%d_to_%s_Y%d", r.Class, r.Tenure, r.Class.Next(), r.Tenure+1)
	if tr, ok := table.Lookup(name); ok {
		return tr, model.MethodClassTenure
	}

	name = fmt.Sprintf("Varsity_Year%d_to_Year%d", r.Tenure, r.Tenure+1)
	if tr, ok := p.pooled.Lookup(name); ok {
		return tr, model.MethodTenure
	}

	return model.Transition{}, model.MethodDefault
}

func (p *Projector) projectPlayer(r *model.PlayerSeasonRecord, diag *Diagnostics) model.ProjectedPlayerRecord {
	tr, method := p.lookupTransition(r)
	regressed, capped := false, false

	proj := model.ProjectedPlayerRecord{
		PlayerSeasonRecord: model.PlayerSeasonRecord{
			Name:   r.Name,
			Team:   r.Team,
			Season: r.Season + 1,
			Class:  r.Class.Next(),
			Tenure: r.Tenure + 1,
			Elite:  p.cfg.IsElite(r.Team),
		},
		Method: method,
	}

	for code, prior := range r.Stats {
		def, ok := p.cfg.Stat(code)
		if !ok {
			continue
		}
		v := prior
		if method != model.MethodDefault {
			m := 1.0
			if sm, ok := tr.Stats[code]; ok {
				m = sm.Ratio
			}
			if reg := p.regress(r, def, m); reg != m {
				m = reg
				regressed = true
			}
			// Survivorship haircut: qualifying for a learned transition at
			// all implies the player stayed on the roster, a selection the
			// raw ratios overstate.
			v = prior * m * p.cfg.Projection.SurvivorshipAdjustment
		}
		if ceiling, ok := p.cfg.Projection.Caps[code]; ok && v > ceiling {
			v = ceiling
			capped = true
		}
		proj.SetStat(code, v)
	}
	if regressed {
		diag.Regressed++
	}
	if capped {
		diag.Capped++
	}

	proj.IsBatter = proj.Val("AB") >= p.cfg.Roles.BatterABMin
	proj.IsPitcher = proj.Val("IP") >= p.cfg.Roles.PitcherIPMin
	return proj
}

// regress pulls an optimistic multiplier toward 1.0 for underclassmen whose
// prior-season volume already looks like a full-time role. Their observed
// cohorts are dominated by part-timers growing into playing time, a path a
// high-volume player has already finished.
func (p *Projector) regress(r *model.PlayerSeasonRecord, def config.StatDef, m float64) float64 {
	if m <= 1.0 {
		return m
	}
	if r.Class != model.ClassFreshman && r.Class != model.ClassSophomore {
		return m
	}

	volume, threshold := r.Val("PA"), p.cfg.Projection.HighVolumePA
	if def.Category == config.CategoryPitching {
		volume, threshold = r.Val("IP"), p.cfg.Projection.HighVolumeIP
	}
	if threshold <= 0 || volume <= threshold {
		return m
	}

	excess := (volume - threshold) / threshold
	if excess > 1.0 {
		excess = 1.0
	}
	return m + (1.0-m)*excess*p.cfg.Projection.RegressionStrength
}

// backfill tops up each projected roster to the configured batter and
// pitcher minimums with synthetic players, walking the tier ladder from the
// top. Elite programs reload with better incoming talent, so they draw from
// a higher ladder.
func (p *Projector) backfill(roster []model.ProjectedPlayerRecord, diag *Diagnostics) []model.ProjectedPlayerRecord {
	type counts struct {
		batters  int
		pitchers int
		season   int
	}
	byTeam := make(map[string]*counts)
	for i := range roster {
		r := &roster[i]
		c, ok := byTeam[r.Team]
		if !ok {
			c = &counts{season: r.Season}
			byTeam[r.Team] = c
		}
		if r.IsBatter {
			c.batters++
		}
		if r.IsPitcher {
			c.pitchers++
		}
	}

	teams := make([]string, 0, len(byTeam))
	for t := range byTeam {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	for _, team := range teams {
		c := byTeam[team]
		elite := p.cfg.IsElite(team)
		ladderTiers := p.cfg.Projection.StandardLadder
		if elite {
			ladderTiers = p.cfg.Projection.EliteLadder
		}

		batterLadder := profile.NewLadder(ladderTiers)
		for slot := 1; c.batters < p.cfg.Projection.MinBatters; slot++ {
			rec, ok := p.syntheticPlayer(team, c.season, model.RoleBatter, batterLadder, elite, slot)
			if !ok {
				break
			}
			roster = append(roster, rec)
			c.batters++
			diag.BackfillSlots++
		}

		pitcherLadder := profile.NewLadder(ladderTiers)
		for slot := 1; c.pitchers < p.cfg.Projection.MinPitchers; slot++ {
			rec, ok := p.syntheticPlayer(team, c.season, model.RolePitcher, pitcherLadder, elite, slot)
			if !ok {
				break
			}
			roster = append(roster, rec)
			c.pitchers++
			diag.BackfillSlots++
		}
	}
	return roster
}

func (p *Projector) syntheticPlayer(team string, season int, role model.Role, ladder *profile.Ladder, elite bool, slot int) (model.ProjectedPlayerRecord, bool) {
	tier := ladder.Next()
	prof, ok := profile.Find(p.profiles, role, tier)
	if !ok {
		prof, ok = profile.Nearest(p.profiles, role, tier)
	}
	if !ok {
		if p.log != nil {
			p.log.WithFields(logrus.Fields{"team": team, "role": role}).
				Warn("no generic profiles available, leaving roster short")
		}
		return model.ProjectedPlayerRecord{}, false
	}

	rec := model.ProjectedPlayerRecord{
		PlayerSeasonRecord: model.PlayerSeasonRecord{
			Name:   fmt.Sprintf("Generic %s %d (%.0fth)", role, slot, prof.Tier*100),
			Team:   team,
			Season: season,
			Class:  prof.Class,
			Tenure: prof.Tenure,
			Elite:  elite,
		},
		Method:        model.MethodBackfill,
		Synthetic:     true,
		BackfillElite: elite,
		TierLabel:     prof.Tier,
	}
	for code, v := range prof.Stats {
		rec.SetStat(code, v)
	}
	rec.IsBatter = role == model.RoleBatter
	rec.IsPitcher = role == model.RolePitcher
	return rec, true
}
