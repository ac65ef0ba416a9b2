package strength

import "github.com/tmessick/prepball/internal/model"

// RCScore is the runs-created estimate for a projected stat line:
// (H + BB) * TB / (AB + BB), with total bases expanded from the hit mix.
// A zero denominator scores zero rather than dividing.
func RCScore(r *model.ProjectedPlayerRecord) float64 {
	h := r.Val("H")
	bb := r.Val("BB")
	ab := r.Val("AB")

	tb := h + r.Val("2B") + 2*r.Val("3B") + 3*r.Val("HR")
	denom := ab + bb
	if denom <= 0 {
		return 0
	}
	return (h + bb) * tb / denom
}

// PitchingScore is a workload-weighted dominance estimate: innings carry the
// base value, strikeouts add, free passes and earned runs subtract.
func PitchingScore(r *model.ProjectedPlayerRecord) float64 {
	return 1.5*r.Val("IP") + r.Val("K_P") - r.Val("BB_P") - 2*r.Val("ER")
}
