package model

import "math"

// Innings pitched is persisted in baseball fractional-thirds notation:
// 4.0 = four innings, 4.1 = four innings one out, 4.2 = four innings two
// outs. Treating the field as a base-10 decimal inflates totals, so all
// arithmetic converts to true decimal thirds first and converts back
// before persisting.

// InningsFromNotation converts fractional-thirds notation to true decimal
// innings (4.1 -> 4.333...). Stray fractional digits are clamped to the
// nearest legal out count.
func InningsFromNotation(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	whole := math.Floor(v + 1e-9)
	outs := math.Round((v - whole) * 10)
	if outs < 0 {
		outs = 0
	}
	if outs > 2 {
		outs = 2
	}
	return whole + outs/3.0
}

// InningsToNotation converts true decimal innings back to fractional-thirds
// notation, rounding to the nearest out.
func InningsToNotation(d float64) float64 {
	if math.IsNaN(d) || d <= 0 {
		return 0
	}
	totalOuts := math.Round(d * 3)
	whole := math.Floor(totalOuts / 3)
	outs := totalOuts - whole*3
	return whole + outs/10
}
