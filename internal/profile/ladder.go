package profile

// Ladder walks a descending sequence of percentile tiers, handing out one
// tier per backfill slot. Once the sequence is exhausted every further slot
// repeats the final tier, so a deep backfill bottoms out at replacement
// level instead of running dry.
type Ladder struct {
	tiers []float64
	pos   int
}

func NewLadder(tiers []float64) *Ladder {
	return &Ladder{tiers: tiers}
}

// Next returns the tier for the next slot and advances the cursor.
func (l *Ladder) Next() float64 {
	if len(l.tiers) == 0 {
		return 0
	}
	if l.pos >= len(l.tiers) {
		return l.tiers[len(l.tiers)-1]
	}
	t := l.tiers[l.pos]
	l.pos++
	return t
}

// Reset rewinds the cursor for the next team.
func (l *Ladder) Reset() {
	l.pos = 0
}
