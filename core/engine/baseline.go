package engine

import "github.com/kilianp07/pitchstream/core/model"

// SimpleBaseline is the naive additive score an experienced manager might
// compute by eye. It exists as a sanity reference next to the quantitative
// path, never as an input to it.
type SimpleBaseline struct{}

// Score sums the obvious signals: raw expected points, a two-start bonus, a
// tier adjustment and an ownership discount (highly owned means hard to get).
func (SimpleBaseline) Score(c model.Candidate) float64 {
	score := c.TotalExpectedPoints()
	if c.IsTwoStart() {
		score += 10
	}
	switch c.Tier {
	case model.TierElite:
		score += 8
	case model.TierSafe:
		score += 4
	case model.TierRisky:
		score -= 5
	case model.TierDangerous:
		score -= 12
	case model.TierNoGo:
		return 0
	}
	score -= c.OwnershipPct * 0.1
	if score < 0 {
		score = 0
	}
	return score
}
