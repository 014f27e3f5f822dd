package engine

import "math"

// NewsvendorReserve decides how many adds to hold back for emergencies
// (injured-list moves, rainouts, surprise openers). The target is the
// newsvendor quantile of the emergency-need distribution: keep reserving while
// the cost of being caught short exceeds the cost of a forfeited add.
type NewsvendorReserve struct {
	// UnderageCost is the expected points lost when an emergency hits with no
	// add left. OverageCost is the value forfeited by an unused add.
	UnderageCost float64
	OverageCost  float64

	// Expected emergency needs contributed per injured-list and day-to-day
	// player on the roster.
	ILWeight  float64
	DTDWeight float64
}

// NewNewsvendorReserve returns a reserve policy with the default cost ratio.
func NewNewsvendorReserve() *NewsvendorReserve {
	return &NewsvendorReserve{
		UnderageCost: 25,
		OverageCost:  12,
		ILWeight:     0.5,
		DTDWeight:    0.25,
	}
}

// CriticalFractile is the service level Cu/(Cu+Co).
func (r *NewsvendorReserve) CriticalFractile() float64 {
	if r.UnderageCost+r.OverageCost <= 0 {
		return 0
	}
	return r.UnderageCost / (r.UnderageCost + r.OverageCost)
}

// Target returns the adds to hold back given current roster fragility.
// Emergency needs are modeled as Poisson; the target is the smallest k whose
// CDF reaches the critical fractile.
func (r *NewsvendorReserve) Target(ilCount, dtdCount int) int {
	lambda := r.ILWeight*float64(ilCount) + r.DTDWeight*float64(dtdCount)
	if lambda <= 0 {
		return 0
	}
	fractile := r.CriticalFractile()

	cdf := math.Exp(-lambda)
	term := cdf
	k := 0
	for cdf < fractile && k < 10 {
		k++
		term *= lambda / float64(k)
		cdf += term
	}
	return k
}

// Allow reports whether spending an add now is acceptable: always for a
// start happening today, otherwise only while the remaining budget stays
// above the reserve target.
func (r *NewsvendorReserve) Allow(budgetRemaining, reserveTarget int, mustActToday bool) bool {
	if mustActToday {
		return budgetRemaining > 0
	}
	return budgetRemaining > reserveTarget
}
