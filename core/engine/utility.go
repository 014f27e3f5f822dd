package engine

import "math"

// RiskAdaptiveUtility shifts risk appetite with the matchup situation. A
// manager projected to win comfortably should bank safe floors; one projected
// to lose needs variance to have a chance.
type RiskAdaptiveUtility struct {
	// Scale converts a projected point differential into the risk parameter.
	Scale float64
}

// NewRiskAdaptiveUtility returns the default utility mapping.
func NewRiskAdaptiveUtility() *RiskAdaptiveUtility {
	return &RiskAdaptiveUtility{Scale: 25}
}

// Theta maps the projected differential (own minus opponent) to the risk
// parameter in [-3, 3]. Positive means risk-averse, negative risk-seeking.
func (u *RiskAdaptiveUtility) Theta(scoreDiff float64) float64 {
	scale := u.Scale
	if scale <= 0 {
		scale = 25
	}
	return math.Max(-3, math.Min(3, scoreDiff/scale))
}

// AdjustedValue applies mean-variance utility: mean - 0.5*theta*std.
func (u *RiskAdaptiveUtility) AdjustedValue(mean, std, scoreDiff float64) float64 {
	return mean - 0.5*u.Theta(scoreDiff)*std
}
