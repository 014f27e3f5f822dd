package model

// RiskTier classifies a matchup by disaster probability. Ordering matters:
// lower values are safer. NoGo is forced by hard filters and must be treated
// as infeasible by the optimizer, not merely low-scoring.
type RiskTier int

const (
	TierElite RiskTier = iota
	TierSafe
	TierModerate
	TierRisky
	TierDangerous
	TierNoGo
)

func (t RiskTier) String() string {
	switch t {
	case TierElite:
		return "elite"
	case TierSafe:
		return "safe"
	case TierModerate:
		return "moderate"
	case TierRisky:
		return "risky"
	case TierDangerous:
		return "dangerous"
	case TierNoGo:
		return "no_go"
	}
	return "unknown"
}

// SnipeTier buckets a candidate's desirability to competing managers.
type SnipeTier int

const (
	SnipeMinimal SnipeTier = iota
	SnipeLow
	SnipeModerate
	SnipeHigh
	SnipeElite
)

// snipeLambdas maps each tier to its daily removal intensity. Elite adds get
// claimed within a couple of days; deep streamers almost never are.
var snipeLambdas = map[SnipeTier]float64{
	SnipeElite:    0.45,
	SnipeHigh:     0.28,
	SnipeModerate: 0.15,
	SnipeLow:      0.08,
	SnipeMinimal:  0.03,
}

// Lambda returns the daily snipe intensity for the tier.
func (t SnipeTier) Lambda() float64 {
	if l, ok := snipeLambdas[t]; ok {
		return l
	}
	return snipeLambdas[SnipeModerate]
}

func (t SnipeTier) String() string {
	switch t {
	case SnipeElite:
		return "elite"
	case SnipeHigh:
		return "high"
	case SnipeModerate:
		return "moderate"
	case SnipeLow:
		return "low"
	case SnipeMinimal:
		return "minimal"
	}
	return "unknown"
}

// ParseSnipeTier converts a feed string into a tier, defaulting to moderate.
func ParseSnipeTier(s string) SnipeTier {
	switch s {
	case "elite":
		return SnipeElite
	case "high":
		return SnipeHigh
	case "low":
		return SnipeLow
	case "minimal":
		return SnipeMinimal
	default:
		return SnipeModerate
	}
}
