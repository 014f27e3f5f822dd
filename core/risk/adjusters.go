package risk

import "github.com/kilianp07/pitchstream/core/model"

// RateAdjuster transforms an HR/9 rate for one aspect of the matchup. The
// calculator applies its adjusters in registration order; each must be pure.
type RateAdjuster func(rate float64, m Matchup) float64

// OpponentAdjuster scales the rate by the opposing lineup's HR tendency
// relative to league average.
func OpponentAdjuster(rate float64, m Matchup) float64 {
	return rate * (m.OpponentHRRate() / model.LeagueAvgHRRate)
}

// ParkAdjuster scales the rate by the venue HR factor.
func ParkAdjuster(rate float64, m Matchup) float64 {
	return rate * m.ParkFactor()
}

// BattedBallAdjuster rewards ground-ball profiles and penalizes fly-ball
// profiles.
func BattedBallAdjuster(rate float64, m Matchup) float64 {
	switch {
	case m.Pitcher.GroundBaller():
		return rate * 0.85
	case m.Pitcher.FlyBaller():
		return rate * 1.15
	}
	return rate
}

// DefaultAdjusters is the standard adjustment sequence: opponent, park,
// batted-ball profile.
func DefaultAdjusters() []RateAdjuster {
	return []RateAdjuster{OpponentAdjuster, ParkAdjuster, BattedBallAdjuster}
}
