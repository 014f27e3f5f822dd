package risk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/kilianp07/pitchstream/core/model"
)

// DisasterThreshold is the HR count in a single outing considered
// catastrophic. Three homers is roughly -40 points after the cascade of hits
// and short innings that comes with them.
const DisasterThreshold = 3

const (
	minAdjustedHRPer9 = 0.5
	maxAdjustedHRPer9 = 3.0
)

// Assessment is the full risk picture for one candidate start.
type Assessment struct {
	Pitcher  string
	Opponent string

	Expected float64
	Floor    float64
	Ceiling  float64

	DisasterProb float64
	BlowupProb   float64
	Variance     float64

	Tier         model.RiskTier
	RiskScore    float64 // 0-100, higher is riskier
	RiskAdjusted float64

	Recommendation string
	Warnings       []string
	LowConfidence  bool
}

func (a Assessment) String() string {
	return fmt.Sprintf("%s vs %s: EV=%.1f [%.1f to %.1f] disaster=%.1f%% %s",
		a.Pitcher, a.Opponent, a.Expected, a.Floor, a.Ceiling, a.DisasterProb*100, a.Tier)
}

// Calculator derives floor, ceiling and disaster probability for a matchup.
// HR allowed is modeled as Poisson with lambda from the adjusted HR/9 and
// expected innings; the disaster probability is the upper tail at the
// threshold.
type Calculator struct {
	aversion  float64
	adjusters []RateAdjuster

	// Hard filter limits. Crossing either forces the NoGo tier.
	MaxDisasterProb float64
	MaxBlowupProb   float64
	MinStarts       int

	// CatastrophePenalty is the extra point penalty applied per unit of
	// disaster probability in the risk-adjusted value.
	CatastrophePenalty float64
}

// NewCalculator returns a calculator with the default adjustment sequence.
// aversion controls how much variance is penalized (0 neutral, 2 very
// conservative).
func NewCalculator(aversion float64) *Calculator {
	return NewCalculatorWithAdjusters(aversion, DefaultAdjusters())
}

// NewCalculatorWithAdjusters allows a custom ordered adjuster sequence.
func NewCalculatorWithAdjusters(aversion float64, adjusters []RateAdjuster) *Calculator {
	return &Calculator{
		aversion:           aversion,
		adjusters:          adjusters,
		MaxDisasterProb:    0.30,
		MaxBlowupProb:      0.50,
		MinStarts:          3,
		CatastrophePenalty: 30,
	}
}

// AdjustedHRPer9 applies the adjuster sequence to the pitcher's baseline
// HR/9 and clamps the result to a sane range.
func (c *Calculator) AdjustedHRPer9(m Matchup) float64 {
	rate := m.Pitcher.HRPer9
	for _, adj := range c.adjusters {
		rate = adj(rate, m)
	}
	return math.Min(maxAdjustedHRPer9, math.Max(minAdjustedHRPer9, rate))
}

// Assess computes the full risk assessment for a matchup. Missing stats are
// substituted with league averages and flagged, never excluded.
func (c *Calculator) Assess(m Matchup) Assessment {
	lowConfidence := FillDefaults(&m)
	if m.Pitcher.Starts > 0 && m.Pitcher.Starts < c.MinStarts {
		lowConfidence = true
	}

	adjHR := c.AdjustedHRPer9(m)
	expectedHR := adjHR / 9.0 * m.ExpectedIP

	disaster := poissonTail(expectedHR, DisasterThreshold)
	expected, floor, ceiling, variance := c.pointDistribution(m, adjHR)
	blowup := blowupProb(expected, expectedHR)

	tier := c.classify(m, disaster, blowup)
	adjusted := expected - c.aversion*math.Sqrt(variance) - disaster*c.CatastrophePenalty

	a := Assessment{
		Pitcher:       m.Pitcher.Name,
		Opponent:      m.Opponent,
		Expected:      expected,
		Floor:         floor,
		Ceiling:       ceiling,
		DisasterProb:  disaster,
		BlowupProb:    blowup,
		Variance:      variance,
		Tier:          tier,
		RiskScore:     riskScore(disaster, blowup, variance),
		RiskAdjusted:  adjusted,
		LowConfidence: lowConfidence,
	}
	a.Warnings = c.warnings(m, disaster, tier)
	a.Recommendation = recommendation(tier, expected, adjusted, disaster)
	return a
}

// poissonTail returns P(X >= threshold) for X ~ Poisson(lambda).
func poissonTail(lambda float64, threshold int) float64 {
	if lambda <= 0 {
		return 0
	}
	p := distuv.Poisson{Lambda: lambda}
	return 1 - p.CDF(float64(threshold-1))
}

// blowupProb approximates P(points < 0) with a normal whose variance is
// dominated by the Poisson HR variance.
func blowupProb(expectedPts, expectedHR float64) float64 {
	variance := model.PointsPerHR*model.PointsPerHR*expectedHR + 100
	n := distuv.Normal{Mu: expectedPts, Sigma: math.Sqrt(variance)}
	return n.CDF(0)
}

// pointDistribution returns expected points plus pessimistic and optimistic
// outings. Floor: two fewer innings, 1.5 extra HR, fewer strikeouts.
// Ceiling: deeper outing, 0.8 fewer HR, more strikeouts.
func (c *Calculator) pointDistribution(m Matchup, adjHR float64) (expected, floor, ceiling, variance float64) {
	ip := m.ExpectedIP
	adjK := m.Pitcher.KPer9 * (m.OpponentKRate() / model.LeagueAvgKRate)

	expK := adjK / 9.0 * ip
	expBB := m.Pitcher.BBPer9 / 9.0 * ip
	expHR := adjHR / 9.0 * ip
	expH := 8.0 / 9.0 * ip

	points := func(ip, k, bb, hr, h float64) float64 {
		return model.PointsPerIP*ip + model.PointsPerK*k + model.PointsPerBB*bb +
			model.PointsPerHR*hr + model.PointsPerHit*h
	}

	expected = points(ip, expK, expBB, expHR, expH)
	floor = points(math.Max(2, ip-2), math.Max(0, expK-2), expBB+1, expHR+1.5, expH+2)
	ceiling = points(math.Min(9, ip+1.5), expK+3, math.Max(0, expBB-1), math.Max(0, expHR-0.8), math.Max(0, expH-2))
	variance = math.Pow((ceiling-floor)/3.3, 2)
	return expected, floor, ceiling, variance
}

// classify maps probabilities to a tier. Hard filters win unconditionally.
func (c *Calculator) classify(m Matchup, disaster, blowup float64) model.RiskTier {
	if disaster > c.MaxDisasterProb || blowup > c.MaxBlowupProb {
		return model.TierNoGo
	}
	if m.Pitcher.Starts > 0 && m.Pitcher.Starts < c.MinStarts {
		return model.TierNoGo
	}
	if model.EliteOffenses[m.Opponent] && model.DangerParks[m.Park] && m.Pitcher.FBRate > 0.38 {
		return model.TierNoGo
	}

	switch {
	case disaster < 0.05:
		return model.TierElite
	case disaster < 0.10:
		return model.TierSafe
	case disaster < 0.15:
		return model.TierModerate
	case disaster < 0.25:
		return model.TierRisky
	default:
		return model.TierDangerous
	}
}

func riskScore(disaster, blowup, variance float64) float64 {
	score := disaster*200 + blowup*50 + math.Min(15, variance/100)
	return math.Min(100, score)
}

func (c *Calculator) warnings(m Matchup, disaster float64, tier model.RiskTier) []string {
	var w []string
	if tier == model.TierNoGo {
		w = append(w, "hard filter: do not stream this matchup")
	}
	if model.EliteOffenses[m.Opponent] {
		w = append(w, fmt.Sprintf("elite offense: %s", m.Opponent))
	}
	if f, ok := model.ParkHRFactor[m.Park]; ok && f >= 115 {
		w = append(w, fmt.Sprintf("HR-friendly park: %s (%.0f)", m.Park, f))
	}
	if m.Pitcher.FlyBaller() {
		w = append(w, fmt.Sprintf("fly ball pitcher (FB%%=%.0f)", m.Pitcher.FBRate*100))
	}
	if m.Pitcher.HRPer9 >= 1.5 {
		w = append(w, fmt.Sprintf("high HR rate: %.2f HR/9", m.Pitcher.HRPer9))
	}
	if disaster >= 0.20 {
		w = append(w, fmt.Sprintf("high disaster risk: %.0f%% chance of %d+ HR", disaster*100, DisasterThreshold))
	}
	return w
}

func recommendation(tier model.RiskTier, expected, adjusted, disaster float64) string {
	switch tier {
	case model.TierNoGo:
		return "AVOID - risk too high regardless of upside"
	case model.TierElite:
		return fmt.Sprintf("STRONG ADD - safe floor with %.0f pt upside", expected)
	case model.TierSafe:
		return fmt.Sprintf("GOOD ADD - solid %.0f pt expectation, low risk", expected)
	case model.TierModerate:
		if adjusted > 20 {
			return fmt.Sprintf("ACCEPTABLE - worth %.0f risk-adjusted pts", adjusted)
		}
		return fmt.Sprintf("MARGINAL - only %.0f risk-adjusted pts", adjusted)
	case model.TierRisky:
		if expected > 35 {
			return fmt.Sprintf("HIGH RISK/REWARD - %.0f pts but %.0f%% disaster", expected, disaster*100)
		}
		return fmt.Sprintf("RISKY - not enough upside (%.0f pts) for %.0f%% disaster risk", expected, disaster*100)
	default:
		return fmt.Sprintf("DANGEROUS - %.0f%% disaster probability", disaster*100)
	}
}
