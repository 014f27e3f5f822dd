package risk

import (
	"github.com/kilianp07/pitchstream/core/model"
)

// Profile holds a pitcher's baseline rates used for risk calculation.
// Zero-valued rate fields are treated as missing and substituted with league
// averages by FillDefaults.
type Profile struct {
	Name        string
	KPer9       float64
	BBPer9      float64
	HRPer9      float64
	GBRate      float64
	FBRate      float64
	HardHitRate float64
	Starts      int // career/season sample size backing the rates
}

// GroundBaller reports an HR-suppressing batted-ball profile.
func (p Profile) GroundBaller() bool { return p.GBRate >= 0.47 }

// FlyBaller reports an HR-prone batted-ball profile.
func (p Profile) FlyBaller() bool { return p.FBRate >= 0.40 }

// Matchup describes one candidate start to assess.
type Matchup struct {
	Pitcher    Profile
	Opponent   string
	Park       string
	Home       bool
	ExpectedIP float64
}

// OpponentHRRate returns the opposing lineup's HR rate.
func (m Matchup) OpponentHRRate() float64 { return model.OpponentHRRate(m.Opponent) }

// OpponentKRate returns the opposing lineup's strikeout rate.
func (m Matchup) OpponentKRate() float64 { return model.OpponentKRate(m.Opponent) }

// ParkFactor returns the venue HR factor, 1.0 neutral.
func (m Matchup) ParkFactor() float64 { return model.VenueHRFactor(m.Park) }

// FillDefaults substitutes league-average rates for missing fields and
// reports whether any substitution happened. Candidates with substituted
// stats are scored low-confidence rather than excluded.
func FillDefaults(m *Matchup) bool {
	filled := false
	if m.Pitcher.KPer9 <= 0 {
		m.Pitcher.KPer9 = model.TypicalKPer9
		filled = true
	}
	if m.Pitcher.BBPer9 <= 0 {
		m.Pitcher.BBPer9 = model.TypicalBBPer9
		filled = true
	}
	if m.Pitcher.HRPer9 <= 0 {
		m.Pitcher.HRPer9 = model.TypicalHRPer9
		filled = true
	}
	if m.Pitcher.GBRate <= 0 {
		m.Pitcher.GBRate = 0.43
		filled = true
	}
	if m.Pitcher.FBRate <= 0 {
		m.Pitcher.FBRate = 0.35
		filled = true
	}
	if m.ExpectedIP <= 0 {
		m.ExpectedIP = model.TypicalIP
		filled = true
	}
	return filled
}
