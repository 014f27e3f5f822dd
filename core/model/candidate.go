package model

import (
	"fmt"
	"math"
)

// Candidate represents a streamable starting pitcher competing for one weekly
// add. It is rebuilt from the feed on every optimization pass and discarded
// after selection; nothing in the engine holds a Candidate across days.
type Candidate struct {
	ID   string
	Name string
	Team string

	// PitchDays lists the horizon days (0 = first day) the pitcher starts on.
	// A two-start pitcher has two entries and is always bundled: selecting it
	// consumes one add and reserves an active slot on every pitch day.
	PitchDays []int

	// PointsPerStart is the expected fantasy points for a single start.
	PointsPerStart float64

	// Risk metrics, filled in by the risk calculator.
	Floor        float64
	Ceiling      float64
	DisasterProb float64

	// Tier is the risk classification from the risk calculator. TierNoGo is
	// infeasible to the optimizer, not merely low-scoring.
	Tier RiskTier

	SnipeTier    SnipeTier
	OwnershipPct float64

	// Opponents holds the opposing team per start, aligned with PitchDays.
	Opponents []string

	// PriorPoints is the observed fantasy points from the previous period, if
	// the pitcher was rostered then. Nil when unknown.
	PriorPoints *float64

	// LowConfidence marks candidates whose stats were substituted with league
	// averages because the feed was missing data.
	LowConfidence bool
}

// IsTwoStart reports whether the candidate occupies two or more horizon days.
func (c Candidate) IsTwoStart() bool { return len(c.PitchDays) >= 2 }

// TotalExpectedPoints is the value of selecting the candidate: points per
// start summed over every pitch day it occupies.
func (c Candidate) TotalExpectedPoints() float64 {
	return c.PointsPerStart * float64(len(c.PitchDays))
}

// FirstPitchDay returns the earliest pitch day, or -1 when the candidate has
// no remaining starts.
func (c Candidate) FirstPitchDay() int {
	first := -1
	for _, d := range c.PitchDays {
		if first == -1 || d < first {
			first = d
		}
	}
	return first
}

// PitchesOn reports whether the candidate starts on the given day.
func (c Candidate) PitchesOn(day int) bool {
	for _, d := range c.PitchDays {
		if d == day {
			return true
		}
	}
	return false
}

// SnipeLambda is the daily removal intensity implied by the snipe tier.
func (c Candidate) SnipeLambda() float64 { return c.SnipeTier.Lambda() }

// SurvivalProb is the probability the candidate is still unclaimed after the
// given number of days, under a constant-intensity removal process.
func (c Candidate) SurvivalProb(days int) float64 {
	if days <= 0 {
		return 1
	}
	return math.Exp(-c.SnipeLambda() * float64(days))
}

// Validate checks that the candidate is usable by the optimizer.
func (c Candidate) Validate(horizonDays int) error {
	if c.ID == "" {
		return fmt.Errorf("candidate has no id")
	}
	if len(c.PitchDays) == 0 {
		return fmt.Errorf("candidate %s has no pitch days", c.ID)
	}
	for _, d := range c.PitchDays {
		if d < 0 || d >= horizonDays {
			return fmt.Errorf("candidate %s pitch day %d outside horizon", c.ID, d)
		}
	}
	return nil
}
