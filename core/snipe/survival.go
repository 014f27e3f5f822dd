// Package snipe models competitor behavior as a constant-intensity removal
// process and derives the act-now-versus-wait decision rule from it.
package snipe

import (
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/pitchstream/core/model"
)

// SurvivalModel estimates the probability a candidate is still unclaimed
// after a number of days. Intensity comes from the candidate's snipe tier
// scaled by how active the league is (1.0 = average).
type SurvivalModel struct {
	LeagueActivity float64
}

// NewSurvivalModel returns a model for the given league activity.
func NewSurvivalModel(activity float64) *SurvivalModel {
	if activity <= 0 {
		activity = 1
	}
	return &SurvivalModel{LeagueActivity: activity}
}

// Survival returns P(still available after days), exactly 1 at zero days.
func (s *SurvivalModel) Survival(c model.Candidate, days int) float64 {
	if days <= 0 {
		return 1
	}
	return math.Exp(-c.SnipeLambda() * s.LeagueActivity * float64(days))
}

// DeferLoss is the expected value lost by waiting until the deadline:
// P(sniped before then) times the candidate's value.
func (s *SurvivalModel) DeferLoss(c model.Candidate, days int) float64 {
	return (1 - s.Survival(c, days)) * c.TotalExpectedPoints()
}

// Decision is the outcome of the act-now rule for one candidate.
type Decision struct {
	ActNow      bool
	DeferLoss   float64
	OptionValue float64
	Survival    float64
	Reason      string
}

// ShouldActNow compares the expected loss from deferring against the option
// value of keeping the add for a future candidate. Act only when waiting is
// expected to cost more than the option is worth.
func (s *SurvivalModel) ShouldActNow(c model.Candidate, daysUntilNeeded int, optionValue float64) Decision {
	surv := s.Survival(c, daysUntilNeeded)
	loss := (1 - surv) * c.TotalExpectedPoints()
	d := Decision{
		ActNow:      loss > optionValue,
		DeferLoss:   loss,
		OptionValue: optionValue,
		Survival:    surv,
	}
	if d.ActNow {
		d.Reason = fmt.Sprintf("add now: %.0f%% snipe risk over %d days costs %.1f pts vs %.1f option value",
			(1-surv)*100, daysUntilNeeded, loss, optionValue)
	} else {
		d.Reason = fmt.Sprintf("wait: %.0f%% snipe risk, expected loss %.1f pts below %.1f option value",
			(1-surv)*100, loss, optionValue)
	}
	return d
}

// Urgency is a display ranking entry. It never constrains the optimizer.
type Urgency struct {
	Candidate model.Candidate
	Score     float64
	Reason    string
}

// RankByUrgency orders candidates by value x snipe risk / days until needed.
// Candidates pitching today get an overriding must-act score.
func (s *SurvivalModel) RankByUrgency(candidates []model.Candidate, currentDay int) []Urgency {
	var out []Urgency
	for _, c := range candidates {
		first := c.FirstPitchDay()
		if first < 0 {
			continue
		}
		daysUntil := first - currentDay
		if daysUntil < 0 {
			daysUntil = 0
		}
		risk := 1 - s.Survival(c, daysUntil)

		var score float64
		if daysUntil == 0 {
			score = c.TotalExpectedPoints() * 10 // must add today
		} else {
			score = c.TotalExpectedPoints() * risk / float64(daysUntil)
		}
		if c.IsTwoStart() {
			score *= 1.5
		}

		var reason string
		switch {
		case risk > 0.30:
			reason = fmt.Sprintf("high urgency: %.0f%% snipe risk", risk*100)
		case risk > 0.15:
			reason = fmt.Sprintf("moderate: %.0f%% snipe risk", risk*100)
		default:
			reason = fmt.Sprintf("low: can wait, %.0f%% snipe risk", risk*100)
		}
		out = append(out, Urgency{Candidate: c, Score: score, Reason: reason})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
