// Package horizon tracks one scoring week as a sequence of immutable state
// snapshots. Every transition (commit, day advance) returns a new State;
// callers holding an old snapshot never see it change underneath them.
package horizon

import (
	"fmt"

	"github.com/kilianp07/pitchstream/core/model"
)

// State is one snapshot of the week. All fields are copied on transition.
type State struct {
	Day       int                   `json:"day"`
	Budget    model.WeeklyBudget    `json:"budget"`
	Capacity  model.WeekCapacity    `json:"capacity"`
	Committed []model.CommittedPick `json:"committed"`
	// Dropped lists candidate ids whose picks completed every start and were
	// released from the roster.
	Dropped []string `json:"dropped"`
	// Unavailable lists candidate ids claimed by competitors this week.
	Unavailable []string `json:"unavailable"`
}

// NewState starts a fresh week with the full budget and an empty roster.
func NewState(budgetTotal int, capacity model.WeekCapacity) State {
	return State{
		Budget:   model.NewWeeklyBudget(budgetTotal, capacity.Days()),
		Capacity: capacity,
	}
}

func (s State) clone() State {
	s.Committed = append([]model.CommittedPick(nil), s.Committed...)
	s.Dropped = append([]string(nil), s.Dropped...)
	s.Unavailable = append([]string(nil), s.Unavailable...)
	return s
}

// Terminal reports whether the horizon is over. Remaining budget is forfeit;
// learned models are not part of this state and survive.
func (s State) Terminal() bool { return s.Day >= s.Capacity.Days() }

// SlotsUsed counts committed starts occupying the given day.
func (s State) SlotsUsed(day int) int {
	n := 0
	for _, p := range s.Committed {
		if p.OccupiesOn(day) {
			n++
		}
	}
	return n
}

// IsCommitted reports whether the candidate already holds a pick this week.
func (s State) IsCommitted(candidateID string) bool {
	for _, p := range s.Committed {
		if p.CandidateID == candidateID {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the candidate must not re-enter optimization:
// already committed, already dropped, or known claimed.
func (s State) IsExcluded(candidateID string) bool {
	if s.IsCommitted(candidateID) {
		return true
	}
	for _, id := range s.Dropped {
		if id == candidateID {
			return true
		}
	}
	for _, id := range s.Unavailable {
		if id == candidateID {
			return true
		}
	}
	return false
}

// Commit spends one budget unit on the candidate and locks its pitch days.
// The candidate's remaining starts must all fit the free capacity.
func (s State) Commit(c model.Candidate, day int) (State, error) {
	if s.Terminal() {
		return s, fmt.Errorf("commit %s: horizon over: %w", c.ID, model.ErrBudgetExhausted)
	}
	budget, err := s.Budget.Spend()
	if err != nil {
		return s, fmt.Errorf("commit %s: %w", c.ID, err)
	}
	for _, d := range c.PitchDays {
		if s.SlotsUsed(d)+1 > s.Capacity.On(d) {
			return s, fmt.Errorf("commit %s: day %d full: %w", c.ID, d, model.ErrInfeasibleConstraint)
		}
	}
	next := s.clone()
	next.Budget = budget
	next.Committed = append(next.Committed, model.NewCommittedPick(c, day))
	return next, nil
}

// MarkUnavailable records a snipe so re-optimization excludes the candidate.
func (s State) MarkUnavailable(candidateID string) State {
	if s.IsExcluded(candidateID) {
		return s
	}
	next := s.clone()
	next.Unavailable = append(next.Unavailable, candidateID)
	return next
}

// Advance moves to the next day. Picks with no remaining starts are released
// and their candidate ids recorded as dropped; the budget they consumed stays
// spent.
func (s State) Advance() State {
	next := s.clone()
	next.Day++
	kept := next.Committed[:0]
	for _, p := range next.Committed {
		if p.Completed(next.Day) {
			next.Dropped = append(next.Dropped, p.CandidateID)
			continue
		}
		kept = append(kept, p)
	}
	next.Committed = kept
	return next
}

// CheckFeasible verifies the commitments still fit the budget and capacity.
// A violation means external state diverged from the engine's bookkeeping and
// must surface loudly rather than be repaired silently.
func (s State) CheckFeasible() error {
	if used := len(s.Committed) + len(s.Dropped); used > s.Budget.Total {
		return fmt.Errorf("%d picks exceed budget %d: %w", used, s.Budget.Total, model.ErrInfeasibleConstraint)
	}
	for d := 0; d < s.Capacity.Days(); d++ {
		if s.SlotsUsed(d) > s.Capacity.On(d) {
			return fmt.Errorf("day %d overbooked: %w", d, model.ErrInfeasibleConstraint)
		}
	}
	return nil
}
