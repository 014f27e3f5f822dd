package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WeeklyBudget tracks the consumable add allowance for one horizon. Unused
// adds never carry over; the budget resets at the horizon boundary.
type WeeklyBudget struct {
	Total       int `json:"total"`
	Remaining   int `json:"remaining"`
	HorizonDays int `json:"horizon_days"`
}

// NewWeeklyBudget returns a fresh budget for a horizon of the given length.
func NewWeeklyBudget(total, horizonDays int) WeeklyBudget {
	return WeeklyBudget{Total: total, Remaining: total, HorizonDays: horizonDays}
}

// Spend returns a copy with one add consumed.
func (b WeeklyBudget) Spend() (WeeklyBudget, error) {
	if b.Remaining <= 0 {
		return b, ErrBudgetExhausted
	}
	b.Remaining--
	return b, nil
}

// WeekCapacity holds the renewable per-day slot ceilings for the horizon.
// Capacity may vary by day (extra slots on weekends, for example).
type WeekCapacity struct {
	Slots []int `json:"slots"`
}

// NewWeekCapacity builds a capacity schedule. A single value is broadcast to
// every day of the horizon.
func NewWeekCapacity(perDay []int) WeekCapacity {
	cp := make([]int, len(perDay))
	copy(cp, perDay)
	return WeekCapacity{Slots: cp}
}

// UniformCapacity returns a horizon with the same slot count every day.
func UniformCapacity(slots, days int) WeekCapacity {
	s := make([]int, days)
	for i := range s {
		s[i] = slots
	}
	return WeekCapacity{Slots: s}
}

// On returns the slot ceiling for the given day, zero outside the horizon.
func (c WeekCapacity) On(day int) int {
	if day < 0 || day >= len(c.Slots) {
		return 0
	}
	return c.Slots[day]
}

// Days returns the horizon length covered by the capacity schedule.
func (c WeekCapacity) Days() int { return len(c.Slots) }

// CommittedPick records an executed add. Once created it is immutable to the
// optimizer: its budget unit is spent and its pitch days hold their slots for
// the rest of the horizon.
type CommittedPick struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate_id"`
	Name        string    `json:"name"`
	CommitDay   int       `json:"commit_day"`
	PitchDays   []int     `json:"pitch_days"`
	Points      float64   `json:"expected_points"`
	Locked      bool      `json:"locked"`
	CommittedAt time.Time `json:"committed_at"`
}

// NewCommittedPick locks in a candidate on the given day.
func NewCommittedPick(c Candidate, day int) CommittedPick {
	days := make([]int, len(c.PitchDays))
	copy(days, c.PitchDays)
	return CommittedPick{
		ID:          uuid.NewString(),
		CandidateID: c.ID,
		Name:        c.Name,
		CommitDay:   day,
		PitchDays:   days,
		Points:      c.TotalExpectedPoints(),
		Locked:      true,
		CommittedAt: time.Now().UTC(),
	}
}

// Completed reports whether every pitch day is strictly before the given day,
// meaning the roster spot can be freed.
func (p CommittedPick) Completed(day int) bool {
	for _, d := range p.PitchDays {
		if d >= day {
			return false
		}
	}
	return true
}

// OccupiesOn reports whether the pick holds a slot on the given day.
func (p CommittedPick) OccupiesOn(day int) bool {
	for _, d := range p.PitchDays {
		if d == day {
			return true
		}
	}
	return false
}

func (p CommittedPick) String() string {
	return fmt.Sprintf("%s (day %d, %d starts)", p.Name, p.CommitDay, len(p.PitchDays))
}
