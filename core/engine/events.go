package engine

import "time"

// EventKind labels the engine lifecycle events published on the bus.
type EventKind string

const (
	EventDecision EventKind = "decision"
	EventCommit   EventKind = "commit"
	EventSnipe    EventKind = "snipe"
	EventOutcome  EventKind = "outcome"
	EventDay      EventKind = "day_advance"
	EventWeek     EventKind = "week_reset"
)

// Event is published for every notable engine transition. Observers subscribe
// through the engine's bus; delivery is best-effort.
type Event struct {
	Kind        EventKind
	Day         int
	CandidateID string
	Name        string
	Points      float64
	Detail      string
	Time        time.Time
}
