package model

import "errors"

// ErrBudgetExhausted is returned when an add is requested with no remaining
// budget units.
var ErrBudgetExhausted = errors.New("weekly add budget exhausted")

// ErrInfeasibleConstraint signals that existing commitments cannot be honored
// by the remaining budget or capacity. This is fatal: commitments are never
// silently dropped.
var ErrInfeasibleConstraint = errors.New("commitments violate budget or capacity")

// ErrStaleAvailability signals that a chosen candidate was claimed by a
// competitor before the commit executed. Callers exclude the candidate and
// re-solve.
var ErrStaleAvailability = errors.New("candidate no longer available")
