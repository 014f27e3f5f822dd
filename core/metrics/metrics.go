package metrics

import "time"

// DecisionEvent records one add/wait/skip decision for a candidate.
type DecisionEvent struct {
	Day         int
	CandidateID string
	Name        string
	// Action is one of "add", "wait", "skip".
	Action      string
	Points      float64
	RiskTier    string
	UCB         float64
	Threshold   float64
	OptionValue float64
	Time        time.Time
}

// MetricsSink records decision events for observability purposes.
type MetricsSink interface {
	RecordDecision(ev DecisionEvent) error
}

// OutcomeEvent captures the realized fantasy points for a committed pick.
type OutcomeEvent struct {
	CandidateID string
	Name        string
	Expected    float64
	Actual      float64
	Disaster    bool
	Time        time.Time
}

// OutcomeRecorder records realized outcomes.
type OutcomeRecorder interface {
	RecordOutcome(ev OutcomeEvent) error
}

// SolveEvent captures one optimizer run.
type SolveEvent struct {
	Day         int
	Candidates  int
	Selected    int
	TotalPoints float64
	Optimal     bool
	Latency     time.Duration
	Time        time.Time
}

// SolveRecorder records optimizer runs.
type SolveRecorder interface {
	RecordSolve(ev SolveEvent) error
}

// BudgetEvent is a snapshot of the weekly budget after a transition.
type BudgetEvent struct {
	Day       int
	Remaining int
	Total     int
	Time      time.Time
}

// BudgetRecorder records budget snapshots.
type BudgetRecorder interface {
	RecordBudget(ev BudgetEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordDecision(DecisionEvent) error { return nil }
func (NopSink) RecordOutcome(OutcomeEvent) error   { return nil }
func (NopSink) RecordSolve(SolveEvent) error       { return nil }
func (NopSink) RecordBudget(BudgetEvent) error     { return nil }
