package metrics

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDecision forwards the event to all sinks, returning the first error.
func (m *MultiSink) RecordDecision(ev DecisionEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordDecision(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordOutcome forwards outcome events to sinks that support them.
func (m *MultiSink) RecordOutcome(ev OutcomeEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(OutcomeRecorder); ok {
			if err := rec.RecordOutcome(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSolve forwards solve events to sinks that support them.
func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(SolveRecorder); ok {
			if err := rec.RecordSolve(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordBudget forwards budget snapshots to sinks that support them.
func (m *MultiSink) RecordBudget(ev BudgetEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(BudgetRecorder); ok {
			if err := rec.RecordBudget(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
