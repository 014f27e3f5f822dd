package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/pitchstream/core/metrics"
)

// PromSink records engine events in Prometheus metrics.
type PromSink struct {
	decisions *prometheus.CounterVec
	outcomes  prometheus.Histogram
	solves    *prometheus.HistogramVec
	budget    prometheus.Gauge
}

// NewPromSink registers engine metrics on the default Prometheus registerer.
// Serving the /metrics endpoint is the caller's concern.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streaming_decisions_total",
		Help: "Total number of add/wait/skip decisions",
	}, []string{"action", "risk_tier"})
	outcomes := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "streaming_outcome_points",
		Help:    "Realized fantasy points per committed start",
		Buckets: prometheus.LinearBuckets(-20, 10, 10),
	})
	solves := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "streaming_solve_seconds",
		Help:    "Optimizer solve latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"optimal"})
	budget := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "streaming_budget_remaining",
		Help: "Weekly add budget units remaining",
	})

	for _, c := range []prometheus.Collector{decisions, outcomes, solves, budget} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}

	return &PromSink{decisions: decisions, outcomes: outcomes, solves: solves, budget: budget}, nil
}

// RecordDecision increments the decision counter.
func (s *PromSink) RecordDecision(ev coremetrics.DecisionEvent) error {
	s.decisions.WithLabelValues(ev.Action, ev.RiskTier).Inc()
	return nil
}

// RecordOutcome observes the realized points.
func (s *PromSink) RecordOutcome(ev coremetrics.OutcomeEvent) error {
	s.outcomes.Observe(ev.Actual)
	return nil
}

// RecordSolve observes the optimizer latency.
func (s *PromSink) RecordSolve(ev coremetrics.SolveEvent) error {
	s.solves.WithLabelValues(strconv.FormatBool(ev.Optimal)).Observe(ev.Latency.Seconds())
	return nil
}

// RecordBudget sets the remaining-budget gauge.
func (s *PromSink) RecordBudget(ev coremetrics.BudgetEvent) error {
	s.budget.Set(float64(ev.Remaining))
	return nil
}
