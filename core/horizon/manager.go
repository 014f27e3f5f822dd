package horizon

import (
	"context"
	"fmt"

	"github.com/kilianp07/pitchstream/core/feed"
	"github.com/kilianp07/pitchstream/core/logger"
	"github.com/kilianp07/pitchstream/core/model"
	"github.com/kilianp07/pitchstream/core/optimizer"
)

// Manager drives the week through its states: commits picks after an
// availability check, advances days, and re-solves the remaining horizon
// whenever the candidate pool changes.
type Manager struct {
	solver *optimizer.Solver
	oracle feed.AvailabilityOracle
	log    logger.Logger

	state State
}

// NewManager starts a week with the given budget and capacity. A nil oracle
// skips availability checks; a nil logger is replaced with a nop.
func NewManager(budgetTotal int, capacity model.WeekCapacity, solver *optimizer.Solver, oracle feed.AvailabilityOracle, log logger.Logger) *Manager {
	if solver == nil {
		solver = optimizer.NewSolver(0)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Manager{
		solver: solver,
		oracle: oracle,
		log:    log,
		state:  NewState(budgetTotal, capacity),
	}
}

// State returns the current snapshot.
func (m *Manager) State() State { return m.state }

// Restore replaces the current snapshot, for resuming a persisted week.
func (m *Manager) Restore(s State) error {
	if err := s.CheckFeasible(); err != nil {
		return err
	}
	m.state = s
	return nil
}

// Commit executes an add for the candidate. When the oracle reports the
// candidate claimed, the state records the snipe and the caller gets
// ErrStaleAvailability so it can re-solve with the candidate excluded.
func (m *Manager) Commit(ctx context.Context, c model.Candidate) error {
	if m.state.IsExcluded(c.ID) {
		return fmt.Errorf("commit %s: %w", c.ID, model.ErrStaleAvailability)
	}
	if m.oracle != nil {
		ok, err := m.oracle.Available(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("availability check %s: %w", c.ID, err)
		}
		if !ok {
			m.state = m.state.MarkUnavailable(c.ID)
			m.log.Warnf("candidate %s sniped before commit", c.Name)
			return fmt.Errorf("commit %s: %w", c.ID, model.ErrStaleAvailability)
		}
	}
	next, err := m.state.Commit(c, m.state.Day)
	if err != nil {
		return err
	}
	m.state = next
	m.log.Infof("committed %s on day %d (%d adds left)", c.Name, m.state.Day, m.state.Budget.Remaining)
	return nil
}

// Advance moves the week to the next day and reports the released picks.
func (m *Manager) Advance() []string {
	before := len(m.state.Dropped)
	m.state = m.state.Advance()
	released := m.state.Dropped[before:]
	if m.state.Terminal() && m.state.Budget.Remaining > 0 {
		m.log.Infof("horizon over, forfeiting %d unused adds", m.state.Budget.Remaining)
	}
	return append([]string(nil), released...)
}

// Reoptimize solves the remaining horizon. Committed, dropped and claimed
// candidates are excluded; surviving candidates keep only starts from today
// on; capacity is reduced by slots the committed picks still occupy.
func (m *Manager) Reoptimize(candidates []model.Candidate) (optimizer.Result, error) {
	if err := m.state.CheckFeasible(); err != nil {
		return optimizer.Result{}, err
	}
	if m.state.Terminal() {
		return optimizer.Result{Optimal: true}, nil
	}

	pool := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if m.state.IsExcluded(c.ID) {
			continue
		}
		var remaining []int
		for _, d := range c.PitchDays {
			if d >= m.state.Day {
				remaining = append(remaining, d)
			}
		}
		if len(remaining) == 0 {
			continue
		}
		c.PitchDays = remaining
		pool = append(pool, c)
	}

	free := make([]int, m.state.Capacity.Days())
	for d := range free {
		left := m.state.Capacity.On(d) - m.state.SlotsUsed(d)
		if d < m.state.Day {
			left = 0
		}
		if left < 0 {
			left = 0
		}
		free[d] = left
	}

	res, err := m.solver.Solve(optimizer.Instance{
		Candidates: pool,
		Budget:     m.state.Budget.Remaining,
		Capacity:   model.NewWeekCapacity(free),
	})
	if err != nil {
		return optimizer.Result{}, err
	}
	if !res.Optimal {
		m.log.Warnf("solver deadline hit on day %d, using best found (%.1f pts)", m.state.Day, res.TotalPoints)
	}
	return res, nil
}
