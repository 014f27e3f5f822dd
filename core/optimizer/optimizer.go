// Package optimizer computes the provably optimal streaming selection for
// one horizon: which candidates to add, subject to the consumable weekly
// budget and the renewable per-day slot capacity.
//
// The instance sizes here are tiny (tens of candidates, single-digit budget)
// so an exact branch-and-bound search finishes in microseconds. An LP
// relaxation solved with gonum's simplex provides a certificate bound that
// lets the search stop as soon as the incumbent provably matches it.
package optimizer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/kilianp07/pitchstream/core/model"
)

// DefaultDeadline caps the exact solve. At the expected scale the search
// finishes far earlier; the cap only matters for adversarial inputs.
const DefaultDeadline = 500 * time.Millisecond

// valueScale converts points to integer objective units (one decimal place).
const valueScale = 10

// ErrInvalidInstance reports an unusable problem definition.
var ErrInvalidInstance = errors.New("optimizer: invalid instance")

// Instance is one optimization problem. Committed picks are not part of the
// instance; the horizon manager subtracts their budget and capacity before
// building it.
type Instance struct {
	Candidates []model.Candidate
	Budget     int
	Capacity   model.WeekCapacity
}

// Result is the selection the optimizer recommends.
type Result struct {
	Selected    []model.Candidate
	TotalPoints float64
	// AddSchedule maps candidate id to the suggested commit day: one day
	// before the first start, never negative.
	AddSchedule map[string]int
	// Backups are the unselected candidates ranked by value.
	Backups   []model.Candidate
	Optimal   bool
	SolveTime time.Duration
}

// Solver runs the exact search under a wall-clock cap.
type Solver struct {
	Deadline time.Duration
}

// NewSolver returns a solver with the given deadline, or the default when
// zero.
func NewSolver(deadline time.Duration) *Solver {
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	return &Solver{Deadline: deadline}
}

// Solve finds the optimal feasible selection. On deadline expiry it returns
// the best feasible selection found so far with Optimal=false; it never
// blocks past the cap and never returns a timeout error.
func (s *Solver) Solve(inst Instance) (Result, error) {
	start := time.Now()
	if inst.Budget < 0 {
		return Result{}, fmt.Errorf("%w: negative budget", ErrInvalidInstance)
	}
	horizon := inst.Capacity.Days()
	if horizon == 0 {
		return Result{}, fmt.Errorf("%w: empty capacity schedule", ErrInvalidInstance)
	}

	// NO_GO candidates are infeasible by definition and never enter the
	// search space.
	feasible := make([]model.Candidate, 0, len(inst.Candidates))
	for _, c := range inst.Candidates {
		if c.Tier == model.TierNoGo {
			continue
		}
		if err := c.Validate(horizon); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidInstance, err)
		}
		feasible = append(feasible, c)
	}

	res := s.search(feasible, inst.Budget, inst.Capacity)
	res.SolveTime = time.Since(start)
	return res, nil
}

// search runs depth-first branch and bound over the value-sorted candidates.
func (s *Solver) search(cands []model.Candidate, budget int, capacity model.WeekCapacity) Result {
	n := len(cands)
	if n == 0 || budget == 0 {
		return finalize(cands, nil, 0)
	}

	// Sort by descending integer value, id ascending for deterministic ties.
	order := make([]int, n)
	values := make([]int64, n)
	for i, c := range cands {
		order[i] = i
		values[i] = int64(c.TotalExpectedPoints()*valueScale + 0.5)
	}
	sort.SliceStable(order, func(a, b int) bool {
		if values[order[a]] != values[order[b]] {
			return values[order[a]] > values[order[b]]
		}
		return cands[order[a]].ID < cands[order[b]].ID
	})

	// prefix[i] is the sum of the top min(budget, remaining) values from
	// position i onward; it upper-bounds any completion of a partial set.
	topSum := func(from, take int) int64 {
		var sum int64
		for i := from; i < n && take > 0; i++ {
			sum += values[order[i]]
			take--
		}
		return sum
	}

	// Certificate bound from the LP relaxation. A failed relaxation just
	// disables the early exit; the search stays exact.
	certificate := int64(-1)
	if ub, err := relaxSolve(cands, budget, capacity); err == nil {
		// Ceiling keeps the certificate at or above the true integer optimum
		// even under floating-point slack, so the early exit stays exact.
		certificate = int64(math.Ceil(ub*valueScale - 1e-9))
	}

	deadline := time.Now().Add(s.Deadline)
	var (
		best      int64 = -1
		bestSet   []int
		dayUse    = make([]int, capacity.Days())
		chosen    []int
		nodes     int
		timedOut  bool
		provedOpt bool
	)

	var dfs func(pos int, used int, val int64)
	dfs = func(pos int, used int, val int64) {
		if timedOut || provedOpt {
			return
		}
		nodes++
		if nodes%1024 == 0 && time.Now().After(deadline) {
			timedOut = true
			return
		}
		if val > best {
			best = val
			bestSet = append(bestSet[:0], chosen...)
			if certificate >= 0 && best >= certificate {
				provedOpt = true
				return
			}
		}
		if pos == n || used == budget {
			return
		}
		if val+topSum(pos, budget-used) <= best {
			return
		}

		idx := order[pos]
		c := cands[idx]
		fits := true
		for _, d := range c.PitchDays {
			if dayUse[d]+1 > capacity.On(d) {
				fits = false
				break
			}
		}
		if fits {
			for _, d := range c.PitchDays {
				dayUse[d]++
			}
			chosen = append(chosen, idx)
			dfs(pos+1, used+1, val+values[idx])
			chosen = chosen[:len(chosen)-1]
			for _, d := range c.PitchDays {
				dayUse[d]--
			}
		}
		dfs(pos+1, used, val)
	}
	dfs(0, 0, 0)

	selected := make([]model.Candidate, 0, len(bestSet))
	idxs := append([]int(nil), bestSet...)
	sort.Ints(idxs)
	for _, i := range idxs {
		selected = append(selected, cands[i])
	}
	res := finalize(cands, selected, float64(best)/valueScale)
	res.Optimal = !timedOut
	return res
}

// finalize assembles the result: schedule, backups, totals.
func finalize(all, selected []model.Candidate, total float64) Result {
	res := Result{
		Selected:    selected,
		TotalPoints: total,
		AddSchedule: make(map[string]int, len(selected)),
		Optimal:     true,
	}
	picked := make(map[string]bool, len(selected))
	for _, c := range selected {
		picked[c.ID] = true
		day := c.FirstPitchDay() - 1
		if day < 0 {
			day = 0
		}
		res.AddSchedule[c.ID] = day
	}
	for _, c := range all {
		if !picked[c.ID] {
			res.Backups = append(res.Backups, c)
		}
	}
	sort.SliceStable(res.Backups, func(i, j int) bool {
		return res.Backups[i].TotalExpectedPoints() > res.Backups[j].TotalExpectedPoints()
	})
	if len(res.Backups) > 5 {
		res.Backups = res.Backups[:5]
	}
	return res
}
