package optimizer

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/pitchstream/core/model"
)

// relaxSolve points to the LP relaxation used for the certificate bound. It
// can be overridden in tests to simulate solver failures.
var relaxSolve = solveRelaxation

var errEmptyRelaxation = errors.New("optimizer: nothing to relax")

// solveRelaxation solves the fractional relaxation of the selection problem
// with gonum's simplex: maximize total points subject to the budget row, the
// per-day capacity rows and 0 <= x <= 1. The optimum upper-bounds every
// integer selection.
//
// The problem is assembled directly in standard form, min c'x s.t. Ax = b,
// x >= 0, with one slack variable per inequality.
func solveRelaxation(cands []model.Candidate, budget int, capacity model.WeekCapacity) (float64, error) {
	n := len(cands)
	if n == 0 {
		return 0, errEmptyRelaxation
	}
	days := capacity.Days()

	// Rows: budget, one per day, one upper bound per candidate.
	rows := 1 + days + n
	cols := n + rows // selection vars plus one slack per row

	c := make([]float64, cols)
	for i, cand := range cands {
		c[i] = -cand.TotalExpectedPoints()
	}

	a := mat.NewDense(rows, cols, nil)
	b := make([]float64, rows)

	// Budget row: sum x_i + s = budget.
	for i := 0; i < n; i++ {
		a.Set(0, i, 1)
	}
	a.Set(0, n, 1)
	b[0] = float64(budget)

	// Capacity rows.
	for d := 0; d < days; d++ {
		row := 1 + d
		for i, cand := range cands {
			if cand.PitchesOn(d) {
				a.Set(row, i, 1)
			}
		}
		a.Set(row, n+row, 1)
		b[row] = float64(capacity.On(d))
	}

	// Upper bounds: x_i + u_i = 1.
	for i := 0; i < n; i++ {
		row := 1 + days + i
		a.Set(row, i, 1)
		a.Set(row, n+row, 1)
		b[row] = 1
	}

	opt, _, err := lp.Simplex(c, a, b, 1e-7, nil)
	if err != nil {
		return 0, err
	}
	return -opt, nil
}
