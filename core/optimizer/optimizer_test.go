package optimizer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/kilianp07/pitchstream/core/model"
)

func cand(id string, pts float64, days ...int) model.Candidate {
	return model.Candidate{ID: id, Name: id, PitchDays: days, PointsPerStart: pts}
}

func TestSolveSimpleBudgetBinding(t *testing.T) {
	s := NewSolver(0)
	inst := Instance{
		Candidates: []model.Candidate{
			cand("a", 30, 0),
			cand("b", 25, 1),
			cand("c", 20, 2),
		},
		Budget:   2,
		Capacity: model.UniformCapacity(2, 7),
	}
	res, err := s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !res.Optimal {
		t.Fatal("trivial instance must be proved optimal")
	}
	if len(res.Selected) != 2 || res.TotalPoints != 55 {
		t.Fatalf("expected a+b worth 55, got %d picks %.1f pts", len(res.Selected), res.TotalPoints)
	}
}

// Eight candidates fighting over five adds and two slots per day: capacity
// binds on the crowded days and the solver must route around it.
func TestSolveCapacityBinding(t *testing.T) {
	s := NewSolver(0)
	inst := Instance{
		Candidates: []model.Candidate{
			cand("a", 40, 0),
			cand("b", 38, 0),
			cand("c", 36, 0), // third starter on day 0 cannot fit
			cand("d", 30, 1),
			cand("e", 28, 1),
			cand("f", 26, 1), // same on day 1
			cand("g", 20, 2),
			cand("h", 10, 3),
		},
		Budget:   5,
		Capacity: model.UniformCapacity(2, 7),
	}
	res, err := s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	// a, b, d, e and then g beats h for the fifth add.
	if res.TotalPoints != 156 {
		t.Fatalf("expected 156 pts, got %.1f", res.TotalPoints)
	}
	use := map[int]int{}
	for _, c := range res.Selected {
		for _, d := range c.PitchDays {
			use[d]++
		}
	}
	for d, n := range use {
		if n > 2 {
			t.Fatalf("day %d overbooked with %d starts", d, n)
		}
	}
}

// A two-start pitcher is one add but blocks a slot on both of its days, and
// its value counts both starts.
func TestTwoStartBundling(t *testing.T) {
	s := NewSolver(0)
	double := cand("double", 40, 1, 4)
	inst := Instance{
		Candidates: []model.Candidate{
			double,
			cand("single1", 45, 1),
			cand("single2", 45, 4),
		},
		Budget:   1,
		Capacity: model.UniformCapacity(1, 7),
	}
	res, err := s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(res.Selected) != 1 || res.Selected[0].ID != "double" {
		t.Fatalf("double counts 80 pts on one add, beating any single 45: %+v", res.Selected)
	}
	if res.TotalPoints != 80 {
		t.Fatalf("expected 80 pts, got %.1f", res.TotalPoints)
	}

	// With the two-start pick committed both days are blocked at capacity 1.
	inst.Budget = 2
	res, err = s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.TotalPoints != 90 {
		// single1+single2 (90) beats double alone (80) once two adds exist.
		t.Fatalf("expected singles for 90 pts, got %.1f", res.TotalPoints)
	}
}

func TestNoGoExcluded(t *testing.T) {
	s := NewSolver(0)
	trap := cand("trap", 99, 0)
	trap.Tier = model.TierNoGo
	inst := Instance{
		Candidates: []model.Candidate{trap, cand("ok", 10, 1)},
		Budget:     2,
		Capacity:   model.UniformCapacity(2, 7),
	}
	res, err := s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for _, c := range res.Selected {
		if c.ID == "trap" {
			t.Fatal("NO_GO candidates are infeasible, not merely low-scoring")
		}
	}
	for _, c := range res.Backups {
		if c.ID == "trap" {
			t.Fatal("NO_GO candidates must not resurface as backups")
		}
	}
	if res.TotalPoints != 10 {
		t.Fatalf("expected 10 pts from the feasible candidate, got %.1f", res.TotalPoints)
	}
}

func TestAddScheduleDayBeforeFirstStart(t *testing.T) {
	s := NewSolver(0)
	inst := Instance{
		Candidates: []model.Candidate{cand("early", 20, 0), cand("late", 20, 4)},
		Budget:     2,
		Capacity:   model.UniformCapacity(2, 7),
	}
	res, err := s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.AddSchedule["early"] != 0 {
		t.Fatalf("day-0 start cannot be added on day -1, got %d", res.AddSchedule["early"])
	}
	if res.AddSchedule["late"] != 3 {
		t.Fatalf("expected add on day 3 for a day-4 start, got %d", res.AddSchedule["late"])
	}
}

func TestInvalidInstances(t *testing.T) {
	s := NewSolver(0)
	if _, err := s.Solve(Instance{Budget: -1, Capacity: model.UniformCapacity(2, 7)}); !errors.Is(err, ErrInvalidInstance) {
		t.Fatalf("negative budget: %v", err)
	}
	if _, err := s.Solve(Instance{Budget: 1}); !errors.Is(err, ErrInvalidInstance) {
		t.Fatalf("empty capacity: %v", err)
	}
	bad := Instance{
		Candidates: []model.Candidate{cand("x", 10, 9)},
		Budget:     1,
		Capacity:   model.UniformCapacity(2, 7),
	}
	if _, err := s.Solve(bad); !errors.Is(err, ErrInvalidInstance) {
		t.Fatalf("pitch day outside horizon: %v", err)
	}
}

func TestZeroBudgetSelectsNothing(t *testing.T) {
	s := NewSolver(0)
	res, err := s.Solve(Instance{
		Candidates: []model.Candidate{cand("a", 30, 0)},
		Budget:     0,
		Capacity:   model.UniformCapacity(2, 7),
	})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(res.Selected) != 0 || !res.Optimal {
		t.Fatalf("zero budget is trivially optimal with no picks: %+v", res)
	}
}

func TestSolveIdempotent(t *testing.T) {
	s := NewSolver(0)
	inst := Instance{
		Candidates: []model.Candidate{
			cand("a", 30, 0), cand("b", 30, 0), cand("c", 30, 1), cand("d", 15, 2),
		},
		Budget:   2,
		Capacity: model.UniformCapacity(1, 7),
	}
	first, err := s.Solve(inst)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := s.Solve(inst)
		if err != nil {
			t.Fatalf("solve: %v", err)
		}
		if len(again.Selected) != len(first.Selected) || again.TotalPoints != first.TotalPoints {
			t.Fatalf("identical inputs diverged on run %d", i)
		}
		for j := range again.Selected {
			if again.Selected[j].ID != first.Selected[j].ID {
				t.Fatalf("selection order diverged on run %d", i)
			}
		}
	}
}

func TestRelaxationFailureStaysExact(t *testing.T) {
	saved := relaxSolve
	relaxSolve = func([]model.Candidate, int, model.WeekCapacity) (float64, error) {
		return 0, fmt.Errorf("simplex blew up")
	}
	defer func() { relaxSolve = saved }()

	s := NewSolver(0)
	res, err := s.Solve(Instance{
		Candidates: []model.Candidate{cand("a", 30, 0), cand("b", 25, 1), cand("c", 20, 2)},
		Budget:     2,
		Capacity:   model.UniformCapacity(2, 7),
	})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if res.TotalPoints != 55 || !res.Optimal {
		t.Fatalf("search must stay exact without the LP certificate: %+v", res)
	}
}

func TestRelaxationBoundsInteger(t *testing.T) {
	cands := []model.Candidate{
		cand("a", 30, 0), cand("b", 28, 0), cand("c", 22, 1), cand("d", 17, 1, 3),
	}
	cap7 := model.UniformCapacity(1, 7)
	ub, err := solveRelaxation(cands, 2, cap7)
	if err != nil {
		t.Fatalf("relaxation: %v", err)
	}
	_, exact := BruteForce(cands, 2, cap7)
	if ub+1e-6 < exact {
		t.Fatalf("LP relaxation %.3f below integer optimum %.3f", ub, exact)
	}
}

// Randomized cross-check: branch and bound must match exhaustive enumeration
// on every instance small enough to enumerate.
func TestAgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewSolver(0)

	for trial := 0; trial < 200; trial++ {
		n := 3 + rng.Intn(10) // up to 12 candidates
		budget := 1 + rng.Intn(5)
		days := 4 + rng.Intn(4)
		slots := 1 + rng.Intn(2)

		cands := make([]model.Candidate, n)
		for i := range cands {
			pitch := []int{rng.Intn(days)}
			if rng.Float64() < 0.25 {
				second := rng.Intn(days)
				if second != pitch[0] {
					pitch = append(pitch, second)
				}
			}
			cands[i] = model.Candidate{
				ID:             fmt.Sprintf("p%02d", i),
				PitchDays:      pitch,
				PointsPerStart: math.Round(rng.Float64()*400) / 10,
			}
		}

		capacity := model.UniformCapacity(slots, days)
		res, err := s.Solve(Instance{Candidates: cands, Budget: budget, Capacity: capacity})
		if err != nil {
			t.Fatalf("trial %d solve: %v", trial, err)
		}
		_, exact := BruteForce(cands, budget, capacity)
		if math.Abs(res.TotalPoints-exact) > 1e-6 {
			t.Fatalf("trial %d: branch and bound %.2f != brute force %.2f (n=%d budget=%d slots=%d)",
				trial, res.TotalPoints, exact, n, budget, slots)
		}
		if !res.Optimal {
			t.Fatalf("trial %d: tiny instance must be proved optimal", trial)
		}
	}
}

func TestBackupsRankedAndCapped(t *testing.T) {
	s := NewSolver(0)
	var cands []model.Candidate
	for i := 0; i < 10; i++ {
		cands = append(cands, cand(fmt.Sprintf("p%d", i), float64(10+i), i%7))
	}
	res, err := s.Solve(Instance{Candidates: cands, Budget: 2, Capacity: model.UniformCapacity(2, 7)})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(res.Backups) != 5 {
		t.Fatalf("backups cap at 5, got %d", len(res.Backups))
	}
	for i := 1; i < len(res.Backups); i++ {
		if res.Backups[i].TotalExpectedPoints() > res.Backups[i-1].TotalExpectedPoints() {
			t.Fatal("backups must be ranked by value")
		}
	}
}
