package horizon

import (
	"errors"
	"testing"

	"github.com/kilianp07/pitchstream/core/model"
)

func weekState() State {
	return NewState(3, model.UniformCapacity(2, 7))
}

func streamer(id string, days ...int) model.Candidate {
	return model.Candidate{ID: id, Name: id, PitchDays: days, PointsPerStart: 25}
}

func TestCommitSpendsBudgetAndHoldsSlots(t *testing.T) {
	st := weekState()
	next, err := st.Commit(streamer("a", 2, 5), 0)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if st.Budget.Remaining != 3 {
		t.Fatal("commit must not mutate the source snapshot")
	}
	if next.Budget.Remaining != 2 {
		t.Fatalf("expected 2 adds left, got %d", next.Budget.Remaining)
	}
	if next.SlotsUsed(2) != 1 || next.SlotsUsed(5) != 1 {
		t.Fatal("two-start commit must hold a slot on both days")
	}
	if !next.IsCommitted("a") || !next.IsExcluded("a") {
		t.Fatal("committed candidates are excluded from future solves")
	}
}

func TestCommitBudgetExhausted(t *testing.T) {
	st := NewState(1, model.UniformCapacity(2, 7))
	st, err := st.Commit(streamer("a", 1), 0)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := st.Commit(streamer("b", 2), 0); !errors.Is(err, model.ErrBudgetExhausted) {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}
}

func TestCommitCapacityConflict(t *testing.T) {
	st := NewState(5, model.UniformCapacity(1, 7))
	st, err := st.Commit(streamer("a", 3), 0)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := st.Commit(streamer("b", 3), 0); !errors.Is(err, model.ErrInfeasibleConstraint) {
		t.Fatalf("expected ErrInfeasibleConstraint, got %v", err)
	}
}

func TestAdvanceReleasesCompletedPicks(t *testing.T) {
	st := weekState()
	st, _ = st.Commit(streamer("a", 0), 0)
	st, _ = st.Commit(streamer("b", 0, 4), 0)

	st = st.Advance()
	if len(st.Dropped) != 1 || st.Dropped[0] != "a" {
		t.Fatalf("single-start pick on day 0 must be dropped on day 1: %v", st.Dropped)
	}
	if len(st.Committed) != 1 || st.Committed[0].CandidateID != "b" {
		t.Fatal("the two-start pick still holds its day-4 slot")
	}
	if !st.IsExcluded("a") {
		t.Fatal("dropped candidates never re-enter optimization")
	}
	if st.Budget.Remaining != 1 {
		t.Fatal("releasing a roster spot never refunds budget")
	}
}

func TestTerminalForfeitsBudget(t *testing.T) {
	st := weekState()
	for i := 0; i < 7; i++ {
		if st.Terminal() {
			t.Fatalf("terminal too early at day %d", st.Day)
		}
		st = st.Advance()
	}
	if !st.Terminal() {
		t.Fatal("day 7 of a 7-day horizon is terminal")
	}
	if _, err := st.Commit(streamer("late", 6), 6); !errors.Is(err, model.ErrBudgetExhausted) {
		t.Fatalf("terminal commit must fail, got %v", err)
	}
}

func TestMarkUnavailable(t *testing.T) {
	st := weekState()
	st = st.MarkUnavailable("sniped")
	if !st.IsExcluded("sniped") {
		t.Fatal("claimed candidates must be excluded")
	}
	st2 := st.MarkUnavailable("sniped")
	if len(st2.Unavailable) != 1 {
		t.Fatal("marking twice must not duplicate")
	}
}

func TestCheckFeasibleDetectsOverbooking(t *testing.T) {
	st := weekState()
	st, _ = st.Commit(streamer("a", 1), 0)
	if err := st.CheckFeasible(); err != nil {
		t.Fatalf("clean state flagged infeasible: %v", err)
	}

	// Simulate external corruption: three picks stuffed onto a 2-slot day.
	st.Committed = append(st.Committed,
		model.NewCommittedPick(streamer("b", 1), 0),
		model.NewCommittedPick(streamer("c", 1), 0))
	if err := st.CheckFeasible(); !errors.Is(err, model.ErrInfeasibleConstraint) {
		t.Fatalf("expected ErrInfeasibleConstraint, got %v", err)
	}
}
