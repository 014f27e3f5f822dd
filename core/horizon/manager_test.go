package horizon

import (
	"context"
	"errors"
	"testing"

	"github.com/kilianp07/pitchstream/core/feed"
	"github.com/kilianp07/pitchstream/core/model"
)

func newTestManager(oracle feed.AvailabilityOracle) *Manager {
	return NewManager(3, model.UniformCapacity(2, 7), nil, oracle, nil)
}

func TestManagerCommitAndReoptimize(t *testing.T) {
	m := newTestManager(nil)
	pool := []model.Candidate{
		streamer("a", 1),
		streamer("b", 2),
		streamer("c", 3),
		streamer("d", 4),
	}

	if err := m.Commit(context.Background(), pool[0]); err != nil {
		t.Fatalf("commit: %v", err)
	}

	res, err := m.Reoptimize(pool)
	if err != nil {
		t.Fatalf("reoptimize: %v", err)
	}
	if len(res.Selected) != 2 {
		t.Fatalf("2 adds left means 2 picks, got %d", len(res.Selected))
	}
	for _, c := range res.Selected {
		if c.ID == "a" {
			t.Fatal("committed candidates must not be re-selected")
		}
	}
}

func TestManagerStaleAvailability(t *testing.T) {
	oracle := feed.MapOracle{Claimed: map[string]bool{"gone": true}}
	m := newTestManager(oracle)

	err := m.Commit(context.Background(), streamer("gone", 2))
	if !errors.Is(err, model.ErrStaleAvailability) {
		t.Fatalf("expected ErrStaleAvailability, got %v", err)
	}
	if m.State().Budget.Remaining != 3 {
		t.Fatal("a failed commit must not spend budget")
	}

	// The sniped candidate is excluded from the next solve.
	res, err := m.Reoptimize([]model.Candidate{streamer("gone", 2), streamer("ok", 3)})
	if err != nil {
		t.Fatalf("reoptimize: %v", err)
	}
	if len(res.Selected) != 1 || res.Selected[0].ID != "ok" {
		t.Fatalf("expected only the available candidate, got %+v", res.Selected)
	}

	// Retrying the same commit stays an error without another oracle round trip.
	if err := m.Commit(context.Background(), streamer("gone", 2)); !errors.Is(err, model.ErrStaleAvailability) {
		t.Fatalf("expected ErrStaleAvailability on retry, got %v", err)
	}
}

func TestManagerReoptimizeTrimsPastDays(t *testing.T) {
	m := newTestManager(nil)
	m.Advance()
	m.Advance() // now day 2

	pool := []model.Candidate{
		streamer("past", 0),     // start already gone
		streamer("split", 1, 5), // only the day-5 start remains
		streamer("future", 3),
	}
	res, err := m.Reoptimize(pool)
	if err != nil {
		t.Fatalf("reoptimize: %v", err)
	}
	got := map[string][]int{}
	for _, c := range res.Selected {
		got[c.ID] = c.PitchDays
	}
	if _, ok := got["past"]; ok {
		t.Fatal("candidates with no remaining starts must be dropped")
	}
	if days, ok := got["split"]; !ok || len(days) != 1 || days[0] != 5 {
		t.Fatalf("split candidate must keep only the future start, got %v", days)
	}
}

func TestManagerCapacityReflectsCommitments(t *testing.T) {
	m := NewManager(4, model.UniformCapacity(1, 7), nil, nil, nil)
	if err := m.Commit(context.Background(), streamer("a", 3)); err != nil {
		t.Fatalf("commit: %v", err)
	}
	res, err := m.Reoptimize([]model.Candidate{streamer("b", 3), streamer("c", 4)})
	if err != nil {
		t.Fatalf("reoptimize: %v", err)
	}
	if len(res.Selected) != 1 || res.Selected[0].ID != "c" {
		t.Fatalf("day 3 is occupied by the commitment, got %+v", res.Selected)
	}
}

func TestManagerTerminalReturnsEmptyPlan(t *testing.T) {
	m := newTestManager(nil)
	for i := 0; i < 7; i++ {
		m.Advance()
	}
	res, err := m.Reoptimize([]model.Candidate{streamer("x", 6)})
	if err != nil {
		t.Fatalf("reoptimize: %v", err)
	}
	if len(res.Selected) != 0 {
		t.Fatal("a finished horizon plans nothing")
	}
}

func TestManagerAdvanceReportsReleases(t *testing.T) {
	m := newTestManager(nil)
	if err := m.Commit(context.Background(), streamer("a", 0)); err != nil {
		t.Fatalf("commit: %v", err)
	}
	released := m.Advance()
	if len(released) != 1 || released[0] != "a" {
		t.Fatalf("expected release of a, got %v", released)
	}
}

func TestManagerRestoreRejectsInfeasible(t *testing.T) {
	m := newTestManager(nil)
	bad := NewState(1, model.UniformCapacity(1, 7))
	bad.Committed = []model.CommittedPick{
		model.NewCommittedPick(streamer("a", 0), 0),
		model.NewCommittedPick(streamer("b", 1), 0),
	}
	if err := m.Restore(bad); !errors.Is(err, model.ErrInfeasibleConstraint) {
		t.Fatalf("expected ErrInfeasibleConstraint, got %v", err)
	}
}
