package model

import (
	"errors"
	"testing"
)

func TestWeeklyBudgetSpend(t *testing.T) {
	b := NewWeeklyBudget(2, 7)
	b, err := b.Spend()
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	b, err = b.Spend()
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	if b.Remaining != 0 {
		t.Fatalf("expected 0 remaining, got %d", b.Remaining)
	}
	if _, err := b.Spend(); !errors.Is(err, ErrBudgetExhausted) {
		t.Fatalf("expected ErrBudgetExhausted, got %v", err)
	}
}

func TestWeekCapacityOutsideHorizon(t *testing.T) {
	c := UniformCapacity(2, 7)
	if c.Days() != 7 {
		t.Fatalf("expected 7 days, got %d", c.Days())
	}
	if c.On(3) != 2 {
		t.Fatalf("expected 2 slots on day 3, got %d", c.On(3))
	}
	if c.On(-1) != 0 || c.On(7) != 0 {
		t.Fatal("slots outside the horizon must be zero")
	}
}

func TestCommittedPickLifecycle(t *testing.T) {
	c := Candidate{ID: "p1", Name: "Starter", PitchDays: []int{2, 5}, PointsPerStart: 40}
	p := NewCommittedPick(c, 1)
	if p.ID == "" {
		t.Fatal("pick needs a generated id")
	}
	if p.Points != 80 {
		t.Fatalf("two-start pick should be worth 80, got %.1f", p.Points)
	}
	if !p.OccupiesOn(2) || !p.OccupiesOn(5) || p.OccupiesOn(3) {
		t.Fatal("pick must occupy exactly its pitch days")
	}
	if p.Completed(5) {
		t.Fatal("pick still has a start on day 5")
	}
	if !p.Completed(6) {
		t.Fatal("pick should complete after its last start")
	}
}

func TestCandidateValidate(t *testing.T) {
	c := Candidate{ID: "x", PitchDays: []int{6}}
	if err := c.Validate(7); err != nil {
		t.Fatalf("day 6 is inside a 7-day horizon: %v", err)
	}
	c.PitchDays = []int{7}
	if err := c.Validate(7); err == nil {
		t.Fatal("day 7 is outside a 7-day horizon")
	}
	c = Candidate{PitchDays: []int{0}}
	if err := c.Validate(7); err == nil {
		t.Fatal("missing id must fail validation")
	}
}

func TestSurvivalProb(t *testing.T) {
	c := Candidate{ID: "x", PitchDays: []int{3}, SnipeTier: SnipeElite}
	if got := c.SurvivalProb(0); got != 1 {
		t.Fatalf("survival at zero days must be 1, got %f", got)
	}
	if s1, s3 := c.SurvivalProb(1), c.SurvivalProb(3); s3 >= s1 {
		t.Fatalf("survival must decay: %f vs %f", s1, s3)
	}
}
