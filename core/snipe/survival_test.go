package snipe

import (
	"math"
	"testing"

	"github.com/kilianp07/pitchstream/core/model"
)

func eliteCandidate() model.Candidate {
	return model.Candidate{
		ID:             "p1",
		Name:           "Hot Streamer",
		PitchDays:      []int{3},
		PointsPerStart: 35,
		SnipeTier:      model.SnipeElite,
	}
}

func TestSurvivalDecay(t *testing.T) {
	s := NewSurvivalModel(1.0)
	c := eliteCandidate()
	if got := s.Survival(c, 0); got != 1 {
		t.Fatalf("survival at zero days must be exactly 1, got %f", got)
	}
	want := math.Exp(-0.45 * 2)
	if got := s.Survival(c, 2); math.Abs(got-want) > 1e-12 {
		t.Fatalf("elite survival over 2 days: got %f want %f", got, want)
	}
}

func TestLeagueActivityScalesIntensity(t *testing.T) {
	calm := NewSurvivalModel(0.5)
	frantic := NewSurvivalModel(2.0)
	c := eliteCandidate()
	if calm.Survival(c, 3) <= frantic.Survival(c, 3) {
		t.Fatal("an active league must snipe faster")
	}
}

func TestShouldActNowHighRisk(t *testing.T) {
	s := NewSurvivalModel(1.0)
	c := eliteCandidate()
	// 3 days of elite snipe risk on a 35-point candidate: expected loss far
	// exceeds a modest option value.
	d := s.ShouldActNow(c, 3, 5)
	if !d.ActNow {
		t.Fatalf("expected act-now, got %+v", d)
	}
	if d.DeferLoss <= d.OptionValue {
		t.Fatal("act-now requires loss above option value")
	}
	if d.Reason == "" {
		t.Fatal("decision must explain itself")
	}
}

func TestShouldActNowSafeToWait(t *testing.T) {
	s := NewSurvivalModel(1.0)
	c := eliteCandidate()
	c.SnipeTier = model.SnipeMinimal
	d := s.ShouldActNow(c, 2, 5)
	if d.ActNow {
		t.Fatalf("minimal snipe risk should wait: %+v", d)
	}
}

func TestRankByUrgencyMustActToday(t *testing.T) {
	s := NewSurvivalModel(1.0)
	today := eliteCandidate()
	today.ID = "today"
	today.PitchDays = []int{0}
	later := eliteCandidate()
	later.ID = "later"
	later.PitchDays = []int{4}

	ranked := s.RankByUrgency([]model.Candidate{later, today}, 0)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].Candidate.ID != "today" {
		t.Fatalf("same-day start must rank first, got %s", ranked[0].Candidate.ID)
	}
}

func TestRankByUrgencyTwoStartBoost(t *testing.T) {
	s := NewSurvivalModel(1.0)
	single := eliteCandidate()
	single.ID = "single"
	single.PitchDays = []int{2}
	double := eliteCandidate()
	double.ID = "double"
	double.PitchDays = []int{2, 5}
	double.PointsPerStart = single.PointsPerStart / 2 // same total value

	ranked := s.RankByUrgency([]model.Candidate{single, double}, 0)
	if ranked[0].Candidate.ID != "double" {
		t.Fatal("two-start candidates get an urgency boost at equal value")
	}
}
