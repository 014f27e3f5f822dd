package snipe

import "testing"

func seededCalculator() *ThresholdCalculator {
	history := []float64{5, 10, 15, 20, 25, 30, 35, 40, 45, 50}
	return NewThresholdCalculator(15, 7, history)
}

func TestThresholdDeclinesAcrossHorizon(t *testing.T) {
	tc := seededCalculator()
	prev := tc.Threshold(0, 3)
	for day := 1; day < 7; day++ {
		cur := tc.Threshold(day, 3)
		if cur > prev {
			t.Fatalf("threshold rose from %.1f to %.1f on day %d", prev, cur, day)
		}
		prev = cur
	}
	if first, last := tc.Threshold(0, 3), tc.Threshold(6, 3); first <= last {
		t.Fatalf("day 0 bar (%.1f) must exceed final day bar (%.1f)", first, last)
	}
}

func TestThresholdScarcityAdjustment(t *testing.T) {
	tc := seededCalculator()
	base := tc.Threshold(2, 3)
	scarce := tc.Threshold(2, 1)
	abundant := tc.Threshold(2, 5)
	if scarce <= base {
		t.Fatalf("last add must raise the bar: %.1f vs %.1f", scarce, base)
	}
	if abundant >= base {
		t.Fatalf("plentiful adds must lower the bar: %.1f vs %.1f", abundant, base)
	}
}

func TestThresholdFallbackWithoutHistory(t *testing.T) {
	tc := NewThresholdCalculator(15, 7, nil)
	if got := tc.Threshold(0, 3); got != 15 {
		t.Fatalf("empty history day 0 must return the base threshold, got %.1f", got)
	}
	if d0, d5 := tc.Threshold(0, 3), tc.Threshold(5, 3); d5 >= d0 {
		t.Fatal("fallback threshold must still decline")
	}
}

func TestThresholdClampsDayRange(t *testing.T) {
	tc := seededCalculator()
	if tc.Threshold(-3, 3) != tc.Threshold(0, 3) {
		t.Fatal("negative days clamp to day 0")
	}
	if tc.Threshold(99, 3) != tc.Threshold(6, 3) {
		t.Fatal("days past the horizon clamp to the final day")
	}
}

func TestOptionValueZeroCases(t *testing.T) {
	tc := seededCalculator()
	if got := tc.OptionValue(2, 1); got != 0 {
		t.Fatalf("last add has no option value, got %.1f", got)
	}
	if got := tc.OptionValue(6, 3); got != 0 {
		t.Fatalf("last day has no option value, got %.1f", got)
	}
}

func TestOptionValueDecaysWithTime(t *testing.T) {
	tc := seededCalculator()
	early := tc.OptionValue(0, 3)
	late := tc.OptionValue(5, 3)
	if early <= 0 {
		t.Fatal("early option value must be positive")
	}
	if late >= early {
		t.Fatalf("option value must decay: %.1f -> %.1f", early, late)
	}
}

func TestOptionValueGrowsWithBudget(t *testing.T) {
	tc := seededCalculator()
	few := tc.OptionValue(1, 2)
	many := tc.OptionValue(1, 5)
	if many <= few {
		t.Fatalf("more adds in hand mean more option value: %.1f vs %.1f", many, few)
	}
}

func TestAddObservationFeedsPercentiles(t *testing.T) {
	tc := NewThresholdCalculator(15, 7, nil)
	for _, v := range []float64{50, 52, 54, 56, 58} {
		tc.AddObservation(v)
	}
	if got := tc.Threshold(3, 3); got < 40 {
		t.Fatalf("rich observed history must dominate the base threshold, got %.1f", got)
	}
	if h := tc.History(); len(h) != 5 {
		t.Fatalf("history must retain observations, got %d", len(h))
	}
}
