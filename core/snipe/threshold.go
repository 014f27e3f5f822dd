package snipe

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ThresholdCalculator produces the declining acceptance bar for add
// decisions. Early in the horizon only top-percentile values clear it; by the
// final days the bar drops to the median of past pickup values.
type ThresholdCalculator struct {
	history       []float64
	BaseThreshold float64
	HorizonDays   int
}

// NewThresholdCalculator creates a calculator with an optional seed history.
func NewThresholdCalculator(base float64, horizonDays int, history []float64) *ThresholdCalculator {
	if horizonDays <= 1 {
		horizonDays = 7
	}
	return &ThresholdCalculator{
		history:       append([]float64(nil), history...),
		BaseThreshold: base,
		HorizonDays:   horizonDays,
	}
}

// AddObservation records a realized pickup value for future percentiles.
func (t *ThresholdCalculator) AddObservation(v float64) {
	t.history = append(t.history, v)
}

// History returns a copy of the observed values.
func (t *ThresholdCalculator) History() []float64 {
	return append([]float64(nil), t.history...)
}

func (t *ThresholdCalculator) percentile(p float64) float64 {
	xs := append([]float64(nil), t.history...)
	sort.Float64s(xs)
	return stat.Quantile(p, stat.Empirical, xs, nil)
}

// Threshold returns the minimum acceptable value on the given day. The
// percentile declines linearly from the 90th on day zero to the 50th on the
// last day; budget scarcity raises the bar, abundance lowers it.
func (t *ThresholdCalculator) Threshold(day, addsRemaining int) float64 {
	if day < 0 {
		day = 0
	}
	if day >= t.HorizonDays {
		day = t.HorizonDays - 1
	}

	var threshold float64
	if len(t.history) == 0 {
		decline := 1.0 - float64(day)/10
		threshold = t.BaseThreshold * decline
	} else {
		p := 0.90 - float64(day)*0.40/float64(t.HorizonDays-1)
		threshold = t.percentile(p)
	}

	switch {
	case addsRemaining <= 1:
		threshold *= 1.2
	case addsRemaining >= 4:
		threshold *= 0.9
	}
	return threshold
}

// OptionValue is the worth of holding an add for a future candidate:
// expected top-quartile future value scaled by (b-1)/b and by the fraction of
// the horizon remaining. It is zero on the last add or the last day.
func (t *ThresholdCalculator) OptionValue(day, addsRemaining int) float64 {
	if addsRemaining <= 1 || day >= t.HorizonDays-1 {
		return 0
	}
	daysLeft := t.HorizonDays - 1 - day

	future := t.BaseThreshold
	if len(t.history) > 0 {
		future = t.percentile(0.75)
	}

	ov := future * float64(addsRemaining-1) / float64(addsRemaining)
	return ov * float64(daysLeft) / float64(t.HorizonDays-1)
}
