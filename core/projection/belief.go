// Package projection maintains Normal-Normal conjugate beliefs about each
// recurring pitcher's per-start fantasy points. Beliefs persist across
// horizons and are only reset at an explicit new-season boundary.
package projection

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// defaultObsStd is the typical start-to-start point spread used as the
// observation noise when none is supplied.
const defaultObsStd = 10.0

// Belief is the posterior state for one identity. The prior is set once; each
// observation tightens the posterior through additive precisions.
type Belief struct {
	PriorMean    float64 `json:"prior_mean"`
	PriorStd     float64 `json:"prior_std"`
	ObservedMean float64 `json:"observed_mean"`
	ObservedStd  float64 `json:"observed_std"`
	Observations int     `json:"observations"`
}

// NewBelief creates a belief from a prior projection.
func NewBelief(priorMean, priorStd float64) *Belief {
	if priorStd <= 0 {
		priorStd = 5
	}
	return &Belief{PriorMean: priorMean, PriorStd: priorStd, ObservedStd: defaultObsStd}
}

// Update folds in one realized outcome via a running mean.
func (b *Belief) Update(points float64) {
	b.Observations++
	b.ObservedMean += (points - b.ObservedMean) / float64(b.Observations)
}

func (b *Belief) precisions() (prior, obs float64) {
	prior = 1 / (b.PriorStd * b.PriorStd)
	obsStd := b.ObservedStd
	if obsStd <= 0 {
		obsStd = defaultObsStd
	}
	obs = float64(b.Observations) / (obsStd * obsStd)
	return prior, obs
}

// PosteriorMean is the precision-weighted blend of prior and observed means.
func (b *Belief) PosteriorMean() float64 {
	if b.Observations == 0 {
		return b.PriorMean
	}
	pp, op := b.precisions()
	return (pp*b.PriorMean + op*b.ObservedMean) / (pp + op)
}

// PosteriorStd shrinks as observations accumulate; it never exceeds the prior.
func (b *Belief) PosteriorStd() float64 {
	if b.Observations == 0 {
		return b.PriorStd
	}
	pp, op := b.precisions()
	return math.Sqrt(1 / (pp + op))
}

// Sample draws from the posterior, for Thompson-sampling style exploration.
func (b *Belief) Sample(src rand.Source) float64 {
	n := distuv.Normal{Mu: b.PosteriorMean(), Sigma: b.PosteriorStd(), Src: src}
	return n.Rand()
}

// ConfidenceInterval returns the central interval at the given level
// (e.g. 0.9 for a 90% interval).
func (b *Belief) ConfidenceInterval(level float64) (lo, hi float64) {
	z := distuv.UnitNormal.Quantile((1 + level) / 2)
	m, s := b.PosteriorMean(), b.PosteriorStd()
	return m - z*s, m + z*s
}
