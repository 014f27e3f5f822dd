// Package bandit implements a budget-aware contextual bandit (LinUCB with
// knapsack-style counters). One linear model is shared across all candidates;
// exploration shrinks as budget or time runs out.
package bandit

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Config holds the bandit hyperparameters.
type Config struct {
	Features    int     `json:"features"`
	Budget      int     `json:"budget"`
	HorizonDays int     `json:"horizon_days"`
	Alpha       float64 `json:"alpha"`  // exploration coefficient
	Lambda      float64 `json:"lambda"` // ridge regularization
}

// SetDefaults applies sane defaults for unset fields.
func (c *Config) SetDefaults() {
	if c.Features <= 0 {
		c.Features = NumFeatures
	}
	if c.Budget <= 0 {
		c.Budget = 5
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
	if c.Alpha <= 0 {
		c.Alpha = 1.0
	}
	if c.Lambda <= 0 {
		c.Lambda = 1.0
	}
}

// LinUCB is the shared linear model. A and b persist across horizons; only
// the budget and time counters reset at the weekly boundary.
type LinUCB struct {
	cfg Config

	a *mat.Dense    // d×d design matrix
	b *mat.VecDense // accumulated reward vector

	budgetRemaining int
	timeRemaining   int
}

// New creates a bandit with A = lambda*I and b = 0.
func New(cfg Config) *LinUCB {
	cfg.SetDefaults()
	d := cfg.Features
	a := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		a.Set(i, i, cfg.Lambda)
	}
	return &LinUCB{
		cfg:             cfg,
		a:               a,
		b:               mat.NewVecDense(d, nil),
		budgetRemaining: cfg.Budget,
		timeRemaining:   cfg.HorizonDays,
	}
}

// Score breaks down the UCB for a context vector. deadlineDays adds an
// urgency bonus for options expiring soon; pass 0 to disable it.
type Score struct {
	UCB     float64
	Mean    float64
	Bonus   float64
	Urgency float64
}

// Evaluate computes the uncertainty-aware value estimate for a context.
func (l *LinUCB) Evaluate(context []float64, deadlineDays int) (Score, error) {
	if len(context) != l.cfg.Features {
		return Score{}, fmt.Errorf("bandit: context has %d features, want %d", len(context), l.cfg.Features)
	}
	x := mat.NewVecDense(len(context), context)

	var inv mat.Dense
	if err := inv.Inverse(l.a); err != nil {
		return Score{}, fmt.Errorf("bandit: design matrix not invertible: %w", err)
	}

	var theta mat.VecDense
	theta.MulVec(&inv, l.b)
	mean := mat.Dot(x, &theta)

	var ax mat.VecDense
	ax.MulVec(&inv, x)
	confidence := l.cfg.Alpha * math.Sqrt(mat.Dot(x, &ax))

	// Exploration scales with how abundant budget is relative to time left.
	// Scarce budget or a closing horizon pushes toward exploitation.
	budgetRatio := float64(l.budgetRemaining) / math.Max(float64(l.cfg.Budget), 1)
	timeRatio := float64(l.timeRemaining) / math.Max(float64(l.cfg.HorizonDays), 1)
	adjustment := 0.1
	if timeRatio > 0 {
		adjustment = budgetRatio / timeRatio
	}
	bonus := confidence * math.Min(adjustment, 2.0)

	urgency := 0.0
	if deadlineDays > 0 {
		urgency = 5.0 / float64(deadlineDays)
	}

	return Score{UCB: mean + bonus + urgency, Mean: mean, Bonus: bonus, Urgency: urgency}, nil
}

// Select returns the candidate id with the highest UCB, or ok=false when the
// budget is exhausted or no contexts were supplied. Iteration is in sorted id
// order so ties resolve deterministically.
func (l *LinUCB) Select(contexts map[string][]float64, deadlines map[string]int) (string, float64, bool) {
	if l.budgetRemaining <= 0 || len(contexts) == 0 {
		return "", 0, false
	}
	ids := make([]string, 0, len(contexts))
	for id := range contexts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestUCB := math.Inf(-1)
	for _, id := range ids {
		s, err := l.Evaluate(contexts[id], deadlines[id])
		if err != nil {
			continue
		}
		if s.UCB > bestUCB {
			bestUCB = s.UCB
			best = id
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, bestUCB, true
}

// Update folds in a realized reward: A += x*xT, b += reward*x, and one budget
// unit is consumed.
func (l *LinUCB) Update(context []float64, reward float64) error {
	if len(context) != l.cfg.Features {
		return fmt.Errorf("bandit: context has %d features, want %d", len(context), l.cfg.Features)
	}
	x := mat.NewVecDense(len(context), context)

	var outer mat.Dense
	outer.Outer(1, x, x)
	l.a.Add(l.a, &outer)

	var rx mat.VecDense
	rx.ScaleVec(reward, x)
	l.b.AddVec(l.b, &rx)

	l.budgetRemaining--
	return nil
}

// AdvanceDay decrements the time counter. Call once per day whether or not a
// selection happened.
func (l *LinUCB) AdvanceDay() {
	l.timeRemaining--
}

// ResetWeek restores the budget and time counters for a new horizon. The
// learned parameters A and b are kept for continuity.
func (l *LinUCB) ResetWeek() {
	l.budgetRemaining = l.cfg.Budget
	l.timeRemaining = l.cfg.HorizonDays
}

// BudgetRemaining returns the unconsumed add count.
func (l *LinUCB) BudgetRemaining() int { return l.budgetRemaining }

// TimeRemaining returns the days left in the horizon.
func (l *LinUCB) TimeRemaining() int { return l.timeRemaining }

// Config returns the bandit configuration.
func (l *LinUCB) Config() Config { return l.cfg }

// Snapshot is the persistable state of the model.
type Snapshot struct {
	Features        int       `json:"features"`
	Alpha           float64   `json:"alpha"`
	Lambda          float64   `json:"lambda"`
	A               []float64 `json:"a"` // row-major d×d
	B               []float64 `json:"b"`
	Budget          int       `json:"budget"`
	BudgetRemaining int       `json:"budget_remaining"`
	HorizonDays     int       `json:"horizon_days"`
	TimeRemaining   int       `json:"time_remaining"`
}

// Snapshot exports the model for persistence.
func (l *LinUCB) Snapshot() Snapshot {
	d := l.cfg.Features
	a := make([]float64, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			a[i*d+j] = l.a.At(i, j)
		}
	}
	b := make([]float64, d)
	for i := 0; i < d; i++ {
		b[i] = l.b.AtVec(i)
	}
	return Snapshot{
		Features:        d,
		Alpha:           l.cfg.Alpha,
		Lambda:          l.cfg.Lambda,
		A:               a,
		B:               b,
		Budget:          l.cfg.Budget,
		BudgetRemaining: l.budgetRemaining,
		HorizonDays:     l.cfg.HorizonDays,
		TimeRemaining:   l.timeRemaining,
	}
}

// Restore rebuilds a bandit from a snapshot. A dimension mismatch with the
// current configuration discards the learned parameters and starts fresh,
// keeping the configured hyperparameters.
func Restore(cfg Config, s Snapshot) *LinUCB {
	cfg.SetDefaults()
	l := New(cfg)
	if s.Features != cfg.Features || len(s.A) != cfg.Features*cfg.Features || len(s.B) != cfg.Features {
		return l
	}
	l.a = mat.NewDense(s.Features, s.Features, append([]float64(nil), s.A...))
	l.b = mat.NewVecDense(s.Features, append([]float64(nil), s.B...))
	if s.BudgetRemaining >= 0 && s.BudgetRemaining <= cfg.Budget {
		l.budgetRemaining = s.BudgetRemaining
	}
	if s.TimeRemaining >= 0 && s.TimeRemaining <= cfg.HorizonDays {
		l.timeRemaining = s.TimeRemaining
	}
	return l
}
