// Package engine ties the decision stack together: risk assessment feeds the
// optimizer and the bandit, snipe and threshold models gate the timing, and
// realized outcomes flow back into the learned state. One engine instance
// serves one league team; all methods are single-threaded by design.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/pitchstream/core/bandit"
	"github.com/kilianp07/pitchstream/core/feed"
	"github.com/kilianp07/pitchstream/core/horizon"
	"github.com/kilianp07/pitchstream/core/logger"
	"github.com/kilianp07/pitchstream/core/metrics"
	"github.com/kilianp07/pitchstream/core/model"
	"github.com/kilianp07/pitchstream/core/optimizer"
	"github.com/kilianp07/pitchstream/core/projection"
	"github.com/kilianp07/pitchstream/core/risk"
	"github.com/kilianp07/pitchstream/core/snipe"
	"github.com/kilianp07/pitchstream/core/store"
	"github.com/kilianp07/pitchstream/internal/eventbus"
)

// Config groups the engine parameters.
type Config struct {
	WeeklyBudget int     `json:"weekly_budget"`
	HorizonDays  int     `json:"horizon_days"`
	SlotsPerDay  int     `json:"slots_per_day"`
	RiskAversion float64 `json:"risk_aversion"`
	// BaseThreshold seeds the acceptance bar until enough pickups are
	// observed to use percentiles.
	BaseThreshold  float64       `json:"base_threshold"`
	LeagueActivity float64       `json:"league_activity"`
	SolverDeadline time.Duration `json:"solver_deadline"`

	// Roster fragility inputs for the reserve policy.
	ILCount  int `json:"il_count"`
	DTDCount int `json:"dtd_count"`

	// ScoreDiff is the projected weekly point differential versus the
	// current opponent, used to adapt risk appetite.
	ScoreDiff float64 `json:"score_diff"`

	Bandit bandit.Config `json:"bandit"`
}

// SetDefaults applies sane defaults for unset fields.
func (c *Config) SetDefaults() {
	if c.WeeklyBudget <= 0 {
		c.WeeklyBudget = 5
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
	if c.SlotsPerDay <= 0 {
		c.SlotsPerDay = 2
	}
	if c.RiskAversion <= 0 {
		c.RiskAversion = 1.0
	}
	if c.BaseThreshold <= 0 {
		c.BaseThreshold = 15
	}
	if c.LeagueActivity <= 0 {
		c.LeagueActivity = 1.0
	}
	if c.SolverDeadline <= 0 {
		c.SolverDeadline = optimizer.DefaultDeadline
	}
	c.Bandit.Budget = c.WeeklyBudget
	c.Bandit.HorizonDays = c.HorizonDays
	c.Bandit.SetDefaults()
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	if c.WeeklyBudget <= 0 {
		return fmt.Errorf("weekly_budget must be positive")
	}
	if c.HorizonDays <= 1 {
		return fmt.Errorf("horizon_days must exceed 1")
	}
	if c.SlotsPerDay <= 0 {
		return fmt.Errorf("slots_per_day must be positive")
	}
	return nil
}

// Prospect is one streamable pitcher with everything the engine needs to
// judge it.
type Prospect struct {
	Candidate model.Candidate
	Matchup   risk.Matchup
	Context   bandit.Context
}

// Option is a ranked prospect after assessment.
type Option struct {
	Candidate  model.Candidate
	Assessment risk.Assessment
	Score      bandit.Score
	// AdjustedValue is the situation-aware total value over all starts.
	AdjustedValue float64
	Baseline      float64
}

// AddDecision is the verdict of ShouldAdd for one option.
type AddDecision struct {
	Add         bool
	Threshold   float64
	OptionValue float64
	Snipe       snipe.Decision
	Reason      string
}

// Recommendation is the full daily output.
type Recommendation struct {
	RunID string
	Day   int
	Plan  optimizer.Result
	// ActToday holds the planned options that should be committed today.
	ActToday []Option
	Urgency  []snipe.Urgency
	// Contingency maps a selected candidate id to the fallback plan if a
	// competitor claims it first.
	Contingency map[string]optimizer.Result
}

// Engine owns the learned models and the week state. The caller owns the
// engine and persists it through Export/Import; nothing here is shared
// between goroutines.
type Engine struct {
	cfg Config

	bandit    *bandit.LinUCB
	beliefs   *projection.Manager
	risk      *risk.Calculator
	threshold *snipe.ThresholdCalculator
	survival  *snipe.SurvivalModel
	reserve   *NewsvendorReserve
	utility   *RiskAdaptiveUtility
	baseline  SimpleBaseline

	solver *optimizer.Solver
	oracle feed.AvailabilityOracle
	week   *horizon.Manager

	bus  *eventbus.Bus[Event]
	sink metrics.MetricsSink
	log  logger.Logger
}

// New assembles an engine. A nil sink or logger is replaced with a nop.
func New(cfg Config, oracle feed.AvailabilityOracle, sink metrics.MetricsSink, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	solver := optimizer.NewSolver(cfg.SolverDeadline)
	capacity := model.UniformCapacity(cfg.SlotsPerDay, cfg.HorizonDays)
	return &Engine{
		cfg:       cfg,
		bandit:    bandit.New(cfg.Bandit),
		beliefs:   projection.NewManager(),
		risk:      risk.NewCalculator(cfg.RiskAversion),
		threshold: snipe.NewThresholdCalculator(cfg.BaseThreshold, cfg.HorizonDays, nil),
		survival:  snipe.NewSurvivalModel(cfg.LeagueActivity),
		reserve:   NewNewsvendorReserve(),
		utility:   NewRiskAdaptiveUtility(),
		solver:    solver,
		oracle:    oracle,
		week:      horizon.NewManager(cfg.WeeklyBudget, capacity, solver, oracle, log),
		bus:       eventbus.New[Event](),
		sink:      sink,
		log:       log,
	}, nil
}

// Subscribe returns a channel of engine events.
func (e *Engine) Subscribe() <-chan Event { return e.bus.Subscribe() }

// Week returns the current week snapshot.
func (e *Engine) Week() horizon.State { return e.week.State() }

func (e *Engine) publish(ev Event) {
	ev.Time = time.Now().UTC()
	ev.Day = e.week.State().Day
	e.bus.Publish(ev)
}

// The sink contract only requires decisions; the richer recorders are
// optional and probed per event, the same way MultiSink fans out.

func (e *Engine) recordSolve(ev metrics.SolveEvent) {
	rec, ok := e.sink.(metrics.SolveRecorder)
	if !ok {
		return
	}
	if err := rec.RecordSolve(ev); err != nil {
		e.log.Warnf("record solve: %v", err)
	}
}

func (e *Engine) recordBudget(ev metrics.BudgetEvent) {
	rec, ok := e.sink.(metrics.BudgetRecorder)
	if !ok {
		return
	}
	if err := rec.RecordBudget(ev); err != nil {
		e.log.Warnf("record budget: %v", err)
	}
}

func (e *Engine) recordOutcome(ev metrics.OutcomeEvent) {
	rec, ok := e.sink.(metrics.OutcomeRecorder)
	if !ok {
		return
	}
	if err := rec.RecordOutcome(ev); err != nil {
		e.log.Warnf("record outcome: %v", err)
	}
}

// RankOptions assesses and ranks the prospects by uncertainty-aware value.
// Tiers, floors and disaster probabilities on the returned candidates are
// overwritten with the assessment results.
func (e *Engine) RankOptions(prospects []Prospect) []Option {
	day := e.week.State().Day
	opts := make([]Option, 0, len(prospects))
	for _, p := range prospects {
		a := e.risk.Assess(p.Matchup)

		c := p.Candidate
		c.Tier = a.Tier
		c.Floor = a.Floor
		c.Ceiling = a.Ceiling
		c.DisasterProb = a.DisasterProb
		c.LowConfidence = c.LowConfidence || a.LowConfidence

		// Blend the model projection with the observed history, if any.
		e.beliefs.SetPrior(c.ID, a.Expected, math.Sqrt(a.Variance))
		perStart := a.Expected
		if b := e.beliefs.Get(c.ID); b != nil && b.Observations > 0 {
			perStart = b.PosteriorMean()
		}
		c.PointsPerStart = perStart

		deadline := c.FirstPitchDay() - day
		if deadline < 1 {
			deadline = 1
		}
		score, err := e.bandit.Evaluate(p.Context.Vector(), deadline)
		if err != nil {
			e.log.Errorf("bandit evaluate %s: %v", c.ID, err)
		}

		adjPerStart := e.utility.AdjustedValue(perStart, math.Sqrt(a.Variance), e.cfg.ScoreDiff)
		opts = append(opts, Option{
			Candidate:     c,
			Assessment:    a,
			Score:         score,
			AdjustedValue: adjPerStart * float64(len(c.PitchDays)),
			Baseline:      e.baseline.Score(c),
		})
	}
	sort.SliceStable(opts, func(i, j int) bool {
		if opts[i].Score.UCB != opts[j].Score.UCB {
			return opts[i].Score.UCB > opts[j].Score.UCB
		}
		return opts[i].Candidate.ID < opts[j].Candidate.ID
	})
	return opts
}

// ShouldAdd decides whether to spend an add on the option right now. The
// value must clear the declining threshold, the reserve policy must allow
// spending, and deferring must cost more than the option value of waiting.
func (e *Engine) ShouldAdd(opt Option) AddDecision {
	st := e.week.State()
	day, budget := st.Day, st.Budget.Remaining

	d := AddDecision{
		Threshold:   e.threshold.Threshold(day, budget),
		OptionValue: e.threshold.OptionValue(day, budget),
	}
	c := opt.Candidate

	switch {
	case c.Tier == model.TierNoGo:
		d.Reason = "hard filtered: " + opt.Assessment.Recommendation
	case budget <= 0:
		d.Reason = model.ErrBudgetExhausted.Error()
	case opt.AdjustedValue < d.Threshold:
		d.Reason = fmt.Sprintf("value %.1f below threshold %.1f", opt.AdjustedValue, d.Threshold)
	default:
		mustToday := c.FirstPitchDay() <= day
		target := e.reserve.Target(e.cfg.ILCount, e.cfg.DTDCount)
		if !e.reserve.Allow(budget, target, mustToday) {
			d.Reason = fmt.Sprintf("holding %d adds in reserve", target)
			break
		}
		daysUntil := c.FirstPitchDay() - day
		d.Snipe = e.survival.ShouldActNow(c, daysUntil, d.OptionValue)
		d.Add = mustToday || d.Snipe.ActNow
		d.Reason = d.Snipe.Reason
		if mustToday {
			d.Reason = "starts today, last chance to add"
		}
	}

	action := "skip"
	if d.Add {
		action = "add"
	} else if d.Snipe.Reason != "" {
		action = "wait"
	}
	if err := e.sink.RecordDecision(metrics.DecisionEvent{
		Day:         day,
		CandidateID: c.ID,
		Name:        c.Name,
		Action:      action,
		Points:      opt.AdjustedValue,
		RiskTier:    c.Tier.String(),
		UCB:         opt.Score.UCB,
		Threshold:   d.Threshold,
		OptionValue: d.OptionValue,
		Time:        time.Now().UTC(),
	}); err != nil {
		e.log.Warnf("record decision: %v", err)
	}
	e.publish(Event{Kind: EventDecision, CandidateID: c.ID, Name: c.Name, Points: opt.AdjustedValue, Detail: d.Reason})
	return d
}

// DailyRecommendation assembles the full plan for today: the optimal
// remaining-week selection, which of those picks to execute now, an urgency
// ranking, and fallback plans for the picks most likely to be sniped.
func (e *Engine) DailyRecommendation(prospects []Prospect) (Recommendation, error) {
	opts := e.RankOptions(prospects)
	byID := make(map[string]Option, len(opts))
	cands := make([]model.Candidate, 0, len(opts))
	for _, o := range opts {
		byID[o.Candidate.ID] = o
		cands = append(cands, o.Candidate)
	}

	plan, err := e.week.Reoptimize(cands)
	if err != nil {
		return Recommendation{}, err
	}
	st := e.week.State()
	e.recordSolve(metrics.SolveEvent{
		Day:         st.Day,
		Candidates:  len(cands),
		Selected:    len(plan.Selected),
		TotalPoints: plan.TotalPoints,
		Optimal:     plan.Optimal,
		Latency:     plan.SolveTime,
		Time:        time.Now().UTC(),
	})

	rec := Recommendation{
		RunID:       uuid.NewString(),
		Day:         st.Day,
		Plan:        plan,
		Urgency:     e.survival.RankByUrgency(plan.Selected, st.Day),
		Contingency: e.contingencies(plan, cands),
	}
	for _, c := range plan.Selected {
		opt, ok := byID[c.ID]
		if !ok {
			continue
		}
		if d := e.ShouldAdd(opt); d.Add {
			rec.ActToday = append(rec.ActToday, opt)
		}
	}
	return rec, nil
}

// contingencies pre-solves fallback plans for the selected picks with the
// highest snipe exposure before their planned add day.
func (e *Engine) contingencies(plan optimizer.Result, pool []model.Candidate) map[string]optimizer.Result {
	st := e.week.State()
	type exposure struct {
		id   string
		risk float64
	}
	var exposed []exposure
	for _, c := range plan.Selected {
		days := plan.AddSchedule[c.ID] - st.Day
		if days < 0 {
			days = 0
		}
		if r := 1 - e.survival.Survival(c, days); r > 0.10 {
			exposed = append(exposed, exposure{id: c.ID, risk: r})
		}
	}
	sort.Slice(exposed, func(i, j int) bool {
		if exposed[i].risk != exposed[j].risk {
			return exposed[i].risk > exposed[j].risk
		}
		return exposed[i].id < exposed[j].id
	})
	if len(exposed) > 3 {
		exposed = exposed[:3]
	}

	out := make(map[string]optimizer.Result, len(exposed))
	for _, ex := range exposed {
		rest := make([]model.Candidate, 0, len(pool)-1)
		for _, c := range pool {
			if c.ID != ex.id {
				rest = append(rest, c)
			}
		}
		fallback, err := e.week.Reoptimize(rest)
		if err != nil {
			e.log.Warnf("contingency solve without %s: %v", ex.id, err)
			continue
		}
		out[ex.id] = fallback
	}
	return out
}

// Commit executes an add. A stale availability answer marks the candidate
// claimed and returns ErrStaleAvailability; the caller re-runs
// DailyRecommendation for the fallback.
func (e *Engine) Commit(ctx context.Context, opt Option) error {
	err := e.week.Commit(ctx, opt.Candidate)
	if err != nil {
		if errors.Is(err, model.ErrStaleAvailability) {
			e.publish(Event{Kind: EventSnipe, CandidateID: opt.Candidate.ID, Name: opt.Candidate.Name, Detail: "claimed before commit"})
		}
		return err
	}
	st := e.week.State()
	e.publish(Event{Kind: EventCommit, CandidateID: opt.Candidate.ID, Name: opt.Candidate.Name, Points: opt.Candidate.TotalExpectedPoints()})
	e.recordBudget(metrics.BudgetEvent{
		Day: st.Day, Remaining: st.Budget.Remaining, Total: st.Budget.Total, Time: time.Now().UTC(),
	})
	return nil
}

// UpdateWithResult folds a realized start back into the learned state: the
// bandit, the pitcher's belief and the pickup value history all observe it.
func (e *Engine) UpdateWithResult(candidateID, name string, ctx bandit.Context, actual, expected float64) error {
	if err := e.bandit.Update(ctx.Vector(), actual); err != nil {
		return fmt.Errorf("bandit update: %w", err)
	}
	e.beliefs.Update(candidateID, actual)
	e.threshold.AddObservation(actual)

	disaster := actual <= -10
	e.recordOutcome(metrics.OutcomeEvent{
		CandidateID: candidateID,
		Name:        name,
		Expected:    expected,
		Actual:      actual,
		Disaster:    disaster,
		Time:        time.Now().UTC(),
	})
	e.publish(Event{Kind: EventOutcome, CandidateID: candidateID, Name: name, Points: actual})
	e.log.Debugw("result recorded", map[string]any{
		"candidate": candidateID, "actual": actual, "expected": expected,
	})
	return nil
}

// AdvanceDay moves the engine to the next day and returns the candidate ids
// released from the roster.
func (e *Engine) AdvanceDay() []string {
	e.bandit.AdvanceDay()
	released := e.week.Advance()
	e.publish(Event{Kind: EventDay})
	return released
}

// NewWeek starts a fresh horizon. Budget and capacity reset; the bandit
// parameters, beliefs and pickup history carry over.
func (e *Engine) NewWeek() {
	e.bandit.ResetWeek()
	capacity := model.UniformCapacity(e.cfg.SlotsPerDay, e.cfg.HorizonDays)
	e.week = horizon.NewManager(e.cfg.WeeklyBudget, capacity, e.solver, e.oracle, e.log)
	e.publish(Event{Kind: EventWeek})
}

// Export captures the learned state for persistence.
func (e *Engine) Export() store.Snapshot {
	st := e.week.State()
	return store.Snapshot{
		Bandit:        e.bandit.Snapshot(),
		Beliefs:       e.beliefs.Snapshot(),
		PickupHistory: e.threshold.History(),
		Week:          &st,
	}
}

// Import restores learned state from a persisted snapshot. An infeasible
// week snapshot is rejected; learned models are restored regardless.
func (e *Engine) Import(snap store.Snapshot) error {
	e.bandit = bandit.Restore(e.cfg.Bandit, snap.Bandit)
	e.beliefs = projection.RestoreManager(snap.Beliefs)
	e.threshold = snipe.NewThresholdCalculator(e.cfg.BaseThreshold, e.cfg.HorizonDays, snap.PickupHistory)
	if snap.Week != nil {
		if err := e.week.Restore(*snap.Week); err != nil {
			return fmt.Errorf("restore week: %w", err)
		}
	}
	return nil
}

// Close shuts the event bus down.
func (e *Engine) Close() { e.bus.Close() }
