package search

import (
	"math"
	"math/rand"
	"sync"

	"github.com/jstittsworth/pitchsim/internal/engine"
	"github.com/jstittsworth/pitchsim/internal/league"
	"github.com/jstittsworth/pitchsim/internal/tactics"
)

// Config holds the rating-search hyper-parameters (§4.9).
type Config struct {
	NReps     int
	NSteps    int
	Thresh0   float64
	ThreshD   float64
	StepSize0 int
	StaleLimit int // default 100
}

// DefaultStaleLimit is the source's stale_limit default.
const DefaultStaleLimit = 100

// StepResult reports the outcome of one Propose/Simulate/Metric/Decide
// cycle, used by callers (cmd/search, the websocket progress hub) to
// report progress without reaching into Engine internals.
type StepResult struct {
	Step      int
	RMSE      float64
	Accepted  bool
	Improved  bool
	Restarted bool
}

// Engine runs the threshold-acceptance meta-heuristic (§4.9): Propose
// → Simulate → Metric → {Accept | Reject | Restart}.
type Engine struct {
	baseline *league.League
	replicas []*league.League
	table    *tactics.Table
	rng      *rand.Rand

	cfg Config

	candidate *Ratings
	simsLast  *Ratings
	simsBest  *Ratings

	rmseLast float64
	rmseBest float64
	thresh   float64
	stepsize int
	stale    int
	step     int

	// parallel controls whether replicas simulate concurrently; the
	// second, orthogonal axis of parallelism from §5.
	parallel bool
}

// NewEngine builds a search engine seeded from init (the chosen
// initialization option's Ratings, §4.9) over nreps replicas cloned
// structurally from baseline.
func NewEngine(baseline *league.League, table *tactics.Table, cfg Config, init *Ratings, seed int64, parallel bool) *Engine {
	if cfg.StaleLimit <= 0 {
		cfg.StaleLimit = DefaultStaleLimit
	}
	template := zeroedTemplate(baseline.Rosters)

	replicas := make([]*league.League, cfg.NReps)
	for i := 0; i < cfg.NReps; i++ {
		replicas[i] = league.InitLeague(baseline.Teams, template, table, seed+int64(i)+1)
	}

	return &Engine{
		baseline:  baseline,
		replicas:  replicas,
		table:     table,
		rng:       rand.New(rand.NewSource(seed)),
		cfg:       cfg,
		candidate: init,
		simsLast:  init.Clone(),
		simsBest:  init.Clone(),
		rmseLast:  math.Inf(1),
		rmseBest:  math.Inf(1),
		thresh:    cfg.Thresh0,
		stepsize:  cfg.StepSize0,
		parallel:  parallel,
	}
}

// zeroedTemplate copies roster structure (names, skills as a
// placeholder base, identity fields) but zeroes every season
// accumulator so replicas start each step from a clean slate — the
// candidate ratings overwrite the skill fields immediately after.
func zeroedTemplate(rosters []engine.Roster) []engine.Roster {
	out := make([]engine.Roster, len(rosters))
	copy(out, rosters)
	for t := range out {
		for i := range out[t].Players {
			p := &out[t].Players[i]
			if p.IsPlaceholder() {
				continue
			}
			p.Gam, p.Sav, p.Ktk, p.Kps, p.Sht, p.Gls, p.Ass = 0, 0, 0, 0, 0, 0, 0
			p.DP, p.Inj, p.Sus = 0, 0, 0
			p.Fit = 100
		}
	}
	return out
}

// Step runs one Propose/Simulate/Metric/Decide cycle (§4.9). Terminal
// condition (step == nsteps) is the caller's responsibility to check
// via Done.
func (e *Engine) Step() StepResult {
	e.step++
	e.simulate()
	rmse := RMSE(e.baseline, e.replicas)

	accepted := rmse < e.rmseLast+e.thresh
	result := StepResult{Step: e.step, RMSE: rmse, Accepted: accepted}

	if accepted {
		if rmse < e.rmseBest && e.step > 1 {
			e.simsBest = e.candidate.Clone()
			e.rmseBest = rmse
			result.Improved = true
		}
		e.rmseLast = rmse
		e.simsLast = e.candidate.Clone()
		e.thresh = math.Max(e.thresh-e.cfg.ThreshD, 0.001)
		e.candidate = e.simsLast.Perturb(e.rng, e.stepsize, e.baseline.Rosters)
		e.stale = 0
		return result
	}

	e.candidate = e.simsLast.Perturb(e.rng, e.stepsize, e.baseline.Rosters)
	if e.stepsize > 1 {
		e.stepsize--
	}
	e.stale++
	if e.stale >= e.cfg.StaleLimit {
		e.candidate = e.simsBest.Clone()
		e.thresh = e.cfg.Thresh0
		e.stepsize = e.cfg.StepSize0
		e.rmseLast = math.Inf(1)
		e.stale = 0
		result.Restarted = true
	}
	return result
}

// simulate applies the candidate ratings to every replica and plays a
// full season on each, per step 1 ("reset all replicas' season
// state; play_season each replica").
func (e *Engine) simulate() {
	run := func(r *league.League) {
		r.ResetAll()
		e.candidate.ApplyTo(r.Rosters)
		r.PlaySeason()
	}
	if !e.parallel {
		for _, r := range e.replicas {
			run(r)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(e.replicas))
	for _, r := range e.replicas {
		r := r
		go func() {
			defer wg.Done()
			run(r)
		}()
	}
	wg.Wait()
}

// Done reports whether the terminal condition (step == nsteps) holds.
func (e *Engine) Done() bool { return e.step >= e.cfg.NSteps }

// Best returns the best-known ratings snapshot and its RMSE.
func (e *Engine) Best() (*Ratings, float64) { return e.simsBest, e.rmseBest }
