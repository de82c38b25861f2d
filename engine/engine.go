package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"geneva"
	"geneva/pool"
	"geneva/rng"
)

// Engine drives the parent-child state machine: init (done by the
// constructor) then, each iteration, grow? -> recombine -> adapt ->
// evaluate -> post -> select -> halt?, finally finalize.
type Engine struct {
	cfg      geneva.Config
	pop      *Population
	strategy Strategy
	factory  *rng.Factory
	src      rng.Source

	startTime  time.Time
	customHalt func(*Population) bool

	logger *slog.Logger
}

// New constructs an engine. seed is cloned PopulationSize times and
// randomly reinitialized to build the starting population (spec's init
// state). factory supplies the per-worker random proxies used during
// adapt.
func New(cfg geneva.Config, seed *geneva.Individual, strategy Strategy, factory *rng.Factory) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if seed == nil {
		return nil, geneva.ErrNoIndividual
	}
	WatchSigHup()
	driverSrc := rng.NewProxy(factory)
	pop := NewPopulation(cfg, seed, driverSrc)
	for _, ind := range pop.Individuals {
		ind.Traits.IsParent = false
	}
	return &Engine{
		cfg:      cfg,
		pop:      pop,
		strategy: strategy,
		factory:  factory,
		src:      driverSrc,
		logger:   slog.Default().With("component", "engine"),
	}, nil
}

// SetCustomHalt installs an additional halt predicate evaluated on top
// of the built-in iteration/stall/duration/quality checks.
func (e *Engine) SetCustomHalt(fn func(*Population) bool) { e.customHalt = fn }

// Population exposes the current population for inspection between runs
// and for checkpointing.
func (e *Engine) Population() *Population { return e.pop }

// Run executes the optimization loop until a halt condition fires and
// returns the final population.
func (e *Engine) Run(ctx context.Context) (*Population, error) {
	e.startTime = time.Now()
	// finalize: clear every individual's personality traits once the loop ends.
	defer func() {
		for _, ind := range e.pop.Individuals {
			ind.Traits = geneva.Traits{}
		}
	}()

	for {
		e.pop.Grow(e.cfg.GrowthRate, e.cfg.MaxPopulationSize, e.src)
		Recombine(e.pop, e.cfg, e.src)

		if err := e.adapt(ctx); err != nil {
			return nil, err
		}
		if err := e.evaluate(ctx); err != nil {
			return nil, err
		}
		e.post()

		if err := e.strategy.Select(e.pop, e.cfg, e.src); err != nil {
			return nil, err
		}
		e.pop.Trim()

		improved := e.pop.UpdateStallCounter()
		if e.pop.StallCounter > 0 {
			e.actOnStalls()
		}

		if e.cfg.ReportIteration > 0 && e.pop.Iteration%e.cfg.ReportIteration == 0 {
			stats := CollectStats(e.pop.Individuals)
			e.logger.Info("report_iteration",
				"iteration", e.pop.Iteration,
				"best", e.pop.Best().Primary(),
				"stall", e.pop.StallCounter,
				"mean", stats.Mean(),
				"stddev", stats.StdDev(),
				"max", stats.Max(),
				"min", stats.Min(),
			)
		}

		if e.shouldCheckpoint(improved) {
			if err := SaveCheckpoint(e.checkpointPath(), e.pop); err != nil {
				e.logger.Warn("checkpoint failed", "error", err)
			}
		}

		if e.halt() {
			break
		}
		e.pop.Iteration++
	}

	return e.pop, nil
}

func (e *Engine) shouldCheckpoint(improved bool) bool {
	switch {
	case e.cfg.CheckpointInterval < 0:
		return improved
	case e.cfg.CheckpointInterval == 0:
		return false
	default:
		return e.pop.Iteration%uint32(e.cfg.CheckpointInterval) == 0
	}
}

func (e *Engine) halt() bool {
	if e.cfg.MaxIteration > 0 && e.pop.Iteration >= e.cfg.MaxIteration {
		return true
	}
	if e.cfg.MaxStallIteration > 0 && e.pop.StallCounter >= e.cfg.MaxStallIteration {
		return true
	}
	if e.cfg.MaxDuration > 0 && time.Since(e.startTime) >= e.cfg.MaxDuration {
		return true
	}
	if e.cfg.QualityThreshold != nil {
		best := e.pop.Best().Primary()
		if e.cfg.Maximize {
			if -best >= *e.cfg.QualityThreshold {
				return true
			}
		} else if best <= *e.cfg.QualityThreshold {
			return true
		}
	}
	if SigHupReceived() {
		e.logger.Info("halting on SIGHUP")
		return true
	}
	if e.customHalt != nil && e.customHalt(e.pop) {
		return true
	}
	return false
}

// actOnStalls calls UpdateOnStall on every parent's adaptors except the
// best parent's, preserving its successful settings.
func (e *Engine) actOnStalls() {
	parents := e.pop.Parents()
	for i, parent := range parents {
		if i == 0 {
			continue
		}
		for _, leaf := range parent.Parameters.Leaves() {
			leaf.UpdateOnStall()
		}
	}
}

// adapt fans child adaptation out across the evaluation pool.
func (e *Engine) adapt(ctx context.Context) error {
	children := e.pop.Children()
	p := pool.New(int(e.cfg.NEvaluationThreads), 0)
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	for _, child := range children {
		child := child
		p.Submit(func() error {
			proxy := rng.NewProxy(e.factory)
			child.Parameters.AdaptAll(proxy)
			child.MarkDirty()
			return nil
		})
	}
	p.Shutdown()
	if err := <-done; err != nil {
		return errors.Wrap(err, "engine: adapt phase")
	}
	return nil
}

// evaluate fans evaluation out across the pool, dropping individuals
// whose objective returned an error.
func (e *Engine) evaluate(ctx context.Context) error {
	targets := e.pop.EvaluationRange()
	p := pool.New(int(e.cfg.NEvaluationThreads), 0)
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	for _, ind := range targets {
		ind := ind
		p.Submit(func() error {
			_, err := ind.Fitness()
			return err
		})
	}
	p.Shutdown()
	if err := <-done; err != nil {
		return errors.Wrap(err, "engine: evaluate phase")
	}

	survivors := e.pop.Individuals[:0]
	for _, ind := range e.pop.Individuals {
		if !ind.Errored() {
			survivors = append(survivors, ind)
		}
	}
	if len(survivors) == 0 {
		return errors.New("engine: evaluate phase returned no individuals")
	}
	e.pop.Individuals = survivors
	return nil
}

// post pads the population back to n_parents+default_n_children if
// evaluation dropped individuals, using clones of the best available
// evaluated individual.
func (e *Engine) post() {
	want := e.pop.NParents + e.pop.DefaultNChildren
	if len(e.pop.Individuals) >= want {
		return
	}
	SortByTransformed(e.pop.Individuals)
	best := e.pop.Individuals[0]
	for len(e.pop.Individuals) < want {
		e.pop.Individuals = append(e.pop.Individuals, best.Clone())
	}
}

func (e *Engine) checkpointPath() string {
	if e.cfg.CheckpointDirectory == "" && e.cfg.CheckpointBaseName == "" {
		return "checkpoint.json"
	}
	name := e.cfg.CheckpointBaseName
	if name == "" {
		name = "checkpoint"
	}
	if e.cfg.CheckpointDirectory == "" {
		return name + ".json"
	}
	return e.cfg.CheckpointDirectory + "/" + name + ".json"
}
