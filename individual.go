package geneva

import (
	"github.com/pkg/errors"

	"geneva/parameter"
)

// Objective is the contract an embedding host implements to let the
// engine score a candidate. Parameters are supplied in their external
// (bounded) values. The returned vector has one entry per objective and
// must have a stable length across calls.
type Objective func(params *parameter.Set) ([]float64, error)

// Individual is a candidate solution: a parameter set plus its cached
// fitness, a minimize-transformed mirror of that fitness, and
// per-algorithm scratch metadata. Dirty iff the parameters changed since
// the last successful evaluation. An individual is exclusively owned by
// either the population slice or a worker task in flight; it is never
// shared mutably across threads.
type Individual struct {
	Parameters *parameter.Set

	fitness            []float64
	transformedFitness []float64
	dirty              bool
	errored            bool

	Traits Traits

	objective Objective
	maximize  bool
}

// NewIndividual wraps a parameter set with the objective function and
// optimization sense (minimize by default) it will be scored under.
func NewIndividual(params *parameter.Set, objective Objective, maximize bool) *Individual {
	return &Individual{
		Parameters: params,
		objective:  objective,
		maximize:   maximize,
		dirty:      true,
	}
}

// Clone returns an independent copy sharing the same objective function
// and optimization sense but owning its own parameter set and cached
// fitness.
func (ind *Individual) Clone() *Individual {
	cp := &Individual{
		Parameters: ind.Parameters.Clone(),
		objective:  ind.objective,
		maximize:   ind.maximize,
		dirty:      ind.dirty,
		errored:    ind.errored,
	}
	if ind.fitness != nil {
		cp.fitness = append([]float64(nil), ind.fitness...)
	}
	if ind.transformedFitness != nil {
		cp.transformedFitness = append([]float64(nil), ind.transformedFitness...)
	}
	return cp
}

// MarkDirty flags the individual's cached fitness as stale. Called
// whenever the parameter set is adapted or recombined.
func (ind *Individual) MarkDirty() { ind.dirty = true }

// SetParameters replaces the individual's parameter set, as recombination
// does when fusing two parents into a new child, and marks it dirty.
func (ind *Individual) SetParameters(params *parameter.Set) {
	ind.Parameters = params
	ind.dirty = true
}

// Dirty reports whether the cached fitness no longer matches the
// parameters.
func (ind *Individual) Dirty() bool { return ind.dirty }

// Errored reports whether the most recent evaluation attempt failed.
// Errored individuals are dropped by the engine after the evaluate phase.
func (ind *Individual) Errored() bool { return ind.errored }

// Fitness returns the cached fitness vector, evaluating the objective
// function first if the individual is dirty. Any error from the
// objective marks the individual as errored and is returned wrapped as
// an *EvaluationError.
func (ind *Individual) Fitness() ([]float64, error) {
	if !ind.dirty {
		return ind.fitness, nil
	}
	if ind.objective == nil {
		return nil, errors.New("geneva: individual has no objective function")
	}
	raw, err := ind.objective(ind.Parameters)
	if err != nil {
		ind.errored = true
		return nil, NewEvaluationError(err)
	}
	ind.fitness = raw
	ind.transformedFitness = make([]float64, len(raw))
	for i, v := range raw {
		if ind.maximize {
			ind.transformedFitness[i] = -v
		} else {
			ind.transformedFitness[i] = v
		}
	}
	ind.dirty = false
	ind.errored = false
	return ind.fitness, nil
}

// RawFitness returns the cached raw fitness vector as returned by the
// objective function, with no minimize/maximize transform applied. Does
// not trigger evaluation; call Fitness first.
func (ind *Individual) RawFitness() []float64 { return ind.fitness }

// TransformedFitness returns the minimize-transformed fitness (raw for
// minimization, negated for maximization) that selection always compares
// against. It does not trigger evaluation; call Fitness first.
func (ind *Individual) TransformedFitness() []float64 { return ind.transformedFitness }

// Primary returns the first (or only) transformed objective, the value
// single-objective selection schemes compare directly.
func (ind *Individual) Primary() float64 {
	if len(ind.transformedFitness) == 0 {
		return 0
	}
	return ind.transformedFitness[0]
}

// Maximize reports the optimization sense this individual was
// constructed under.
func (ind *Individual) Maximize() bool { return ind.maximize }
