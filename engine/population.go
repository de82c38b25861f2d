// Package engine implements the parent-child optimization loop: the base
// init/grow/recombine/adapt/evaluate/post/select/halt/finalize state
// machine, its Evolutionary Algorithm and Simulated Annealing
// specializations, pareto selection, population statistics, and
// checkpointing.
package engine

import (
	"sort"

	"geneva"
	"geneva/parameter"
	"geneva/rng"
)

const activityMode = parameter.ActiveOnly

// Population holds the individuals under optimization plus the
// bookkeeping the parent-child algorithm needs between iterations.
// After selection, slots [0, NParents) hold parents and slots
// [NParents, len) hold children; slot 0 is always the best-known
// solution.
type Population struct {
	Individuals      []*geneva.Individual
	NParents         int
	DefaultNChildren int
	Iteration        uint32
	StallCounter     uint32
	BestEver         float64
	HaveBestEver     bool
}

// NewPopulation builds a population by cloning seed PopulationSize
// times and randomly reinitializing every clone's parameters, per the
// init state's "resize with clones of the first user-provided
// individual" rule.
func NewPopulation(cfg geneva.Config, seed *geneva.Individual, src rng.Source) *Population {
	individuals := make([]*geneva.Individual, cfg.PopulationSize)
	for i := range individuals {
		ind := seed.Clone()
		ind.Parameters.RandomInit(activityMode, src)
		ind.MarkDirty()
		individuals[i] = ind
	}
	return &Population{
		Individuals:      individuals,
		NParents:         cfg.NParents,
		DefaultNChildren: cfg.PopulationSize - cfg.NParents,
	}
}

// Parents returns the current parent slots.
func (p *Population) Parents() []*geneva.Individual { return p.Individuals[:p.NParents] }

// Children returns the current child slots.
func (p *Population) Children() []*geneva.Individual { return p.Individuals[p.NParents:] }

// Best returns the best-known individual, which after selection always
// occupies slot 0.
func (p *Population) Best() *geneva.Individual { return p.Individuals[0] }

// EvaluationRange returns the slice of individuals that need
// evaluation this iteration: everyone in iteration 0 (parents need
// initial evaluation too), children only afterward.
func (p *Population) EvaluationRange() []*geneva.Individual {
	if p.Iteration == 0 {
		return p.Individuals
	}
	return p.Children()
}

// SortByTransformed stable-sorts individuals ascending by their primary
// transformed fitness (lower is better in the minimize-transformed
// world selection always works in).
func SortByTransformed(individuals []*geneva.Individual) {
	sort.SliceStable(individuals, func(i, j int) bool {
		return individuals[i].Primary() < individuals[j].Primary()
	})
}

// Trim drops individuals beyond n_parents+default_n_children,
// discarding late-returning stragglers while keeping every parent slot.
func (p *Population) Trim() {
	want := p.NParents + p.DefaultNChildren
	if len(p.Individuals) > want {
		p.Individuals = p.Individuals[:want]
	}
}

// Grow appends clones of the last slot when growthRate > 0 and the
// next size would not exceed maxPopulationSize.
func (p *Population) Grow(growthRate, maxPopulationSize int, src rng.Source) {
	if growthRate <= 0 {
		return
	}
	next := len(p.Individuals) + growthRate
	if maxPopulationSize > 0 && next > maxPopulationSize {
		return
	}
	last := p.Individuals[len(p.Individuals)-1]
	for i := 0; i < growthRate; i++ {
		clone := last.Clone()
		clone.Parameters.RandomInit(activityMode, src)
		clone.MarkDirty()
		p.Individuals = append(p.Individuals, clone)
	}
	p.DefaultNChildren += growthRate
}

// UpdateStallCounter resets the stall counter if the new best beats the
// previous best-ever (in the minimize-transformed sense), else
// increments it. Returns whether this iteration improved on the record.
func (p *Population) UpdateStallCounter() (improved bool) {
	best := p.Best().Primary()
	if !p.HaveBestEver || best < p.BestEver {
		p.BestEver = best
		p.HaveBestEver = true
		p.StallCounter = 0
		return true
	}
	p.StallCounter++
	return false
}
