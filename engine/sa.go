package engine

import (
	"math"

	"geneva"
	"geneva/rng"
)

// SA implements Simulated Annealing's Metropolis-acceptance selection
// (spec §4.9) extending the parent-child base with a temperature
// schedule.
type SA struct {
	T0    float64
	T     float64
	Alpha float64
}

// NewSA constructs an SA strategy from configuration, preserving T0.
func NewSA(cfg geneva.Config) *SA {
	return &SA{T0: cfg.T0, T: cfg.T0, Alpha: cfg.Alpha}
}

// ResetToOptimizationStart restores the current temperature to T0.
func (sa *SA) ResetToOptimizationStart() { sa.T = sa.T0 }

func (sa *SA) Select(pop *Population, cfg geneva.Config, src rng.Source) error {
	children := pop.Children()
	SortByTransformed(children)
	bestChildren := children[:pop.NParents]
	parents := pop.Parents()

	for i, parent := range parents {
		child := bestChildren[i]
		delta := child.Primary() - parent.Primary()
		accept := delta <= 0
		if !accept {
			p := math.Exp(-delta / sa.T)
			u := rng.UniformReal(src, 0, 1)
			accept = u < p
		}
		if accept {
			child.Traits.ParentID = i
			parents[i] = child
		}
	}

	SortByTransformed(parents)
	sa.T *= sa.Alpha
	tagParents(pop)
	return nil
}
