package engine

import (
	"geneva"
	"geneva/rng"
)

// Recombine regenerates the child slots from the parents using the
// configured duplication scheme. iteration 0 always falls back to
// Random, since parent fitness is not yet meaningful for Value and
// amalgamation needs at least one evaluated best parent.
func Recombine(pop *Population, cfg geneva.Config, src rng.Source) {
	children := pop.Children()
	parents := pop.Parents()

	method := cfg.RecombinationMethod
	if pop.Iteration == 0 {
		method = geneva.RecombinationRandom
	}

	weights := valueWeights(len(parents))

	for i, child := range children {
		switch method {
		case geneva.RecombinationAmalgamation:
			if rng.Bernoulli(src, cfg.AmalgamationLikelihood) {
				best := parents[0]
				other := best
				if len(parents) > 1 {
					other = parents[rng.UniformInt(src, 1, int64(len(parents))-1)]
				}
				fused, err := best.Parameters.Amalgamate(other.Parameters, src)
				if err == nil {
					clone := best.Clone()
					clone.SetParameters(fused)
					clone.Traits.IsParent = false
					clone.Traits.ParentID = 0
					children[i] = clone
					continue
				}
			}
			fallthrough
		case geneva.RecombinationValue:
			idx := weightedChoice(src, weights)
			copyFromParent(children, i, parents[idx], idx)
		default: // RecombinationRandom
			idx := int(rng.UniformInt(src, 0, int64(len(parents))-1))
			copyFromParent(children, i, parents[idx], idx)
		}
	}
}

func copyFromParent(children []*geneva.Individual, slot int, parent *geneva.Individual, parentIdx int) {
	clone := parent.Clone()
	clone.Traits.IsParent = false
	clone.Traits.ParentID = parentIdx
	children[slot] = clone
}

// valueWeights computes the "best parent favoured" weighting
// 1/(i+2) normalized to sum to 1.
func valueWeights(n int) []float64 {
	w := make([]float64, n)
	sum := 0.0
	for i := range w {
		w[i] = 1.0 / float64(i+2)
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

func weightedChoice(src rng.Source, weights []float64) int {
	u := rng.UniformReal(src, 0, 1)
	cum := 0.0
	for i, w := range weights {
		cum += w
		if u < cum {
			return i
		}
	}
	return len(weights) - 1
}
