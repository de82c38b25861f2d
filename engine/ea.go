package engine

import (
	"geneva"
	"geneva/rng"
)

// EA implements the Evolutionary Algorithm's five selection schemes
// (spec §4.8), dispatching on cfg.SortingMode.
type EA struct{}

func (EA) Select(pop *Population, cfg geneva.Config, src rng.Source) error {
	mode := cfg.SortingMode
	if isPareto(mode) && len(pop.Individuals[0].TransformedFitness()) < 2 {
		// Falls back to the corresponding single-objective scheme when
		// only one objective exists.
		mode = paretoFallback(mode)
	}

	switch mode {
	case geneva.SortMuPlusLambdaSingleEval:
		selectMuPlusLambda(pop)
	case geneva.SortMuCommaLambdaSingleEval:
		if pop.Iteration == 0 {
			selectMuPlusLambda(pop)
		} else {
			selectMuCommaLambda(pop)
		}
	case geneva.SortMuCommaOnePretain:
		if pop.Iteration == 0 || pop.NParents == 1 {
			selectMuPlusLambda(pop)
		} else {
			selectMuCommaOnePretain(pop)
		}
	case geneva.SortMuPlusLambdaPareto:
		selectParetoMuPlusLambda(pop, src)
	case geneva.SortMuCommaLambdaPareto:
		if pop.Iteration == 0 {
			selectParetoMuPlusLambda(pop, src)
		} else {
			for _, parent := range pop.Parents() {
				parent.Traits.OnParetoFront = false
			}
			selectParetoMuPlusLambda(pop, src)
		}
	}
	return nil
}

func isPareto(mode geneva.SortingMode) bool {
	return mode == geneva.SortMuPlusLambdaPareto || mode == geneva.SortMuCommaLambdaPareto
}

func paretoFallback(mode geneva.SortingMode) geneva.SortingMode {
	if mode == geneva.SortMuCommaLambdaPareto {
		return geneva.SortMuCommaLambdaSingleEval
	}
	return geneva.SortMuPlusLambdaSingleEval
}

// selectMuPlusLambda partial-sorts the full population by transformed
// fitness and takes the best NParents as the new parent slots.
func selectMuPlusLambda(pop *Population) {
	SortByTransformed(pop.Individuals)
	tagParents(pop)
}

// selectMuCommaLambda partial-sorts children only and swaps the best
// NParents of them into the parent slots; old parents are discarded.
func selectMuCommaLambda(pop *Population) {
	children := append([]*geneva.Individual(nil), pop.Children()...)
	SortByTransformed(children)

	newParents := children[:pop.NParents]
	rest := children[pop.NParents:]

	result := make([]*geneva.Individual, 0, len(pop.Individuals))
	result = append(result, newParents...)
	result = append(result, rest...)
	for len(result) < len(pop.Individuals) {
		result = append(result, newParents[0].Clone())
	}
	pop.Individuals = result[:len(pop.Individuals)]
	tagParents(pop)
}

// selectMuCommaOnePretain replaces all parents by the best children iff
// the best child beats the current best parent; otherwise the best
// parent survives in slot 0 and the remaining parent slots are filled
// with the best remaining children.
func selectMuCommaOnePretain(pop *Population) {
	children := append([]*geneva.Individual(nil), pop.Children()...)
	SortByTransformed(children)

	bestParent := pop.Parents()[0]
	if children[0].Primary() < bestParent.Primary() {
		newParents := children[:pop.NParents]
		rest := children[pop.NParents:]
		result := make([]*geneva.Individual, 0, len(pop.Individuals))
		result = append(result, newParents...)
		result = append(result, rest...)
		for len(result) < len(pop.Individuals) {
			result = append(result, newParents[0].Clone())
		}
		pop.Individuals = result[:len(pop.Individuals)]
	} else {
		newParents := make([]*geneva.Individual, pop.NParents)
		newParents[0] = bestParent
		copy(newParents[1:], children[:pop.NParents-1])
		rest := children[pop.NParents-1:]
		result := make([]*geneva.Individual, 0, len(pop.Individuals))
		result = append(result, newParents...)
		result = append(result, rest...)
		for len(result) < len(pop.Individuals) {
			result = append(result, bestParent.Clone())
		}
		pop.Individuals = result[:len(pop.Individuals)]
	}
	tagParents(pop)
}

// selectParetoMuPlusLambda tags the pareto front over the whole
// population, partitions front members first, pads or trims to
// NParents, then sorts the parent section by primary objective.
func selectParetoMuPlusLambda(pop *Population, src rng.Source) {
	tagParetoFront(pop.Individuals)
	frontCount := partitionFront(pop.Individuals)

	if frontCount > pop.NParents {
		shuffle(pop.Individuals[:frontCount], src)
	} else if frontCount < pop.NParents {
		offFront := pop.Individuals[frontCount:]
		SortByTransformed(offFront)
	}

	SortByTransformed(pop.Individuals[:pop.NParents])
	tagParents(pop)
}

func tagParents(pop *Population) {
	for i, ind := range pop.Individuals {
		ind.Traits.IsParent = i < pop.NParents
		ind.Traits.PopulationPosition = i
	}
}

func shuffle(individuals []*geneva.Individual, src rng.Source) {
	for i := len(individuals) - 1; i > 0; i-- {
		j := int(rng.UniformInt(src, 0, int64(i)))
		individuals[i], individuals[j] = individuals[j], individuals[i]
	}
}
