package engine

import "geneva"

// dominates reports whether a dominates b in the minimize-transformed
// sense: no objective of a is worse than b's.
func dominates(a, b *geneva.Individual) bool {
	af, bf := a.TransformedFitness(), b.TransformedFitness()
	for i := range af {
		if af[i] > bf[i] {
			return false
		}
	}
	return true
}

// tagParetoFront marks OnParetoFront on every individual not dominated
// by any other, via the pairwise comparison the spec names directly
// ("for every pair, if a dominates b then b is off-front").
func tagParetoFront(individuals []*geneva.Individual) {
	for _, ind := range individuals {
		ind.Traits.OnParetoFront = true
	}
	for i, a := range individuals {
		for j, b := range individuals {
			if i == j {
				continue
			}
			if dominates(a, b) {
				b.Traits.OnParetoFront = false
			}
		}
	}
}

// partitionFront stable-partitions individuals so front members come
// first, returning the count of front members.
func partitionFront(individuals []*geneva.Individual) int {
	front := make([]*geneva.Individual, 0, len(individuals))
	rest := make([]*geneva.Individual, 0, len(individuals))
	for _, ind := range individuals {
		if ind.Traits.OnParetoFront {
			front = append(front, ind)
		} else {
			rest = append(rest, ind)
		}
	}
	copy(individuals, front)
	copy(individuals[len(front):], rest)
	return len(front)
}
