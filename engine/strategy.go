package engine

import (
	"geneva"
	"geneva/rng"
)

// Strategy implements the algorithm-specific select phase (spec §4.8,
// §4.9): given a population whose children have just been adapted and
// evaluated, arrange Individuals so slots [0, NParents) hold the next
// iteration's parents.
type Strategy interface {
	Select(pop *Population, cfg geneva.Config, src rng.Source) error
}
