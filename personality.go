package geneva

// Traits holds per-algorithm scratch metadata attached to an Individual.
// They are replaced wholesale whenever an individual is rehomed to a
// different algorithm or population slot, never merged.
type Traits struct {
	// IsParent reports whether the individual currently occupies a
	// parent slot ([0, n_parents) of the population).
	IsParent bool

	// ParentID identifies which parent a child copied during
	// recombination. Not meaningful for individuals in parent slots, which
	// may still carry the value from when they were children.
	ParentID int

	// PopulationPosition is the individual's current slot index.
	PopulationPosition int

	// OnParetoFront reports whether the individual survived the most
	// recent multi-objective pareto tagging pass.
	OnParetoFront bool
}
