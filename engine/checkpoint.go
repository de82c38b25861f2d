package engine

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"geneva"
)

// Checkpointing is an explicit thin out-of-scope collaborator: any format
// that round-trips the data model suffices, so this uses the standard
// library's encoding/json rather than a third-party serializer, which
// would not exercise any further behavior beyond round-tripping.

// IndividualSnapshot captures one individual's streamlined parameter
// vectors and cached fitness, enough to round-trip its state.
type IndividualSnapshot struct {
	Doubles            []float64    `json:"doubles"`
	Int32s             []int32      `json:"int32s"`
	Bools              []bool       `json:"bools"`
	Fitness            []float64    `json:"fitness"`
	TransformedFitness []float64    `json:"transformed_fitness"`
	Dirty              bool         `json:"dirty"`
	Traits             geneva.Traits `json:"traits"`
}

// Snapshot captures the entire population state: iteration counter,
// stall counter, best-ever fitness, and every individual's parameters.
type Snapshot struct {
	Iteration        uint32               `json:"iteration"`
	StallCounter     uint32               `json:"stall_counter"`
	BestEver         float64              `json:"best_ever"`
	HaveBestEver     bool                 `json:"have_best_ever"`
	NParents         int                  `json:"n_parents"`
	DefaultNChildren int                  `json:"default_n_children"`
	Temperature      *float64             `json:"temperature,omitempty"`
	Individuals      []IndividualSnapshot `json:"individuals"`
}

// BuildSnapshot captures pop's current state. temperature is non-nil
// only for Simulated Annealing runs.
func BuildSnapshot(pop *Population, temperature *float64) Snapshot {
	snap := Snapshot{
		Iteration:        pop.Iteration,
		StallCounter:     pop.StallCounter,
		BestEver:         pop.BestEver,
		HaveBestEver:     pop.HaveBestEver,
		NParents:         pop.NParents,
		DefaultNChildren: pop.DefaultNChildren,
		Temperature:      temperature,
		Individuals:      make([]IndividualSnapshot, len(pop.Individuals)),
	}
	for i, ind := range pop.Individuals {
		snap.Individuals[i] = IndividualSnapshot{
			Doubles:            ind.Parameters.DoubleVector(),
			Int32s:             ind.Parameters.Int32Vector(),
			Bools:              ind.Parameters.BoolVector(),
			Fitness:            ind.RawFitness(),
			TransformedFitness: ind.TransformedFitness(),
			Dirty:              ind.Dirty(),
			Traits:             ind.Traits,
		}
	}
	return snap
}

// SaveCheckpoint writes the population's current state to path as JSON.
func SaveCheckpoint(path string, pop *Population) error {
	return SaveSnapshot(path, BuildSnapshot(pop, nil))
}

// SaveSnapshot writes an already-built snapshot to path as JSON.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "engine: marshal checkpoint")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "engine: write checkpoint")
	}
	return nil
}

// LoadSnapshot reads and parses a checkpoint written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "engine: read checkpoint")
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrap(err, "engine: unmarshal checkpoint")
	}
	return snap, nil
}

// Restore assigns a snapshot's parameter vectors back into an existing
// population built from the same schema (same leaf count/types per
// individual), and restores the iteration/stall/best-ever bookkeeping.
func Restore(pop *Population, snap Snapshot) error {
	if len(snap.Individuals) != len(pop.Individuals) {
		return errors.Errorf("engine: checkpoint has %d individuals, population has %d", len(snap.Individuals), len(pop.Individuals))
	}
	for i, ind := range pop.Individuals {
		s := snap.Individuals[i]
		if err := ind.Parameters.AssignDoubleVector(s.Doubles); err != nil {
			return err
		}
		if err := ind.Parameters.AssignInt32Vector(s.Int32s); err != nil {
			return err
		}
		if err := ind.Parameters.AssignBoolVector(s.Bools); err != nil {
			return err
		}
		ind.Traits = s.Traits
		ind.MarkDirty()
	}
	pop.Iteration = snap.Iteration
	pop.StallCounter = snap.StallCounter
	pop.BestEver = snap.BestEver
	pop.HaveBestEver = snap.HaveBestEver
	pop.NParents = snap.NParents
	pop.DefaultNChildren = snap.DefaultNChildren
	return nil
}
