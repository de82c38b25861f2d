package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"geneva"
)

// Stats summarizes a population's raw (untransformed) primary-objective
// fitness, the way the teacher's running Stats collector does, but
// computed directly over a snapshot slice via gonum/stat rather than an
// incremental Welford update, since the engine already holds the whole
// population in memory every iteration.
type Stats struct {
	max, min, mean, stddev float64
	n                      int
}

// CollectStats summarizes the primary objective across individuals.
// Individuals without a cached fitness are skipped.
func CollectStats(individuals []*geneva.Individual) Stats {
	values := make([]float64, 0, len(individuals))
	for _, ind := range individuals {
		f := ind.RawFitness()
		if len(f) == 0 {
			continue
		}
		values = append(values, f[0])
	}
	if len(values) == 0 {
		return Stats{max: math.Inf(-1), min: math.Inf(1)}
	}
	mean, variance := stat.MeanVariance(values, nil)
	return Stats{
		max:    floats.Max(values),
		min:    floats.Min(values),
		mean:   mean,
		stddev: math.Sqrt(variance),
		n:      len(values),
	}
}

func (s Stats) Max() float64     { return s.max }
func (s Stats) Min() float64     { return s.min }
func (s Stats) Range() float64   { return s.max - s.min }
func (s Stats) Mean() float64    { return s.mean }
func (s Stats) StdDev() float64  { return s.stddev }
func (s Stats) Len() int         { return s.n }

func (s Stats) String() string {
	return fmt.Sprintf("Max: %f | Min: %f | SD: %f", s.max, s.min, s.stddev)
}
