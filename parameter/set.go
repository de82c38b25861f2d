// Package parameter's Set type is the thing actually handed to a user's
// objective function: an ordered sequence of parameter leaves plus
// streamlined numerical views over them.
package parameter

import (
	"log/slog"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"geneva/rng"
)

// Set is an ordered sequence of parameter leaves.
type Set struct {
	leaves []Leaf
}

// NewSet constructs a parameter set from leaves, in sequence order.
func NewSet(leaves ...Leaf) *Set {
	return &Set{leaves: leaves}
}

// Leaves returns the set's leaves in sequence order.
func (s *Set) Leaves() []Leaf { return s.leaves }

// Len returns the number of leaves.
func (s *Set) Len() int { return len(s.leaves) }

// RandomInit draws a fresh value for every leaf whose activity matches
// mode.
func (s *Set) RandomInit(mode ActivityMode, src rng.Source) {
	for _, leaf := range s.leaves {
		if leaf.Active(mode) {
			leaf.RandomInit(src)
		}
	}
}

// AdaptAll calls AdaptWith on every leaf and returns how many changed.
func (s *Set) AdaptAll(src rng.Source) int {
	n := 0
	for _, leaf := range s.leaves {
		if leaf.AdaptWith(src) {
			n++
		}
	}
	return n
}

// Clone returns an independent deep copy of the set.
func (s *Set) Clone() *Set {
	leaves := make([]Leaf, len(s.leaves))
	for i, leaf := range s.leaves {
		leaves[i] = leaf.Clone()
	}
	return &Set{leaves: leaves}
}

// DoubleVector flattens all double-typed leaves, in sequence order, into
// a flat vector suitable for numerical work.
func (s *Set) DoubleVector() []float64 {
	v := make([]float64, 0, len(s.leaves))
	for _, leaf := range s.leaves {
		if d, ok := leaf.(*DoubleParam); ok {
			v = append(v, d.Value())
		}
	}
	if floats.HasNaN(v) {
		slog.Warn("parameter: double vector contains NaN")
	}
	return v
}

// Int32Vector flattens all int32-typed leaves, in sequence order.
func (s *Set) Int32Vector() []int32 {
	v := make([]int32, 0, len(s.leaves))
	for _, leaf := range s.leaves {
		if i, ok := leaf.(*Int32Param); ok {
			v = append(v, i.Value())
		}
	}
	return v
}

// BoolVector flattens all bool-typed leaves, in sequence order.
func (s *Set) BoolVector() []bool {
	v := make([]bool, 0, len(s.leaves))
	for _, leaf := range s.leaves {
		if b, ok := leaf.(*BoolParam); ok {
			v = append(v, b.Value())
		}
	}
	return v
}

// DoubleMap projects double-typed leaves into a name-indexed map of
// vectors, for variable-identity work (several leaves may share a name,
// e.g. repeated structural slots).
func (s *Set) DoubleMap() map[string][]float64 {
	m := make(map[string][]float64)
	for _, leaf := range s.leaves {
		if d, ok := leaf.(*DoubleParam); ok {
			m[d.Name()] = append(m[d.Name()], d.Value())
		}
	}
	return m
}

// AssignDoubleVector is the inverse of DoubleVector: it assigns v's
// entries back into the double-typed leaves in sequence order. It fails
// if the number of double leaves does not match len(v).
func (s *Set) AssignDoubleVector(v []float64) error {
	idx := 0
	for _, leaf := range s.leaves {
		d, ok := leaf.(*DoubleParam)
		if !ok {
			continue
		}
		if idx >= len(v) {
			return errors.Errorf("parameter: assignDoubleVector: expected %d values, got %d", s.countKind(KindDouble), len(v))
		}
		if d.constrained {
			if err := d.SetValue(v[idx], d.lo, d.hi); err != nil {
				return err
			}
		} else {
			d.internal = v[idx]
		}
		idx++
	}
	if idx != len(v) {
		return errors.Errorf("parameter: assignDoubleVector: expected %d values, got %d", idx, len(v))
	}
	return nil
}

// AssignInt32Vector is the inverse of Int32Vector.
func (s *Set) AssignInt32Vector(v []int32) error {
	idx := 0
	for _, leaf := range s.leaves {
		i, ok := leaf.(*Int32Param)
		if !ok {
			continue
		}
		if idx >= len(v) {
			return errors.Errorf("parameter: assignInt32Vector: expected %d values, got %d", s.countKind(KindInt32), len(v))
		}
		if i.constrained {
			if err := i.SetValue(v[idx], i.lo, i.hi); err != nil {
				return err
			}
		} else {
			i.internal = v[idx]
		}
		idx++
	}
	if idx != len(v) {
		return errors.Errorf("parameter: assignInt32Vector: expected %d values, got %d", idx, len(v))
	}
	return nil
}

// AssignBoolVector is the inverse of BoolVector.
func (s *Set) AssignBoolVector(v []bool) error {
	idx := 0
	for _, leaf := range s.leaves {
		b, ok := leaf.(*BoolParam)
		if !ok {
			continue
		}
		if idx >= len(v) {
			return errors.Errorf("parameter: assignBoolVector: expected %d values, got %d", s.countKind(KindBool), len(v))
		}
		b.value = v[idx]
		idx++
	}
	if idx != len(v) {
		return errors.Errorf("parameter: assignBoolVector: expected %d values, got %d", idx, len(v))
	}
	return nil
}

func (s *Set) countKind(k Kind) int {
	n := 0
	for _, leaf := range s.leaves {
		if leaf.Kind() == k {
			n++
		}
	}
	return n
}

// DoubleBoundaries gathers per-leaf [lo, hi) bounds for constrained double
// leaves, in sequence order.
func (s *Set) DoubleBoundaries() (lo, hi []float64) {
	for _, leaf := range s.leaves {
		if d, ok := leaf.(*DoubleParam); ok && d.constrained {
			lo = append(lo, d.lo)
			hi = append(hi, d.hi)
		}
	}
	return lo, hi
}

// Int32Boundaries gathers per-leaf [lo, hi] bounds for constrained int32
// leaves, in sequence order.
func (s *Set) Int32Boundaries() (lo, hi []int32) {
	for _, leaf := range s.leaves {
		if i, ok := leaf.(*Int32Param); ok && i.constrained {
			lo = append(lo, i.lo)
			hi = append(hi, i.hi)
		}
	}
	return lo, hi
}

// Amalgamate fuses self and other into a new set by uniform crossover:
// for each leaf position, the child takes self's or other's value with
// equal probability. self and other must have the same leaf kinds in the
// same order.
func (s *Set) Amalgamate(other *Set, src rng.Source) (*Set, error) {
	if len(s.leaves) != len(other.leaves) {
		return nil, errors.New("parameter: amalgamate requires sets of equal length")
	}
	child := s.Clone()
	for i := range child.leaves {
		if s.leaves[i].Kind() != other.leaves[i].Kind() {
			return nil, errors.Errorf("parameter: amalgamate kind mismatch at position %d", i)
		}
		if !rng.Bernoulli(src, 0.5) {
			child.leaves[i] = other.leaves[i].Clone()
		}
	}
	return child, nil
}

// PerItemCrossover swaps self's and other's values, leaf by leaf, each
// with independent probability p. Both sets are mutated in place, mirroring
// the teacher's in-place vector crossover style (real/cross.go, integer/cross.go).
func (s *Set) PerItemCrossover(other *Set, p float64, src rng.Source) error {
	if len(s.leaves) != len(other.leaves) {
		return errors.New("parameter: per-item crossover requires sets of equal length")
	}
	for i := range s.leaves {
		if s.leaves[i].Kind() != other.leaves[i].Kind() {
			return errors.Errorf("parameter: per-item crossover kind mismatch at position %d", i)
		}
		if !rng.Bernoulli(src, p) {
			continue
		}
		switch a := s.leaves[i].(type) {
		case *DoubleParam:
			b := other.leaves[i].(*DoubleParam)
			a.internal, b.internal = b.internal, a.internal
		case *Int32Param:
			b := other.leaves[i].(*Int32Param)
			a.internal, b.internal = b.internal, a.internal
		case *BoolParam:
			b := other.leaves[i].(*BoolParam)
			a.value, b.value = b.value, a.value
		}
	}
	return nil
}
