// Package parameter implements Geneva's typed, optionally bounded
// parameter leaves and the parameter sets that hold them.
//
// Rather than the deep C++ template hierarchy this is distilled from
// (GParameterBase -> GParameterT<T> -> GConstrainedNumT<T> -> ...), each
// concrete leaf type is a small struct, and the handful of operations the
// engine needs polymorphically are captured in the Leaf interface below.
package parameter

import "geneva/rng"

// Kind identifies the scalar type carried by a Leaf.
type Kind int

const (
	KindDouble Kind = iota
	KindInt32
	KindBool
)

// ActivityMode selects which leaves randomInit touches. ActiveOnly is the
// common case; ActiveAndInactive exists for symmetry with the source's
// notion of leaves that can be toggled in/out of optimization.
type ActivityMode int

const (
	ActiveOnly ActivityMode = iota
	ActiveAndInactive
)

// Leaf is the small capability trait every parameter type implements: the
// operations the engine and parameter sets dispatch on
// polymorphically. Everything else (bounds, value access) lives on the
// concrete types.
type Leaf interface {
	// Kind reports the leaf's scalar type.
	Kind() Kind

	// Name returns the leaf's variable identity, used by name-indexed views.
	Name() string

	// Active reports whether randomInit should touch this leaf under mode.
	Active(mode ActivityMode) bool

	// AdaptWith perturbs the leaf's value via its owned adaptor, returning
	// whether it actually changed.
	AdaptWith(src rng.Source) bool

	// RandomInit draws a fresh value: uniform within the bounds for a
	// constrained leaf; unconstrained leaves follow their own type's rule.
	RandomInit(src rng.Source)

	// UpdateOnStall resets the leaf's adaptor state after a non-improving
	// iteration, returning whether anything changed.
	UpdateOnStall() bool

	// Clone returns an independent copy of the leaf (including its adaptor
	// state), since individuals never share mutable leaves.
	Clone() Leaf
}
