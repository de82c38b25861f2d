// Package adaptor implements Geneva's self-adapting mutation operators.
//
// The source's deep virtual-dispatch hierarchy (GAdaptorT<T> ->
// GNumGaussAdaptorT<T> / GInt32FlipAdaptor / GBooleanAdaptor /
// GIdentityAdaptorT<T>) becomes a small closed set of concrete types here,
// all sharing the Base state and self-adaption algorithm below. Each
// concrete type (Gaussian, FlipInt, FlipBool, Identity[T]) implements the
// per-scalar-type Adaptor interface for its value type, so parameter
// leaves hold a statically-typed adaptor field with no boxing.
package adaptor

import (
	"math"

	"github.com/pkg/errors"

	"geneva/rng"
)

// Source is the uniform random source every adaptor draws from.
type Source = rng.Source

// Mode selects when an adaptor actually perturbs its target.
type Mode int

const (
	// ModeAlways perturbs on every call.
	ModeAlways Mode = iota
	// ModeNever never perturbs. It is the only mode Identity accepts.
	ModeNever
	// ModeProbabilistic perturbs with probability AdProb.
	ModeProbabilistic
)

// ErrIdentityModeMustBeNever is returned when constructing an Identity
// adaptor with any mode but ModeNever.
var ErrIdentityModeMustBeNever = errors.New("adaptor: identity adaptor's mode must be ModeNever")

// Base holds the state shared by every adaptor, per spec §3's adaptor
// state table.
type Base struct {
	AdProb      float64 // probability a call actually perturbs the value
	AdProbReset float64 // value restored by UpdateOnStall
	MinAdProb   float64
	MaxAdProb   float64

	AdaptAdProb float64 // sigma of the lognormal drift applied to AdProb

	Mode Mode

	AdaptionThreshold uint32 // after this many calls, self-adapt
	adaptionCounter   uint32
	AdaptAdaptionProb float64 // alternative threshold-free trigger
}

// DefaultBase returns sensible defaults matching the source's usual
// construction values.
func DefaultBase() Base {
	return Base{
		AdProb:            0.5,
		AdProbReset:       0.5,
		MinAdProb:         0,
		MaxAdProb:         1,
		AdaptAdProb:       0,
		Mode:              ModeProbabilistic,
		AdaptionThreshold: 1,
		AdaptAdaptionProb: 0,
	}
}

// Validate checks the invariants from spec §3: probabilities in range and
// clamp bounds consistent.
func (b Base) Validate() error {
	switch {
	case b.MinAdProb > b.AdProb || b.AdProb > b.MaxAdProb:
		return errors.Errorf("adaptor: ad_prob %g outside [%g, %g]", b.AdProb, b.MinAdProb, b.MaxAdProb)
	case b.MinAdProb < 0 || b.MaxAdProb > 1:
		return errors.Errorf("adaptor: ad_prob bounds [%g, %g] outside [0, 1]", b.MinAdProb, b.MaxAdProb)
	case b.AdaptAdProb < 0:
		return errors.New("adaptor: adapt_ad_prob must be non-negative")
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// selfAdapt applies the lognormal drift to AdProb, common to every adaptor
// regardless of target type.
func (b *Base) selfAdapt(src Source) {
	if b.AdaptAdProb > 0 {
		b.AdProb *= math.Exp(rng.Normal(src) * b.AdaptAdProb * rng.Sign(src))
		b.AdProb = clamp(b.AdProb, b.MinAdProb, b.MaxAdProb)
	}
}

// shouldAdaptAdaption reports whether this call should invoke the
// adaptor-specific self-update, per the threshold/probability trigger
// described in spec §4.2.
func (b *Base) shouldAdaptAdaption(src Source) bool {
	if b.AdaptionThreshold > 0 {
		b.adaptionCounter++
		if b.adaptionCounter >= b.AdaptionThreshold {
			b.adaptionCounter = 0
			return true
		}
		return false
	}
	return rng.Bernoulli(src, b.AdaptAdaptionProb)
}

// UpdateOnStall resets AdProb to AdProbReset. It returns whether the reset
// changed anything, so callers (the engine's actOnStalls) can tell whether
// the reset was a no-op.
func (b *Base) UpdateOnStall() bool {
	if b.AdProb == b.AdProbReset {
		return false
	}
	b.AdProb = b.AdProbReset
	return true
}

// runAlgorithm executes the shared per-call algorithm from spec §4.2:
// self-adapt AdProb, then dispatch on Mode, invoking customAdaptions and
// (conditionally) customAdaptAdaption. It reports whether the value was
// perturbed.
func runAlgorithm(b *Base, src Source, customAdaptAdaption, customAdaptions func(Source)) bool {
	b.selfAdapt(src)

	switch b.Mode {
	case ModeNever:
		return false

	case ModeAlways:
		if b.shouldAdaptAdaption(src) {
			customAdaptAdaption(src)
		}
		customAdaptions(src)
		return true

	case ModeProbabilistic:
		if !rng.Bernoulli(src, b.AdProb) {
			return false
		}
		if b.shouldAdaptAdaption(src) {
			customAdaptAdaption(src)
		}
		customAdaptions(src)
		return true

	default:
		return false
	}
}
