package adaptor

import "geneva/rng"

// FlipInt mutates a 32-bit integer parameter by ±1 with equal probability.
// Clamping back into the parameter's bounds is the leaf's job (the folding
// transfer function), not the adaptor's.
type FlipInt struct {
	Base
}

// NewFlipInt constructs a FlipInt adaptor.
func NewFlipInt(base Base) (*FlipInt, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return &FlipInt{Base: base}, nil
}

// Adapt perturbs *value in place and reports whether it changed.
func (f *FlipInt) Adapt(value *int32, typicalRange float64, src Source) bool {
	return runAlgorithm(&f.Base, src,
		func(Source) {}, // FlipInt has no adaptor-self-parameters to evolve.
		func(src Source) { f.customAdaptions(value, src) },
	)
}

// AdaptVector applies Adapt to every element, per the vector-overload
// semantics in spec §4.2.
func (f *FlipInt) AdaptVector(values []int32, typicalRange float64, src Source) int {
	n := 0
	for i := range values {
		if f.Adapt(&values[i], typicalRange, src) {
			n++
		}
	}
	return n
}

func (f *FlipInt) customAdaptions(value *int32, src Source) {
	if rng.Bernoulli(src, 0.5) {
		*value++
	} else {
		*value--
	}
}

// UpdateOnStall resets AdProb to AdProbReset.
func (f *FlipInt) UpdateOnStall() bool {
	return f.Base.UpdateOnStall()
}

// FlipBool toggles a boolean parameter.
type FlipBool struct {
	Base
}

// NewFlipBool constructs a FlipBool adaptor.
func NewFlipBool(base Base) (*FlipBool, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return &FlipBool{Base: base}, nil
}

// Adapt toggles *value and reports whether it changed (always true when
// the common algorithm decides to perturb, since toggling a bool always
// changes it).
func (f *FlipBool) Adapt(value *bool, typicalRange float64, src Source) bool {
	return runAlgorithm(&f.Base, src,
		func(Source) {},
		func(Source) { *value = !*value },
	)
}

// AdaptVector applies the flip to each bool independently, invoking the
// self-adaption trigger once per position — the vector-overload semantics
// re-derived in spec §9 for the otherwise-unseen GAdaptorT<bool>::adapt.
func (f *FlipBool) AdaptVector(values []bool, typicalRange float64, src Source) int {
	n := 0
	for i := range values {
		if f.Adapt(&values[i], typicalRange, src) {
			n++
		}
	}
	return n
}

// UpdateOnStall resets AdProb to AdProbReset.
func (f *FlipBool) UpdateOnStall() bool {
	return f.Base.UpdateOnStall()
}
