package parameter

import (
	"github.com/pkg/errors"

	"geneva/adaptor"
	"geneva/rng"
)

// Int32Param is a 32-bit signed integer parameter, optionally constrained
// to [lo, hi] — upper bound inclusive, the key semantic difference from
// DoubleParam's half-open range.
type Int32Param struct {
	name        string
	internal    int32
	constrained bool
	lo, hi      int32
	adp         adaptor.Int32Adaptor
	activity    ActivityMode
}

// NewInt32 constructs an unconstrained integer parameter.
func NewInt32(name string, value int32, adp adaptor.Int32Adaptor) *Int32Param {
	return &Int32Param{name: name, internal: value, adp: adp, activity: ActiveOnly}
}

// NewConstrainedInt32 constructs an integer parameter bounded to [lo, hi].
func NewConstrainedInt32(name string, value, lo, hi int32, adp adaptor.Int32Adaptor) (*Int32Param, error) {
	p := &Int32Param{name: name, adp: adp, activity: ActiveOnly}
	if err := p.SetValue(value, lo, hi); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Int32Param) Kind() Kind   { return KindInt32 }
func (p *Int32Param) Name() string { return p.name }

func (p *Int32Param) Active(mode ActivityMode) bool {
	return mode == ActiveAndInactive || p.activity == ActiveOnly
}

func (p *Int32Param) Constrained() bool        { return p.constrained }
func (p *Int32Param) Bounds() (lo, hi int32)   { return p.lo, p.hi }

// Value returns the external (bounded) value.
func (p *Int32Param) Value() int32 {
	if !p.constrained {
		return p.internal
	}
	return foldInt32(p.internal, p.lo, p.hi)
}

// SetBoundaries changes [lo, hi], failing if the current external value
// would no longer lie within the new range.
func (p *Int32Param) SetBoundaries(lo, hi int32) error {
	if hi < lo {
		return errors.Errorf("parameter: invalid int32 bounds [%d, %d]", lo, hi)
	}
	ext := p.Value()
	if ext < lo || ext > hi {
		return errors.Errorf("parameter: value %d would fall outside new bounds [%d, %d]", ext, lo, hi)
	}
	p.lo, p.hi = lo, hi
	p.constrained = true
	p.internal = ext
	return nil
}

// SetValue atomically sets value, lo, and hi. hi is inclusive.
func (p *Int32Param) SetValue(value, lo, hi int32) error {
	if hi < lo {
		return errors.Errorf("parameter: invalid int32 bounds [%d, %d]", lo, hi)
	}
	if value < lo || value > hi {
		return errors.Errorf("parameter: value %d outside [%d, %d]", value, lo, hi)
	}
	p.internal, p.lo, p.hi = value, lo, hi
	p.constrained = true
	return nil
}

// RandomInit draws a fresh uniform value within [lo, hi] if constrained;
// otherwise it leaves the value as-is (an unconstrained integer has no
// natural range to sample from).
func (p *Int32Param) RandomInit(src rng.Source) {
	if p.constrained {
		p.internal = int32(rng.UniformInt(src, int64(p.lo), int64(p.hi)))
	}
}

// UpdateOnStall resets the adaptor's ad_prob after a non-improving
// iteration.
func (p *Int32Param) UpdateOnStall() bool { return p.adp.UpdateOnStall() }

// AdaptWith perturbs the internal value.
func (p *Int32Param) AdaptWith(src rng.Source) bool {
	typicalRange := 1.0
	if p.constrained {
		typicalRange = float64(p.hi) - float64(p.lo)
	}
	return p.adp.Adapt(&p.internal, typicalRange, src)
}

// Clone returns an independent copy, including a clone of the adaptor.
func (p *Int32Param) Clone() Leaf {
	cp := *p
	cp.adp = cloneInt32Adaptor(p.adp)
	return &cp
}

func cloneInt32Adaptor(a adaptor.Int32Adaptor) adaptor.Int32Adaptor {
	switch v := a.(type) {
	case *adaptor.FlipInt:
		cp := *v
		return &cp
	case *adaptor.Identity[int32]:
		cp := *v
		return &cp
	default:
		return a
	}
}
