package parameter

import (
	"github.com/pkg/errors"

	"geneva/adaptor"
	"geneva/rng"
)

// DoubleParam is a continuous parameter, optionally constrained to
// [lo, hi) via the folding transfer function (transfer.go).
type DoubleParam struct {
	name        string
	internal    float64
	constrained bool
	lo, hi      float64
	adp         adaptor.FloatAdaptor
	activity    ActivityMode
}

// NewDouble constructs an unconstrained double parameter.
func NewDouble(name string, value float64, adp adaptor.FloatAdaptor) *DoubleParam {
	return &DoubleParam{name: name, internal: value, adp: adp, activity: ActiveOnly}
}

// NewConstrainedDouble constructs a double parameter bounded to [lo, hi).
// It fails if value does not already satisfy lo <= value < hi.
func NewConstrainedDouble(name string, value, lo, hi float64, adp adaptor.FloatAdaptor) (*DoubleParam, error) {
	p := &DoubleParam{name: name, adp: adp, activity: ActiveOnly}
	if err := p.SetValue(value, lo, hi); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *DoubleParam) Kind() Kind   { return KindDouble }
func (p *DoubleParam) Name() string { return p.name }

// Active reports whether randomInit should touch this leaf under mode:
// ActiveAndInactive always touches every leaf; ActiveOnly touches only
// leaves classified as active.
func (p *DoubleParam) Active(mode ActivityMode) bool {
	return mode == ActiveAndInactive || p.activity == ActiveOnly
}
func (p *DoubleParam) Constrained() bool              { return p.constrained }
func (p *DoubleParam) Bounds() (lo, hi float64)       { return p.lo, p.hi }

// Value returns the external (bounded) value: the internal value folded
// into [lo, hi) if constrained (or onto hi itself at the odd-fold points
// described on foldDouble), or the raw internal value otherwise.
func (p *DoubleParam) Value() float64 {
	if !p.constrained {
		return p.internal
	}
	return foldDouble(p.internal, p.lo, p.hi)
}

// SetBoundaries changes [lo, hi), failing if the current external value
// would no longer lie within the new range.
func (p *DoubleParam) SetBoundaries(lo, hi float64) error {
	if hi <= lo {
		return errors.Errorf("parameter: invalid double bounds [%g, %g)", lo, hi)
	}
	ext := p.Value()
	if ext < lo || ext >= hi {
		return errors.Errorf("parameter: value %g would fall outside new bounds [%g, %g)", ext, lo, hi)
	}
	p.lo, p.hi = lo, hi
	p.constrained = true
	p.internal = ext
	return nil
}

// SetValue atomically sets value, lo, and hi. hi is exclusive: passing
// value == hi fails.
func (p *DoubleParam) SetValue(value, lo, hi float64) error {
	if hi <= lo {
		return errors.Errorf("parameter: invalid double bounds [%g, %g)", lo, hi)
	}
	if value < lo || value >= hi {
		return errors.Errorf("parameter: value %g outside [%g, %g)", value, lo, hi)
	}
	p.internal, p.lo, p.hi = value, lo, hi
	p.constrained = true
	return nil
}

// RandomInit draws a fresh uniform value within [lo, hi) if constrained;
// otherwise it draws a standard-normal value, since an unconstrained
// parameter has no natural range to sample uniformly from.
func (p *DoubleParam) RandomInit(src rng.Source) {
	if p.constrained {
		p.internal = rng.UniformReal(src, p.lo, p.hi)
		return
	}
	p.internal = rng.Normal(src)
}

// UpdateOnStall resets the adaptor's ad_prob after a non-improving
// iteration.
func (p *DoubleParam) UpdateOnStall() bool { return p.adp.UpdateOnStall() }

// AdaptWith perturbs the internal value by the leaf's typical range
// (hi-lo if constrained, 1 otherwise).
func (p *DoubleParam) AdaptWith(src rng.Source) bool {
	typicalRange := 1.0
	if p.constrained {
		typicalRange = p.hi - p.lo
	}
	return p.adp.Adapt(&p.internal, typicalRange, src)
}

// Clone returns an independent copy, including a clone of the adaptor.
func (p *DoubleParam) Clone() Leaf {
	cp := *p
	cp.adp = cloneFloatAdaptor(p.adp)
	return &cp
}

func cloneFloatAdaptor(a adaptor.FloatAdaptor) adaptor.FloatAdaptor {
	switch v := a.(type) {
	case *adaptor.Gaussian:
		cp := *v
		return &cp
	case *adaptor.Identity[float64]:
		cp := *v
		return &cp
	default:
		return a
	}
}
