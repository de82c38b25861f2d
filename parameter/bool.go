package parameter

import (
	"geneva/adaptor"
	"geneva/rng"
)

// BoolParam is a boolean parameter. Booleans have no bounds, so there is
// no folding transfer for this type.
type BoolParam struct {
	name     string
	value    bool
	adp      adaptor.BoolAdaptor
	activity ActivityMode
}

// NewBool constructs a boolean parameter.
func NewBool(name string, value bool, adp adaptor.BoolAdaptor) *BoolParam {
	return &BoolParam{name: name, value: value, adp: adp, activity: ActiveOnly}
}

func (p *BoolParam) Kind() Kind   { return KindBool }
func (p *BoolParam) Name() string { return p.name }

func (p *BoolParam) Active(mode ActivityMode) bool {
	return mode == ActiveAndInactive || p.activity == ActiveOnly
}

// Value returns the current value.
func (p *BoolParam) Value() bool { return p.value }

// SetValue sets the current value.
func (p *BoolParam) SetValue(v bool) { p.value = v }

// RandomInit draws a fresh uniform boolean.
func (p *BoolParam) RandomInit(src rng.Source) {
	p.value = rng.Bernoulli(src, 0.5)
}

// AdaptWith perturbs the value via the owned adaptor.
func (p *BoolParam) AdaptWith(src rng.Source) bool {
	return p.adp.Adapt(&p.value, 0, src)
}

// UpdateOnStall resets the adaptor's ad_prob after a non-improving
// iteration.
func (p *BoolParam) UpdateOnStall() bool { return p.adp.UpdateOnStall() }

// Clone returns an independent copy, including a clone of the adaptor.
func (p *BoolParam) Clone() Leaf {
	cp := *p
	cp.adp = cloneBoolAdaptor(p.adp)
	return &cp
}

func cloneBoolAdaptor(a adaptor.BoolAdaptor) adaptor.BoolAdaptor {
	switch v := a.(type) {
	case *adaptor.FlipBool:
		cp := *v
		return &cp
	case *adaptor.Identity[bool]:
		cp := *v
		return &cp
	default:
		return a
	}
}
