package adaptor

import (
	"math"

	"geneva/rng"
)

// Gaussian is the self-adapting mutation operator for continuous
// parameters. Its own step size, Sigma, evolves via lognormal
// perturbation of itself (customAdaptAdaption), and each call perturbs the
// target value by Sigma*typicalRange*N(0,1) (customAdaptions).
type Gaussian struct {
	Base

	Sigma      float64
	SigmaSigma float64
	MinSigma   float64
	MaxSigma   float64
}

// NewGaussian constructs a Gaussian adaptor, validating the invariants
// from spec §3 (min_sigma <= sigma <= max_sigma, sigma >= 0).
func NewGaussian(base Base, sigma, sigmaSigma, minSigma, maxSigma float64) (*Gaussian, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if minSigma < 0 || sigma < minSigma || sigma > maxSigma {
		return nil, errBadSigma(sigma, minSigma, maxSigma)
	}
	return &Gaussian{Base: base, Sigma: sigma, SigmaSigma: sigmaSigma, MinSigma: minSigma, MaxSigma: maxSigma}, nil
}

// Adapt perturbs *value in place and reports whether it changed.
func (g *Gaussian) Adapt(value *float64, typicalRange float64, src Source) bool {
	return runAlgorithm(&g.Base, src,
		func(src Source) { g.customAdaptAdaption(src) },
		func(src Source) { g.customAdaptions(value, typicalRange, src) },
	)
}

// AdaptVector applies Adapt to every element. Per spec §4.2, the full
// per-call algorithm (including the self-adaption trigger) runs once per
// vector position, not once for the whole vector — this is an explicit,
// documented tradeoff in the source, not an oversight.
func (g *Gaussian) AdaptVector(values []float64, typicalRange float64, src Source) int {
	n := 0
	for i := range values {
		if g.Adapt(&values[i], typicalRange, src) {
			n++
		}
	}
	return n
}

func (g *Gaussian) customAdaptions(value *float64, typicalRange float64, src Source) {
	*value += g.Sigma * typicalRange * rng.Normal(src)
}

func (g *Gaussian) customAdaptAdaption(src Source) {
	g.Sigma *= math.Exp(rng.Normal(src) * g.SigmaSigma * rng.Sign(src))
	g.Sigma = clamp(g.Sigma, g.MinSigma, g.MaxSigma)
}

// UpdateOnStall resets AdProb to AdProbReset (it does not touch Sigma,
// which is left to keep evolving on its own merits across stalls).
func (g *Gaussian) UpdateOnStall() bool {
	return g.Base.UpdateOnStall()
}
