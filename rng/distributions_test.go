package rng_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geneva/rng"
)

func withProxy(t *testing.T) *rng.Proxy {
	t.Helper()
	f := newTestFactory(t)
	return rng.NewProxy(f)
}

func TestUniformIntInclusiveBounds(t *testing.T) {
	src := withProxy(t)
	for i := 0; i < 5000; i++ {
		v := rng.UniformInt(src, -3, 3)
		assert.GreaterOrEqual(t, v, int64(-3))
		assert.LessOrEqual(t, v, int64(3))
	}
}

func TestUniformRealHalfOpen(t *testing.T) {
	src := withProxy(t)
	for i := 0; i < 5000; i++ {
		v := rng.UniformReal(src, -1, 1)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 1.0)
	}
}

func TestNormalRoughlyStandard(t *testing.T) {
	src := withProxy(t)
	sum, sumsq := 0.0, 0.0
	const n = 50000
	for i := 0; i < n; i++ {
		x := rng.Normal(src)
		sum += x
		sumsq += x * x
	}
	mean := sum / n
	variance := sumsq/n - mean*mean
	assert.InDelta(t, 0, mean, 0.05)
	assert.InDelta(t, 1, variance, 0.1)
}

func TestBiNormalTwoHumps(t *testing.T) {
	src := withProxy(t)
	b := rng.NewBiNormal(rng.BiNormalParams{Mu: 0, Sigma1: 0.01, Sigma2: 0.01, D: 10})
	lowCount, highCount := 0, 0
	for i := 0; i < 2000; i++ {
		v := b.Next(src)
		if v < 0 {
			lowCount++
		} else {
			highCount++
		}
	}
	assert.InDelta(t, 1000, lowCount, 150)
	assert.InDelta(t, 1000, highCount, 150)
}

func TestBiNormalResetRestoresConstructionParams(t *testing.T) {
	p := rng.BiNormalParams{Mu: 1, Sigma1: 2, Sigma2: 3, D: 4}
	b := rng.NewBiNormal(p)
	b.Reset()
	src := withProxy(t)
	v := b.Next(src)
	require.False(t, math.IsNaN(v))
}

func TestBernoulliFrequency(t *testing.T) {
	src := withProxy(t)
	const n = 100000
	count := 0
	for i := 0; i < n; i++ {
		if rng.Bernoulli(src, 0.3) {
			count++
		}
	}
	freq := float64(count) / n
	assert.InDelta(t, 0.3, freq, 0.02)
}
