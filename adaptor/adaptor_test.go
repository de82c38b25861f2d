package adaptor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geneva/adaptor"
	"geneva/rng"
)

func testSource(t *testing.T) rng.Source {
	t.Helper()
	f, err := rng.NewFactory(rng.Config{NProducerThreads: 2})
	require.NoError(t, err)
	t.Cleanup(f.Shutdown)
	return rng.NewProxy(f)
}

func TestModeNeverNeverAdapts(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeNever
	g, err := adaptor.NewGaussian(base, 0.1, 0.01, 0.001, 10)
	require.NoError(t, err)

	value := 1.0
	changes := 0
	for i := 0; i < 1000; i++ {
		if g.Adapt(&value, 1, src) {
			changes++
		}
	}
	assert.Zero(t, changes)
}

func TestModeAlwaysAlmostAlwaysAdapts(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeAlways
	g, err := adaptor.NewGaussian(base, 0.1, 0.01, 0.001, 10)
	require.NoError(t, err)

	value := 1.0
	changes := 0
	for i := 0; i < 1000; i++ {
		if g.Adapt(&value, 1, src) {
			changes++
		}
	}
	assert.GreaterOrEqual(t, changes, 999)
}

func TestModeProbabilisticFrequency(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeProbabilistic
	base.AdProb = 0.2
	base.AdaptAdProb = 0 // hold ad_prob fixed to isolate the frequency check
	g, err := adaptor.NewGaussian(base, 0.1, 0, 0.001, 10)
	require.NoError(t, err)

	value := 1.0
	changes := 0
	const n = 100000
	for i := 0; i < n; i++ {
		if g.Adapt(&value, 1, src) {
			changes++
		}
	}
	freq := float64(changes) / n
	assert.InDelta(t, 0.2, freq, 0.2*0.2)
}

func TestGaussianSigmaStaysWithinBounds(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeAlways
	base.AdaptionThreshold = 1
	g, err := adaptor.NewGaussian(base, 1.0, 0.5, 0.01, 2.0)
	require.NoError(t, err)

	value := 0.0
	for i := 0; i < 5000; i++ {
		g.Adapt(&value, 1, src)
		assert.GreaterOrEqual(t, g.Sigma, 0.01)
		assert.LessOrEqual(t, g.Sigma, 2.0)
	}
}

func TestFlipBoolTogglesWhenAdapting(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeAlways
	f, err := adaptor.NewFlipBool(base)
	require.NoError(t, err)

	value := false
	changed := f.Adapt(&value, 0, src)
	assert.True(t, changed)
	assert.True(t, value)
}

func TestFlipIntMovesByOne(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeAlways
	f, err := adaptor.NewFlipInt(base)
	require.NoError(t, err)

	value := int32(5)
	f.Adapt(&value, 0, src)
	assert.True(t, value == 4 || value == 6)
}

func TestIdentityRejectsNonNeverMode(t *testing.T) {
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeAlways
	_, err := adaptor.NewIdentity[float64](base)
	assert.ErrorIs(t, err, adaptor.ErrIdentityModeMustBeNever)
}

func TestIdentityNeverAdapts(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeNever
	id, err := adaptor.NewIdentity[float64](base)
	require.NoError(t, err)

	value := 5.0
	for i := 0; i < 100; i++ {
		assert.False(t, id.Adapt(&value, 1, src))
	}
	assert.Equal(t, 5.0, value)
}

func TestUpdateOnStallResetsAdProb(t *testing.T) {
	base := adaptor.DefaultBase()
	base.AdProb = 0.9
	base.AdProbReset = 0.3
	g, err := adaptor.NewGaussian(base, 0.1, 0, 0.01, 1)
	require.NoError(t, err)

	changed := g.UpdateOnStall()
	assert.True(t, changed)
	assert.Equal(t, 0.3, g.AdProb)

	changed = g.UpdateOnStall()
	assert.False(t, changed)
}

func TestAdaptVectorAppliesToEachElement(t *testing.T) {
	src := testSource(t)
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeAlways
	g, err := adaptor.NewGaussian(base, 0.5, 0.05, 0.01, 5)
	require.NoError(t, err)

	values := make([]float64, 10)
	n := g.AdaptVector(values, 1, src)
	assert.Equal(t, 10, n)
	for _, v := range values {
		assert.NotEqual(t, 0.0, v)
	}
}
