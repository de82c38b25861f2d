package parameter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geneva/adaptor"
	"geneva/parameter"
	"geneva/rng"
)

func newProxy(t *testing.T) rng.Source {
	t.Helper()
	f, err := rng.NewFactory(rng.Config{NProducerThreads: 2})
	require.NoError(t, err)
	t.Cleanup(f.Shutdown)
	return rng.NewProxy(f)
}

func identityDouble(t *testing.T) adaptor.FloatAdaptor {
	t.Helper()
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeNever
	id, err := adaptor.NewIdentity[float64](base)
	require.NoError(t, err)
	return id
}

func TestConstrainedDoubleRejectsOutOfRangeValue(t *testing.T) {
	_, err := parameter.NewConstrainedDouble("x", 3.0, -1, 3, identityDouble(t))
	assert.Error(t, err)
}

func TestConstrainedDoubleFoldsValue(t *testing.T) {
	p, err := parameter.NewConstrainedDouble("x", 0.0, -1, 3, identityDouble(t))
	require.NoError(t, err)
	require.NoError(t, p.SetValue(2.9, -1, 3))
	assert.InDelta(t, 2.9, p.Value(), 1e-9)
}

func TestUnconstrainedDoubleReturnsRawInternal(t *testing.T) {
	p := parameter.NewDouble("x", 42.0, identityDouble(t))
	assert.Equal(t, 42.0, p.Value())
}

func TestDoubleActiveDispatchesOnMode(t *testing.T) {
	p := parameter.NewDouble("x", 0, identityDouble(t))
	assert.True(t, p.Active(parameter.ActiveOnly))
	assert.True(t, p.Active(parameter.ActiveAndInactive))
}

func TestDoubleRandomInitStaysWithinBounds(t *testing.T) {
	src := newProxy(t)
	p, err := parameter.NewConstrainedDouble("x", 0, -1, 3, identityDouble(t))
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		p.RandomInit(src)
		v := p.Value()
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 3.0)
	}
}

func TestDoubleCloneIsIndependent(t *testing.T) {
	p, err := parameter.NewConstrainedDouble("x", 1, -1, 3, identityDouble(t))
	require.NoError(t, err)
	clone := p.Clone().(*parameter.DoubleParam)
	require.NoError(t, p.SetValue(2, -1, 3))
	assert.NotEqual(t, p.Value(), clone.Value())
}

func TestDoubleSetBoundariesRejectsIncompatibleRange(t *testing.T) {
	p, err := parameter.NewConstrainedDouble("x", 2.5, -1, 3, identityDouble(t))
	require.NoError(t, err)
	assert.Error(t, p.SetBoundaries(0, 2))
}
