package parameter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geneva/adaptor"
	"geneva/parameter"
)

func identityInt32(t *testing.T) adaptor.Int32Adaptor {
	t.Helper()
	base := adaptor.DefaultBase()
	base.Mode = adaptor.ModeNever
	id, err := adaptor.NewIdentity[int32](base)
	require.NoError(t, err)
	return id
}

func TestConstrainedInt32RejectsOutOfRangeValue(t *testing.T) {
	_, err := parameter.NewConstrainedInt32("n", 4, -1, 3, identityInt32(t))
	assert.Error(t, err)
}

func TestConstrainedInt32AllowsUpperBoundInclusive(t *testing.T) {
	p, err := parameter.NewConstrainedInt32("n", 3, -1, 3, identityInt32(t))
	require.NoError(t, err)
	assert.EqualValues(t, 3, p.Value())
}

func TestInt32RandomInitStaysWithinInclusiveBounds(t *testing.T) {
	src := newProxy(t)
	p, err := parameter.NewConstrainedInt32("n", 0, -1, 3, identityInt32(t))
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		p.RandomInit(src)
		v := p.Value()
		assert.GreaterOrEqual(t, v, int32(-1))
		assert.LessOrEqual(t, v, int32(3))
	}
}

func TestInt32UnconstrainedRandomInitIsNoOp(t *testing.T) {
	src := newProxy(t)
	p := parameter.NewInt32("n", 7, identityInt32(t))
	p.RandomInit(src)
	assert.EqualValues(t, 7, p.Value())
}

func TestInt32CloneIsIndependent(t *testing.T) {
	p, err := parameter.NewConstrainedInt32("n", 1, -1, 3, identityInt32(t))
	require.NoError(t, err)
	clone := p.Clone().(*parameter.Int32Param)
	require.NoError(t, p.SetValue(2, -1, 3))
	assert.NotEqual(t, p.Value(), clone.Value())
}
