package parameter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geneva/parameter"
)

func newDoubleSet(t *testing.T) *parameter.Set {
	t.Helper()
	a, err := parameter.NewConstrainedDouble("a", 0, -1, 3, identityDouble(t))
	require.NoError(t, err)
	b, err := parameter.NewConstrainedDouble("b", 1, -1, 3, identityDouble(t))
	require.NoError(t, err)
	return parameter.NewSet(a, b)
}

func TestSetDoubleVectorRoundTrips(t *testing.T) {
	s := newDoubleSet(t)
	v := s.DoubleVector()
	assert.Equal(t, []float64{0, 1}, v)

	require.NoError(t, s.AssignDoubleVector([]float64{2, -0.5}))
	assert.Equal(t, []float64{2, -0.5}, s.DoubleVector())
}

func TestSetAssignDoubleVectorRejectsWrongLength(t *testing.T) {
	s := newDoubleSet(t)
	assert.Error(t, s.AssignDoubleVector([]float64{1}))
	assert.Error(t, s.AssignDoubleVector([]float64{1, 2, 3}))
}

func TestSetDoubleBoundaries(t *testing.T) {
	s := newDoubleSet(t)
	lo, hi := s.DoubleBoundaries()
	assert.Equal(t, []float64{-1, -1}, lo)
	assert.Equal(t, []float64{3, 3}, hi)
}

func TestSetCloneIsIndependent(t *testing.T) {
	s := newDoubleSet(t)
	clone := s.Clone()
	require.NoError(t, s.AssignDoubleVector([]float64{2, 2}))
	assert.NotEqual(t, s.DoubleVector(), clone.DoubleVector())
}

func TestSetAmalgamateProducesMixOfParents(t *testing.T) {
	src := newProxy(t)
	a := newDoubleSet(t)
	require.NoError(t, a.AssignDoubleVector([]float64{0, 0}))
	b := newDoubleSet(t)
	require.NoError(t, b.AssignDoubleVector([]float64{1, 1}))

	seenZero, seenOne := false, false
	for i := 0; i < 200; i++ {
		child, err := a.Amalgamate(b, src)
		require.NoError(t, err)
		v := child.DoubleVector()
		for _, x := range v {
			if x == 0 {
				seenZero = true
			}
			if x == 1 {
				seenOne = true
			}
		}
	}
	assert.True(t, seenZero)
	assert.True(t, seenOne)
}

func TestSetAmalgamateRejectsLengthMismatch(t *testing.T) {
	src := newProxy(t)
	a := newDoubleSet(t)
	single, err := parameter.NewConstrainedDouble("a", 0, -1, 3, identityDouble(t))
	require.NoError(t, err)
	b := parameter.NewSet(single)
	_, err = a.Amalgamate(b, src)
	assert.Error(t, err)
}

func TestSetPerItemCrossoverSwapsUnderCertainty(t *testing.T) {
	src := newProxy(t)
	a := newDoubleSet(t)
	require.NoError(t, a.AssignDoubleVector([]float64{0, 0}))
	b := newDoubleSet(t)
	require.NoError(t, b.AssignDoubleVector([]float64{1, 1}))

	require.NoError(t, a.PerItemCrossover(b, 1.0, src))
	assert.Equal(t, []float64{1, 1}, a.DoubleVector())
	assert.Equal(t, []float64{0, 0}, b.DoubleVector())
}

func TestSetPerItemCrossoverNoOpAtZeroProbability(t *testing.T) {
	src := newProxy(t)
	a := newDoubleSet(t)
	require.NoError(t, a.AssignDoubleVector([]float64{0, 0}))
	b := newDoubleSet(t)
	require.NoError(t, b.AssignDoubleVector([]float64{1, 1}))

	require.NoError(t, a.PerItemCrossover(b, 0.0, src))
	assert.Equal(t, []float64{0, 0}, a.DoubleVector())
	assert.Equal(t, []float64{1, 1}, b.DoubleVector())
}

func TestSetRandomInitTouchesAllLeavesWithinBounds(t *testing.T) {
	src := newProxy(t)
	s := newDoubleSet(t)
	s.RandomInit(parameter.ActiveOnly, src)
	for _, v := range s.DoubleVector() {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.Less(t, v, 3.0)
	}
}
