package pool_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geneva/pool"
)

func runToCompletion(t *testing.T, p *pool.Pool, submit func()) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()
	submit()
	p.Shutdown()
	require.NoError(t, <-done)
}

func TestPoolRunsAllSubmittedTasks(t *testing.T) {
	p := pool.New(4, 0)
	var count atomic.Int64
	runToCompletion(t, p, func() {
		for i := 0; i < 100; i++ {
			p.Submit(func() error {
				count.Add(1)
				return nil
			})
		}
	})
	assert.EqualValues(t, 100, count.Load())
	assert.False(t, p.HasErrors())
}

func TestPoolCollectsTaskErrors(t *testing.T) {
	p := pool.New(2, 0)
	runToCompletion(t, p, func() {
		for i := 0; i < 10; i++ {
			i := i
			p.Submit(func() error {
				if i%2 == 0 {
					return errors.New("boom")
				}
				return nil
			})
		}
	})
	assert.True(t, p.HasErrors())
	assert.Len(t, p.Errors(), 5)
}

func TestPoolResetClearsErrorsForNextIteration(t *testing.T) {
	p := pool.New(1, 0)
	runToCompletion(t, p, func() {
		p.Submit(func() error { return errors.New("boom") })
	})
	require.True(t, p.HasErrors())

	p.Reset()
	assert.False(t, p.HasErrors())
	assert.Empty(t, p.Errors())

	runToCompletion(t, p, func() {
		p.Submit(func() error { return nil })
	})
	assert.False(t, p.HasErrors())
}
