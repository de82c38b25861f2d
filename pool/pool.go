// Package pool provides a fixed-size worker pool for fanning adaptation
// and evaluation tasks out across goroutines, collecting per-task errors
// instead of failing fast. It is the mechanism the engine's adapt and
// evaluate phases submit work through.
package pool

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"geneva/queue"
)

// Task is a unit of work submitted to the pool. It receives no argument
// and returns an error; callers close over whatever state the task
// needs (mirroring the teacher's closure-based fan-out in
// gen/generational.go's mate helper).
type Task func() error

// Pool is a fixed-size pool of worker goroutines draining a bounded task
// queue. Submit queues work; after Shutdown, Run returns once every
// submitted task has run, and Errors returns the aggregated error list.
type Pool struct {
	queue   *queue.Bounded[Task]
	workers int

	mu     sync.Mutex
	errs   []error
	done   chan struct{}
	closed bool
}

// New constructs a pool with the given number of worker goroutines. A
// queue capacity of 0 means unbounded, matching queue.Bounded's own
// convention.
func New(workers int, queueCapacity int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		queue:   queue.New[Task](queueCapacity),
		workers: workers,
		done:    make(chan struct{}),
	}
}

// Run starts the worker goroutines and blocks until ctx is cancelled or
// Shutdown is called, draining tasks pushed via Submit. Run is typically
// invoked once per engine iteration's fan-out phase: callers submit all
// tasks, call Shutdown, then Run returns once every task has completed.
func (p *Pool) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-p.done:
					return p.drainRemaining()
				case <-gctx.Done():
					return nil
				default:
				}
				task, ok := p.queue.WaitAndPopTimeout(waitQuantum)
				if !ok {
					continue
				}
				p.runTask(task)
			}
		})
	}
	return g.Wait()
}

const waitQuantum = 50 * time.Millisecond

func (p *Pool) drainRemaining() error {
	for {
		task, ok := p.queue.TryPop()
		if !ok {
			return nil
		}
		p.runTask(task)
	}
}

func (p *Pool) runTask(task Task) {
	if err := task(); err != nil {
		p.mu.Lock()
		p.errs = append(p.errs, err)
		p.mu.Unlock()
	}
}

// Submit queues a task for execution. It blocks if the queue is at
// capacity.
func (p *Pool) Submit(task Task) {
	p.queue.PushAndBlock(task)
}

// Shutdown signals worker goroutines to drain remaining queued tasks and
// then stop. Run returns once all workers have exited.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()
	close(p.done)
}

// Errors returns the task errors collected since New or the last Reset.
func (p *Pool) Errors() []error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]error(nil), p.errs...)
}

// HasErrors reports whether any submitted task returned an error.
func (p *Pool) HasErrors() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.errs) > 0
}

// Reset clears the collected error list and reopens the pool for
// another Run/Shutdown cycle. (The engine does not reuse pools; it builds
// a new one for each adapt and evaluate phase.)
func (p *Pool) Reset() {
	p.mu.Lock()
	p.errs = nil
	p.closed = false
	p.mu.Unlock()
	p.done = make(chan struct{})
}
