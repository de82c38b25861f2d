// Package rng implements Geneva's process-wide random number factory and
// the per-consumer proxies and distributions built on top of it.
//
// A single Factory owns a pool of producer goroutines that keep a bounded
// queue of fixed-size uint32 buffers full, plus a separate monotonically
// unique seed stream. Proxy values pull buffers from the factory and hand
// out raw bits (and, through the distributions in this package, derived
// numbers) to a single goroutine at a time.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"geneva/queue"
)

// ErrFactoryExists is returned by NewFactory when a factory is already live
// in this process.
var ErrFactoryExists = errors.New("rng: a factory already exists in this process")

// bufferQueueCapacity bounds how many filled buffers may sit in the queue
// waiting for consumers, so producers don't race arbitrarily far ahead.
const bufferQueueCapacity = 64

// getBufferTimeout bounds how long a Proxy will wait for a fresh buffer
// before giving up, so a starved consumer never blocks indefinitely.
const getBufferTimeout = 2 * time.Second

// Factory owns the producer goroutines and the buffer/seed streams they
// feed. There is exactly one Factory per process; use NewFactory to create
// it and Shutdown to tear it down (tests use this to reset state between
// cases, since production code treats the factory as a long-lived
// singleton).
type Factory struct {
	full  *queue.Bounded[*buffer]
	empty *queue.Bounded[*buffer]

	seedCounter atomic.Uint64

	stop chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	seeding bool
}

var (
	globalMu sync.Mutex
	global   *Factory
)

// Config configures a Factory at construction time.
type Config struct {
	// NProducerThreads is the number of goroutines filling the buffer
	// queue. Zero defaults to 4.
	NProducerThreads uint16

	// StartSeed optionally fixes the seed stream's starting point, for
	// reproducibility: the first dispensed seed is StartSeed+1. Once a
	// Factory has dispensed a seed, its start
	// seed can no longer be changed.
	StartSeed *uint64
}

// NewFactory creates the process-wide Factory and starts its producer
// goroutines. It returns ErrFactoryExists if one is already live; call
// Shutdown on the existing Factory first (tests do this between cases).
func NewFactory(cfg Config) (*Factory, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return nil, ErrFactoryExists
	}

	n := cfg.NProducerThreads
	if n == 0 {
		n = 4
	}

	f := &Factory{
		full:  queue.New[*buffer](bufferQueueCapacity),
		empty: queue.New[*buffer](0),
		stop:  make(chan struct{}),
	}
	if cfg.StartSeed != nil {
		f.seedCounter.Store(*cfg.StartSeed)
	} else {
		var seed [8]byte
		if _, err := rand.Read(seed[:]); err != nil {
			return nil, errors.Wrap(err, "rng: failed to seed factory")
		}
		f.seedCounter.Store(binary.LittleEndian.Uint64(seed[:]))
	}

	for i := uint16(0); i < n; i++ {
		f.wg.Add(1)
		go f.produce()
	}

	global = f
	return f, nil
}

// Global returns the current process-wide Factory, or nil if none exists.
func Global() *Factory {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global
}

// produce is the body of one producer goroutine: it fills buffers with
// uniform 32-bit words and enqueues them, recycling buffers returned via
// the empty queue when one is available.
func (f *Factory) produce() {
	defer f.wg.Done()

	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// Fall back to a time-derived seed; this only affects the
		// statistical quality of the payload stream, never correctness.
		binary.LittleEndian.PutUint64(seed[:8], uint64(time.Now().UnixNano()))
	}
	src := rand.NewChaCha8(seed)

	for {
		var b *buffer
		if recycled, ok := f.empty.TryPop(); ok {
			b = recycled
			b.reset()
		} else {
			b = &buffer{}
		}
		for i := range b.words {
			b.words[i] = uint32(src.Uint64())
		}

		for {
			select {
			case <-f.stop:
				return
			default:
			}
			if f.full.PushAndWait(b, 100*time.Millisecond) {
				break
			}
		}

		select {
		case <-f.stop:
			return
		default:
		}
	}
}

// GetBuffer returns a filled buffer, or nil if none became available within
// an internal timeout. Callers (Proxy) retry on nil; this guarantees a
// proxy never blocks indefinitely on a single call.
func (f *Factory) GetBuffer() *buffer {
	b, ok := f.full.WaitAndPopTimeout(getBufferTimeout)
	if !ok {
		return nil
	}
	return b
}

// ReturnBuffer recycles an exhausted buffer back to the producers.
func (f *Factory) ReturnBuffer(b *buffer) {
	f.empty.TryPush(b)
}

// GetSeed dispenses the next seed in the monotonically-unique seed stream.
// Seeds come from a separate counter than the payload buffers, so drawing
// seeds never competes with consumers for buffer capacity.
func (f *Factory) GetSeed() uint64 {
	f.mu.Lock()
	f.seeding = true
	f.mu.Unlock()
	return f.seedCounter.Add(1)
}

// Shutdown stops all producer goroutines and clears the global singleton,
// so a subsequent NewFactory call succeeds. Safe to call once.
func (f *Factory) Shutdown() {
	close(f.stop)
	f.wg.Wait()

	globalMu.Lock()
	if global == f {
		global = nil
	}
	globalMu.Unlock()
}
