package engine

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

var (
	sigHupFlag atomic.Bool
	sigHupOnce sync.Once
	sigHupCh   chan os.Signal
)

// WatchSigHup installs a process-wide SIGHUP handler that sets an atomic
// flag the driver checks between iterations (spec §6). Safe to call more
// than once; only the first call installs the handler.
func WatchSigHup() {
	sigHupOnce.Do(func() {
		sigHupCh = make(chan os.Signal, 1)
		signal.Notify(sigHupCh, syscall.SIGHUP)
		go func() {
			for range sigHupCh {
				sigHupFlag.Store(true)
			}
		}()
	})
}

// SigHupReceived reports whether SIGHUP has fired since the last reset.
func SigHupReceived() bool { return sigHupFlag.Load() }

// ResetSigHup clears the flag, used by tests and by hosts that restart
// the engine within the same process.
func ResetSigHup() { sigHupFlag.Store(false) }
