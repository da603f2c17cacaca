// Package shutdown turns SIGINT/SIGTERM into context cancellation and runs
// ordered cleanup before the process exits.
//
// The first signal cancels the run context: no further render units are
// dispatched and in-flight renders finish. A second signal exits at once.
package shutdown

import (
	"os"
	"sync"
	"syscall"

	"longsd/core"
)

// SignalCounter counts shutdown signals and calls onForce once the count
// reaches forceAfter (and on every signal after that).
type SignalCounter struct {
	mu         sync.Mutex
	count      int
	forceAfter int
	onForce    func()
}

// NewSignalCounter creates a counter. onForce may be nil.
func NewSignalCounter(forceAfter int, onForce func()) *SignalCounter {
	return &SignalCounter{
		forceAfter: forceAfter,
		onForce:    onForce,
	}
}

// Increment adds one signal and returns the new count. The force callback
// runs under the lock, so it should be fast or exit the process.
func (s *SignalCounter) Increment() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.count >= s.forceAfter && s.onForce != nil {
		s.onForce()
	}
	return s.count
}

// Count returns the number of signals seen.
func (s *SignalCounter) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// ExitCodeForSignal maps a signal to its conventional exit status.
func ExitCodeForSignal(sig os.Signal) int {
	switch sig {
	case os.Interrupt:
		return core.ExitCodeSIGINT
	case syscall.SIGTERM:
		return core.ExitCodeSIGTERM
	default:
		return core.ExitCodeError
	}
}
