package shutdown

import (
	"context"
	"sort"
	"sync"

	"longsd/core"
)

type registryEntry struct {
	name     string
	fn       core.ShutdownFunc
	priority int // lower runs first
}

// Registry holds cleanup functions and runs them once, in priority order.
type Registry struct {
	mu      sync.Mutex
	entries []registryEntry
	closed  bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds fn under name. Registration after Run is ignored.
//
// Priorities used by longsd:
//   - 10: remove temporary image files
//   - 90: flush the logger
func (r *Registry) Register(name string, priority int, fn core.ShutdownFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.entries = append(r.entries, registryEntry{name: name, fn: fn, priority: priority})
}

// Run calls every function in priority order, collecting errors. Functions
// with equal priority run in registration order. Only the first call does anything.
func (r *Registry) Run(ctx context.Context) []error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	sorted := r.sortedLocked()
	r.mu.Unlock()

	var errs []error
	for _, entry := range sorted {
		if err := entry.fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Names returns registered names in execution order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	sorted := r.sortedLocked()
	names := make([]string, len(sorted))
	for i, entry := range sorted {
		names[i] = entry.name
	}
	return names
}

func (r *Registry) sortedLocked() []registryEntry {
	sorted := make([]registryEntry, len(r.entries))
	copy(sorted, r.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].priority < sorted[j].priority
	})
	return sorted
}
