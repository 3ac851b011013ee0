package eventbus

import (
	"sync"
	"time"
)

// Registry maps run IDs to their Stream, so the HTTP layer can look up a
// run's event stream independently of the goroutine that's producing it.
type Registry struct {
	mu      sync.Mutex
	streams map[string]*Stream
	timers  map[string]*time.Timer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		streams: make(map[string]*Stream),
		timers:  make(map[string]*time.Timer),
	}
}

// Register creates and registers a new Stream for runID, replacing any
// existing one.
func (r *Registry) Register(runID string) *Stream {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.timers[runID]; ok {
		t.Stop()
		delete(r.timers, runID)
	}

	s := NewStream(DefaultBufferSize)
	r.streams[runID] = s
	return s
}

// Lookup returns runID's Stream, if one is registered.
func (r *Registry) Lookup(runID string) (*Stream, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.streams[runID]
	return s, ok
}

// Retire schedules runID's Stream for removal after gracePeriod, giving a
// reconnecting client a window to pick up the tail of a just-finished
// run. Call this once the run's terminal event has been published.
func (r *Registry) Retire(runID string, gracePeriod time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}
	r.timers[runID] = time.AfterFunc(gracePeriod, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.streams, runID)
		delete(r.timers, runID)
	})
}
