// Package eventbus fans a run's lifecycle events out to a single SSE
// consumer over a long-lived, bounded event stream.
package eventbus

import (
	"sync"
	"time"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// DefaultBufferSize is how many events a Stream buffers before it starts
// dropping the oldest unread event to make room for the newest one.
const DefaultBufferSize = 256

// DefaultGracePeriod is how long a Registry keeps a finished run's Stream
// registered after its terminal event, so a client that reconnects
// briefly after completion still finds it.
const DefaultGracePeriod = 2 * time.Minute

// Stream is a single run's event channel. Exactly one consumer is
// expected to range over Events; Publish is safe to call from multiple
// producer goroutines (the orchestrator's per-question fan-out).
type Stream struct {
	events chan domain.Event
	mu     sync.Mutex
	closed bool
}

// NewStream returns a Stream with the given buffer size.
func NewStream(bufferSize int) *Stream {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Stream{events: make(chan domain.Event, bufferSize)}
}

// Events returns the channel consumers should range over.
func (s *Stream) Events() <-chan domain.Event { return s.events }

// Publish enqueues ev. When the buffer is full, Publish drops the oldest
// queued event to make room rather than blocking the producer — a
// slow or absent SSE consumer must never stall the run itself. Publish
// is a no-op once the stream has been closed.
func (s *Stream) Publish(ev domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for {
		select {
		case s.events <- ev:
			if ev.Type.IsTerminal() {
				s.closeLocked()
			}
			return
		default:
			select {
			case <-s.events:
			default:
			}
		}
	}
}

// Close shuts down the stream, signaling consumers that no further
// events will arrive. Close is idempotent.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Stream) closeLocked() {
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
