package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

func TestStreamDropsOldestWhenFull(t *testing.T) {
	s := NewStream(2)
	s.Publish(domain.Event{Type: domain.EventDAGBuilt, Payload: 1})
	s.Publish(domain.Event{Type: domain.EventDAGBuilt, Payload: 2})
	s.Publish(domain.Event{Type: domain.EventDAGBuilt, Payload: 3})

	first := <-s.Events()
	second := <-s.Events()
	assert.Equal(t, 2, first.Payload)
	assert.Equal(t, 3, second.Payload)
}

func TestStreamClosesOnTerminalEvent(t *testing.T) {
	s := NewStream(4)
	s.Publish(domain.Event{Type: domain.EventRunComplete})

	_, open := <-s.Events()
	assert.False(t, open)

	// Publish after close is a no-op, not a panic.
	require.NotPanics(t, func() {
		s.Publish(domain.Event{Type: domain.EventError})
	})
}

func TestRegistryLookupAndRetire(t *testing.T) {
	r := NewRegistry()
	stream := r.Register("run-1")

	found, ok := r.Lookup("run-1")
	require.True(t, ok)
	assert.Same(t, stream, found)

	r.Retire("run-1", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok = r.Lookup("run-1")
	assert.False(t, ok)
}
