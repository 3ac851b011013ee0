package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
	"github.com/kunwarvivekpratapsingh/dagcritic/internal/eventbus"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestEventObserverPublishesRunIDAndTimestamp(t *testing.T) {
	stream := eventbus.NewStream(8)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := NewEventObserver("run-1", stream)
	obs.now = fixedClock(now)

	obs.OnRunStarted("sales", 3)

	ev := <-stream.Events()
	assert.Equal(t, "run-1", ev.RunID)
	assert.Equal(t, domain.EventRunStarted, ev.Type)
	assert.Equal(t, now, ev.Timestamp)
	payload, ok := ev.Payload.(domain.RunStartedPayload)
	require.True(t, ok)
	assert.Equal(t, "sales", payload.DatasetName)
	assert.Equal(t, 3, payload.NumQuestions)
}

func TestEventObserverOnRunCompleteClosesStream(t *testing.T) {
	stream := eventbus.NewStream(8)
	obs := NewEventObserver("run-1", stream)

	obs.OnRunComplete(domain.RunReport{Summary: domain.RunSummary{Total: 1, Passed: 1}})

	ev, ok := <-stream.Events()
	require.True(t, ok)
	assert.Equal(t, domain.EventRunComplete, ev.Type)

	_, ok = <-stream.Events()
	assert.False(t, ok, "stream should be closed after the terminal event")
}

func TestEventObserverOnQuestionCompleteDistinguishesGiveUp(t *testing.T) {
	stream := eventbus.NewStream(8)
	obs := NewEventObserver("run-1", stream)

	obs.OnQuestionComplete("q1", false, true)

	ev := <-stream.Events()
	payload, ok := ev.Payload.(domain.QuestionCompletePayload)
	require.True(t, ok)
	assert.Equal(t, "q1", payload.QuestionID)
	assert.False(t, payload.Succeeded)
	assert.True(t, payload.GaveUp)
}
