package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

type stubClient struct {
	calls   int
	results []func() (json.RawMessage, error)
}

func (s *stubClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	fn := s.results[s.calls]
	s.calls++
	return fn()
}

func TestRetryingClientSucceedsAfterTransientFailures(t *testing.T) {
	stub := &stubClient{results: []func() (json.RawMessage, error){
		func() (json.RawMessage, error) { return nil, &TransportError{Provider: "x", Err: errors.New("boom")} },
		func() (json.RawMessage, error) { return json.RawMessage(`{"ok":true}`), nil },
	}}
	retrying := NewRetryingClient(stub, []time.Duration{time.Millisecond})

	raw, err := retrying.Complete(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
	assert.Equal(t, 2, stub.calls)
}

func TestRetryingClientGivesUpAfterSchedule(t *testing.T) {
	alwaysFail := func() (json.RawMessage, error) {
		return nil, &TransportError{Provider: "x", Err: errors.New("boom")}
	}
	stub := &stubClient{results: []func() (json.RawMessage, error){alwaysFail, alwaysFail, alwaysFail}}
	retrying := NewRetryingClient(stub, []time.Duration{time.Millisecond, time.Millisecond})

	_, err := retrying.Complete(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Equal(t, 3, stub.calls)
}
