package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/domain"
)

// RetrySchedule is the fixed backoff schedule: 5s, then 10s, then give
// up. This adapter's callers (question generator, DAG builder, critic)
// each have their own bounded-retry-then-fallback policy, so the
// schedule here is deliberately a small fixed sequence rather than a
// general-purpose exponential backoff curve.
var RetrySchedule = []time.Duration{5 * time.Second, 10 * time.Second}

// RetryingClient wraps a Client with a bounded retry policy. Transport
// and parse errors are retried; any other error (e.g. context
// cancellation) is returned immediately.
type RetryingClient struct {
	next     Client
	schedule []time.Duration
}

// NewRetryingClient wraps next with RetrySchedule. A nil/empty schedule
// falls back to RetrySchedule.
func NewRetryingClient(next Client, schedule []time.Duration) *RetryingClient {
	if len(schedule) == 0 {
		schedule = RetrySchedule
	}
	return &RetryingClient{next: next, schedule: schedule}
}

// Complete implements Client, retrying transport and parse failures per
// the configured schedule before returning the last error to the
// caller, who applies its own fallback policy (builder: empty DAG;
// critic: approve the layer).
func (r *RetryingClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= len(r.schedule); attempt++ {
		raw, err := r.next.Complete(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == len(r.schedule) {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.schedule[attempt]):
		}
	}
	return nil, lastErr
}

func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrTransport) || errors.Is(err, domain.ErrParse)
}
