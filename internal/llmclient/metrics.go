package llmclient

import (
	"context"
	"encoding/json"
	"time"
)

// Recorder receives one observation per completed call. Satisfied
// directly by *obsmetrics.Metrics, kept as a local interface here so
// this package never imports obsmetrics.
type Recorder interface {
	RecordLLMCall(caller, outcome string, duration time.Duration)
}

// MetricsClient wraps next, recording call count and latency against
// Recorder under the given caller label ("questiongen", "dagbuilder",
// "critic").
type MetricsClient struct {
	next     Client
	recorder Recorder
	caller   string
}

// NewMetricsClient wraps next with call-count and latency recording.
func NewMetricsClient(next Client, recorder Recorder, caller string) *MetricsClient {
	return &MetricsClient{next: next, recorder: recorder, caller: caller}
}

// Complete implements Client.
func (m *MetricsClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	start := time.Now()
	raw, err := m.next.Complete(ctx, req)
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.recorder.RecordLLMCall(m.caller, outcome, time.Since(start))
	return raw, err
}
