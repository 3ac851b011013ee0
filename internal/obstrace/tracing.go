// Package obstrace wraps critic-loop components in OpenTelemetry spans
// using the go.opentelemetry.io/otel tracer.
package obstrace

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kunwarvivekpratapsingh/dagcritic/internal/llmclient"
)

const instrumentationName = "github.com/kunwarvivekpratapsingh/dagcritic/internal/obstrace"

// TracedClient wraps an llmclient.Client in a span per call, named
// "llm.complete.<caller>" and tagged with the caller component and the
// requested temperature.
type TracedClient struct {
	next   llmclient.Client
	tracer trace.Tracer
	caller string
}

// NewTracedClient wraps next, naming spans after caller
// ("questiongen", "dagbuilder", "critic").
func NewTracedClient(next llmclient.Client, caller string) *TracedClient {
	return &TracedClient{next: next, tracer: otel.Tracer(instrumentationName), caller: caller}
}

// Complete implements llmclient.Client.
func (t *TracedClient) Complete(ctx context.Context, req llmclient.Request) (json.RawMessage, error) {
	ctx, span := t.tracer.Start(ctx, "llm.complete."+t.caller,
		trace.WithAttributes(
			attribute.String("llm.caller", t.caller),
			attribute.Float64("llm.temperature", req.Temperature),
		),
	)
	defer span.End()

	raw, err := t.next.Complete(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return raw, err
}

// StartLoopIteration starts a span covering one build/critique iteration
// of the critic loop for questionID, to be ended by the caller once the
// iteration's BUILD and VALIDATE steps complete.
func StartLoopIteration(ctx context.Context, questionID string, iteration int) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, "criticloop.iteration",
		trace.WithAttributes(
			attribute.String("question.id", questionID),
			attribute.Int("iteration", iteration),
		),
	)
}
