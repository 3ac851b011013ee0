// Package llmclient adapts a single Large Language Model provider to a
// one-method effect contract: every call is (prompt, response shape) ->
// parsed value | transport error | parse error, and this package is the
// only place retries live.
package llmclient

import (
	"context"
	"encoding/json"
)

// Request is one completion request. Prompt carries the full rendered
// prompt text (question generator, DAG builder, and critic each build
// their own); SystemPrompt, when set, is sent as a separate system
// message. Temperature follows each caller's contract (≈0.3 for the
// question generator, ≈0.2 for the DAG builder, 0 for the critic).
type Request struct {
	SystemPrompt string
	Prompt       string
	Temperature  float64
}

// Client is the adapter's public contract. Implementations must always
// request a JSON-object response format from the underlying provider;
// Complete returns the raw JSON payload for the caller to unmarshal into
// its own schema, or an error wrapping domain.ErrTransport or
// domain.ErrParse. The rate-limiting and retrying decorators return
// ctx.Err() unwrapped when the context ends first.
type Client interface {
	Complete(ctx context.Context, req Request) (json.RawMessage, error)
}
