package llmclient

import (
	"context"
	"encoding/json"

	"golang.org/x/time/rate"
)

// RateLimitedClient throttles calls to next to at most limiter's rate.
type RateLimitedClient struct {
	next    Client
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps next with a token-bucket limiter allowing
// burst requests up to burst and sustaining ratePerSecond thereafter.
func NewRateLimitedClient(next Client, ratePerSecond float64, burst int) *RateLimitedClient {
	return &RateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

// Complete implements Client, blocking until the limiter admits the
// call or ctx is cancelled.
func (r *RateLimitedClient) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Complete(ctx, req)
}
