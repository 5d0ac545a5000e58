package analysisapi

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimiter throttles outgoing requests with a token bucket.
// A nil limiter never waits.
type rateLimiter struct {
	bucket *rate.Limiter
}

// newRateLimiter returns nil when perSecond is not positive.
func newRateLimiter(perSecond float64) *rateLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &rateLimiter{bucket: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *rateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.bucket.Wait(ctx)
}
