package frappe

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter throttles upstream requests with a token bucket. One
// limiter covers the whole connector: the ERP enforces quotas per
// session, not per endpoint.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter with the given sustained rate
// and burst size.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request may proceed or the context is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
