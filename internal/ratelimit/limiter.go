package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter manages rate limits for multiple API tokens
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewLimiter creates a new rate limiter.
// requestsPerMinute: sustained requests allowed per token; zero or less disables limiting.
// burst: max requests in a burst.
func NewLimiter(requestsPerMinute int, burst int) *Limiter {
	r := rate.Inf
	if requestsPerMinute > 0 {
		r = rate.Limit(float64(requestsPerMinute) / 60.0)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     r,
		burst:    burst,
	}
}

// GetLimiter returns the rate limiter for a specific token
func (l *Limiter) GetLimiter(token string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[token]
	if !exists {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[token] = limiter
	}

	return limiter
}

// Allow checks if a request is allowed for the given token
func (l *Limiter) Allow(token string) bool {
	return l.GetLimiter(token).Allow()
}

// Tokens returns the current number of available tokens for a token's bucket
func (l *Limiter) Tokens(token string) float64 {
	if l.rate == rate.Inf {
		return float64(l.burst)
	}
	return l.GetLimiter(token).Tokens()
}

// Burst returns the bucket size
func (l *Limiter) Burst() int {
	return l.burst
}
