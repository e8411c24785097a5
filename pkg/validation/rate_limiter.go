package validation

import (
	"sync"
	"time"
)

// RateLimiter allows at most maxEvents per window for each key, refilling
// the bucket in proportion to elapsed time
type RateLimiter struct {
	maxEvents int
	window    time.Duration
	now       func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a limiter allowing maxEvents per window per key
func NewRateLimiter(maxEvents int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxEvents: maxEvents,
		window:    window,
		now:       time.Now,
		buckets:   make(map[string]*bucket),
	}
}

// Allow reports whether another event for key fits in its budget
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.maxEvents, lastRefill: now}
		rl.buckets[key] = b
	}

	if elapsed := now.Sub(b.lastRefill); elapsed > 0 && b.tokens < rl.maxEvents {
		refill := int(float64(rl.maxEvents) * float64(elapsed) / float64(rl.window))
		if refill > 0 {
			b.tokens = min(rl.maxEvents, b.tokens+refill)
			b.lastRefill = now
		}
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}
