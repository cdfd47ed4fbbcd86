package server

import (
	"sync"

	"golang.org/x/time/rate"
)

// limiterRegistry keeps one token-bucket limiter per client IP.
// Entries are never evicted; the set of distinct client IPs for a
// single-process cache is small.
type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newLimiterRegistry(perSecond int) *limiterRegistry {
	return &limiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    perSecond,
	}
}

// allow reports whether one more command from ip fits the budget.
func (r *limiterRegistry) allow(ip string) bool {
	r.mu.Lock()
	l, ok := r.limiters[ip]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[ip] = l
	}
	r.mu.Unlock()

	return l.Allow()
}
