package guard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// pruneThreshold bounds the number of idle buckets kept in memory.
const pruneThreshold = 1024

// MemoryLimiter keeps one token bucket per key in process memory. Each
// failure spends a token; tokens refill at limit per window.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	every   rate.Limit
	limit   int
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*rate.Limiter),
		every:   rate.Every(window / time.Duration(limit)),
		limit:   limit,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		return true, nil
	}
	return b.Tokens() >= 1, nil
}

func (l *MemoryLimiter) Fail(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= pruneThreshold {
			l.prune()
		}
		b = rate.NewLimiter(l.every, l.limit)
		l.buckets[key] = b
	}
	b.Allow()
	return nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
	return nil
}

// prune drops buckets that have refilled completely. Caller holds mu.
func (l *MemoryLimiter) prune() {
	for k, b := range l.buckets {
		if b.Tokens() >= float64(l.limit) {
			delete(l.buckets, k)
		}
	}
}
