package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter keeps fixed windows in process. Used when Redis is not
// configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*bucket), now: time.Now}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) bool {
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.windowEnd) {
		l.buckets[key] = &bucket{count: 1, windowEnd: now.Add(window)}
		l.sweep(now)
		return true
	}
	if b.count >= limit {
		return false
	}
	b.count++
	return true
}

// sweep drops expired windows once the map grows.
func (l *MemoryLimiter) sweep(now time.Time) {
	if len(l.buckets) < 1024 {
		return
	}
	for k, b := range l.buckets {
		if !now.Before(b.windowEnd) {
			delete(l.buckets, k)
		}
	}
}
