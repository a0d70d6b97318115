package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a sliding-window limiter held in process memory. State is
// local to one instance; horizontal scaling needs the Redis implementation.
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	var valid []time.Time
	for _, t := range l.attempts[key] {
		if now.Sub(t) < l.window {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.max {
		l.attempts[key] = valid
		return false, nil
	}

	l.attempts[key] = append(valid, now)

	return true, nil
}
