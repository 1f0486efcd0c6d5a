package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cosfat/kzone/internal/clock"
)

// MemoryLimiter is a process-local sliding window: per key it keeps the
// timestamps of recent attempts. State is not persisted across restarts.
type MemoryLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	limit    int
	window   time.Duration
	clock    clock.Clock
}

func NewMemoryLimiter(limit int, window time.Duration, clk clock.Clock) *MemoryLimiter {
	return &MemoryLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		clock:    clk,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recent(key)) < l.limit, nil
}

func (l *MemoryLimiter) Record(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[key] = append(l.recent(key), l.clock.Now())
	return nil
}

// recent drops attempts that fell out of the window. Callers hold l.mu.
func (l *MemoryLimiter) recent(key string) []time.Time {
	cutoff := l.clock.Now().Add(-l.window)
	kept := l.attempts[key][:0]
	for _, t := range l.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.attempts, key)
		return nil
	}
	l.attempts[key] = kept
	return kept
}

// Prune discards every key whose attempts all fell out of the window.
// Scheduled periodically so abandoned addresses do not accumulate.
func (l *MemoryLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key := range l.attempts {
		l.recent(key)
	}
}
