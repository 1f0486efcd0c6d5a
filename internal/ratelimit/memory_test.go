package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiter_Window(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	clk := &stepClock{now: start}
	l := NewMemoryLimiter(5, 15*time.Minute, clk)

	for i := 0; i < 5; i++ {
		ok, err := l.Allow(ctx, "1.2.3.4")
		if err != nil || !ok {
			t.Fatalf("attempt %d: expected allowed, got ok=%v err=%v", i+1, ok, err)
		}
		if err := l.Record(ctx, "1.2.3.4"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	ok, err := l.Allow(ctx, "1.2.3.4")
	if err != nil {
		t.Fatalf("allow: %v", err)
	}
	if ok {
		t.Fatalf("expected 6th attempt within window to be denied")
	}

	// A different address is unaffected.
	ok, _ = l.Allow(ctx, "5.6.7.8")
	if !ok {
		t.Fatalf("expected other address to be allowed")
	}

	// The window slides: once the oldest attempt ages out, budget returns.
	clk.now = start.Add(15*time.Minute + time.Second)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	if !ok {
		t.Fatalf("expected budget back after the window passed")
	}
}

func TestMemoryLimiter_PruneDropsStaleKeys(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	clk := &stepClock{now: start}
	l := NewMemoryLimiter(5, 15*time.Minute, clk)

	_ = l.Record(ctx, "1.2.3.4")
	_ = l.Record(ctx, "5.6.7.8")

	clk.now = start.Add(time.Hour)
	l.Prune()

	l.mu.Lock()
	n := len(l.attempts)
	l.mu.Unlock()
	if n != 0 {
		t.Fatalf("expected all keys pruned, %d left", n)
	}
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}
