package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryTurnRateLimiter_CapsWithinWindow(t *testing.T) {
	limiter := NewTurnRateLimiter(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("u1") {
			t.Fatalf("expected turn %d to be allowed", i+1)
		}
	}
	if limiter.Allow("u1") {
		t.Fatalf("expected fourth turn to be blocked")
	}
	if !limiter.Allow("u2") {
		t.Fatalf("expected separate key to be unaffected")
	}
}

func TestMemoryTurnRateLimiter_WindowReset(t *testing.T) {
	limiter := NewTurnRateLimiter(10*time.Millisecond, 1)

	if !limiter.Allow("u1") {
		t.Fatalf("expected first turn to be allowed")
	}
	if limiter.Allow("u1") {
		t.Fatalf("expected second turn in window to be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("u1") {
		t.Fatalf("expected turn after window reset to be allowed")
	}
}

func TestMemoryTurnRateLimiter_RejectsEmptyKey(t *testing.T) {
	limiter := NewTurnRateLimiter(time.Minute, 10)

	if limiter.Allow("  ") {
		t.Fatalf("expected blank key to be rejected")
	}
}

type mockEvaler struct {
	count int64
	err   error
}

func (m *mockEvaler) Eval(ctx context.Context, _ string, _ []string, _ ...interface{}) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.count)
	return cmd
}

func TestRedisTurnRateLimiter_BlocksOverMax(t *testing.T) {
	limiter := &redisTurnRateLimiter{
		client: &mockEvaler{count: 5},
		window: time.Minute,
		max:    4,
		prefix: "coach:rl:",
	}
	if limiter.Allow("u1") {
		t.Fatalf("expected count over max to be blocked")
	}

	limiter.client = &mockEvaler{count: 4}
	if !limiter.Allow("u1") {
		t.Fatalf("expected count at max to be allowed")
	}
}

func TestRedisTurnRateLimiter_FailsOpenOnRedisError(t *testing.T) {
	limiter := &redisTurnRateLimiter{
		client: &mockEvaler{err: errors.New("redis down")},
		window: time.Minute,
		max:    1,
		prefix: "coach:rl:",
	}
	if !limiter.Allow("u1") {
		t.Fatalf("expected limiter to fail open on redis error")
	}
}
