package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TurnRateLimiter caps how many coaching turns a user can submit per window.
type TurnRateLimiter interface {
	Allow(key string) bool
}

type memoryTurnRateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	counts  map[string]int
	resetAt map[string]time.Time
}

func NewTurnRateLimiter(window time.Duration, max int) TurnRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryTurnRateLimiter{
		window:  window,
		max:     max,
		counts:  make(map[string]int),
		resetAt: make(map[string]time.Time),
	}
}

func (l *memoryTurnRateLimiter) Allow(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	if reset, ok := l.resetAt[key]; !ok || now.After(reset) {
		l.counts[key] = 0
		l.resetAt[key] = now.Add(l.window)
	}
	l.counts[key]++
	return l.counts[key] <= l.max
}

const redisTurnAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisTurnRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisTurnRateLimiter(client *redis.Client, window time.Duration, max int) TurnRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisTurnRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "coach:rl:",
	}
}

// Allow fails open on redis errors so an outage never blocks coaching.
func (l *redisTurnRateLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + normalizedKey
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisTurnAllowScript, []string{redisKey}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
