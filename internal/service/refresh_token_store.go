package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore tracks refresh token jtis so they can be revoked.
type RefreshTokenStore interface {
	Store(jti, userID string, ttl time.Duration) error
	Exists(jti string) (bool, error)
	Revoke(jti string) error
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

type memoryRefreshTokenStore struct {
	mu      sync.Mutex
	entries map[string]refreshEntry
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{
		entries: make(map[string]refreshEntry),
	}
}

func (s *memoryRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	// Expired entries only ever grow the map, so sweep them while we hold
	// the lock anyway.
	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	s.entries[jti] = refreshEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memoryRefreshTokenStore) Exists(jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.entries, jti)
		return false, nil
	}
	return true, nil
}

func (s *memoryRefreshTokenStore) Revoke(jti string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, jti)
	return nil
}

// Session jtis share the coach: namespace with the turn limiter keys.
const refreshKeyPrefix = "coach:auth:refresh:"

const refreshStoreTimeout = 500 * time.Millisecond

// redisKV is the slice of the redis client the store needs; tests supply a
// recording fake.
type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisRefreshTokenStore struct {
	kv redisKV
}

func NewRedisRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	if client == nil {
		return nil
	}
	return &redisRefreshTokenStore{kv: client}
}

func (s *redisRefreshTokenStore) Store(jti, userID string, ttl time.Duration) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshStoreTimeout)
	defer cancel()
	return s.kv.Set(ctx, refreshKeyPrefix+jti, userID, ttl).Err()
}

func (s *redisRefreshTokenStore) Exists(jti string) (bool, error) {
	if strings.TrimSpace(jti) == "" {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshStoreTimeout)
	defer cancel()
	n, err := s.kv.Exists(ctx, refreshKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisRefreshTokenStore) Revoke(jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), refreshStoreTimeout)
	defer cancel()
	return s.kv.Del(ctx, refreshKeyPrefix+jti).Err()
}
