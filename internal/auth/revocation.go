package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"lms/learning/internal/crypto"
)

// RevocationStore is the logout mechanism: a process-wide set of tokens
// that must no longer be accepted even while their signature and expiry
// are otherwise valid. Revoke is idempotent, and a completed Revoke is
// visible to every subsequent IsRevoked.
type RevocationStore interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationStore keeps revoked-token hashes in memory. Entries
// are never evicted, so the set grows for the process lifetime; a
// shared deployment should use RedisRevocationStore instead.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]struct{})}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[crypto.HashToken(token)] = struct{}{}
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[crypto.HashToken(token)]
	return ok, nil
}

// RedisRevocationStore shares the revocation set across instances. A
// non-zero ttl lets entries lapse once the underlying token has long
// expired; zero keeps them forever, matching the in-memory store.
type RedisRevocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRevocationStore(client *redis.Client, ttl time.Duration) *RedisRevocationStore {
	return &RedisRevocationStore{client: client, ttl: ttl}
}

func revocationKey(token string) string {
	return "auth:revoked:" + crypto.HashToken(token)
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, token string) error {
	return s.client.Set(ctx, revocationKey(token), "1", s.ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := s.client.Get(ctx, revocationKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
