package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore records tokens that must no longer be accepted.
type RevocationStore interface {
	// Revoke marks token revoked until the given time. Entries past that
	// time may be forgotten since the token has expired anyway.
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationStore keeps revoked tokens in process memory. Revocations
// are not shared between instances and do not survive restarts.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

var _ RevocationStore = (*MemoryRevocationStore)(nil)

// NewMemoryRevocationStore creates an empty store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke implements RevocationStore.
func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, k)
		}
	}
	s.revoked[tokenKey(token)] = until
	return nil
}

// IsRevoked implements RevocationStore.
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[tokenKey(token)]
	if !ok {
		return false, nil
	}
	return until.After(s.now()), nil
}

// Len returns the number of tracked revocations.
func (s *MemoryRevocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revoked)
}

const (
	revocationKeyPrefix = "ukp:revoked:"
	redisOpTimeout      = 2 * time.Second
)

// redisCommands is the subset of the go-redis client used for revocation.
type redisCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisRevocationStore shares revocations between instances through Redis.
// Keys expire together with the token they revoke.
type RedisRevocationStore struct {
	client redisCommands
	closer func() error
	logger *slog.Logger
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRedisRevocationStore connects to Redis and verifies the connection.
func NewRedisRevocationStore(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*RedisRevocationStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Info("redis revocation store connected", slog.String("addr", addr))
	return &RedisRevocationStore{
		client: client,
		closer: client.Close,
		logger: logger.With(slog.String("component", "revocation_store")),
	}, nil
}

func newRedisRevocationStoreWithClient(client redisCommands, logger *slog.Logger) *RedisRevocationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisRevocationStore{
		client: client,
		closer: func() error { return nil },
		logger: logger,
	}
}

// Revoke implements RevocationStore.
func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.client.Set(opCtx, revocationKeyPrefix+tokenKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements RevocationStore.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	opCtx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	n, err := s.client.Exists(opCtx, revocationKeyPrefix+tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}

// Close releases the Redis connection.
func (s *RedisRevocationStore) Close() error {
	return s.closer()
}

// tokenKey avoids storing raw bearer tokens.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
