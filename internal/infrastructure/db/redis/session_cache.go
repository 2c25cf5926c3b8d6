package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luxpos/cashier-admin/internal/core/domain"
)

const defaultSessionTTL = time.Minute

// SessionCache is a short-lived token→identity cache backed by Redis. Tokens
// are hashed before use as keys so raw credentials never land in the store.
// Key format: session:<sha256(token)>
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a SessionCache wrapping the given Redis client.
// A default TTL is applied when none is provided.
func NewSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionCache{client: client, ttl: ttl}
}

// Get returns the cached identity for a token, if present. Any Redis or
// decode failure is reported as a miss.
func (s *SessionCache) Get(ctx context.Context, token string) (*domain.Identity, bool) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		return nil, false
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, false
	}
	return &identity, true
}

// Put caches the identity for a token (expires after the cache TTL). Best
// effort: write failures are ignored.
func (s *SessionCache) Put(ctx context.Context, token string, identity *domain.Identity) {
	raw, err := json.Marshal(identity)
	if err != nil {
		return
	}
	_ = s.client.Set(ctx, s.key(token), raw, s.ttl).Err()
}

func (s *SessionCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}
