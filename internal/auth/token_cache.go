package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"ms-catering/internal/models"
)

const tokenCachePrefix = "token_identity:"

// Token cache TTL is short on purpose: an expired or revoked token must
// not outlive the cache by much.
const tokenCacheTTL = 5 * time.Minute

// TokenCache stores verified identities keyed by a hash of the raw token.
type TokenCache struct {
	Client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{Client: client}
}

func tokenCacheKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return tokenCachePrefix + hex.EncodeToString(sum[:])
}

func (c *TokenCache) Get(ctx context.Context, rawToken string) (models.Identity, bool) {
	val, err := c.Client.Get(ctx, tokenCacheKey(rawToken)).Result()
	if err != nil {
		return models.Identity{}, false
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return models.Identity{}, false
	}
	return identity, true
}

func (c *TokenCache) Set(ctx context.Context, rawToken string, identity models.Identity) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return
	}
	// Best effort: a cache write failure only costs a re-parse next time.
	_ = c.Client.Set(ctx, tokenCacheKey(rawToken), payload, tokenCacheTTL).Err()
}
