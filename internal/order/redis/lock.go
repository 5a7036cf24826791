package redis

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const advanceLockPrefix = "order_advance_lock:"

// Redis holds the short-lived per-order lock taken while a staff actor
// advances an order's status. The conditional DB update is the real
// correctness guard; this lock just keeps two dashboards from racing.
type Redis struct {
	Client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client}
}

// getAdvanceLockTTL reads the lock TTL from the environment, defaulting to
// 10 seconds. Advances are a single read-modify-write, so the TTL only
// needs to outlive a slow DB round trip.
func getAdvanceLockTTL() time.Duration {
	defaultTTL := 10 * time.Second

	ttlStr := os.Getenv("ORDER_ADVANCE_LOCK_TTL_SECONDS")
	if ttlStr == "" {
		return defaultTTL
	}
	ttlSec, err := strconv.Atoi(ttlStr)
	if err != nil || ttlSec <= 0 {
		return defaultTTL
	}
	return time.Duration(ttlSec) * time.Second
}

// Lock takes the advance lock for an order. Returns false when another
// actor already holds it.
func (r *Redis) Lock(ctx context.Context, orderID string) (bool, error) {
	key := advanceLockPrefix + orderID
	return r.Client.SetNX(ctx, key, "locked", getAdvanceLockTTL()).Result()
}

// Unlock releases the advance lock. Releasing an already-expired lock is
// not an error.
func (r *Redis) Unlock(ctx context.Context, orderID string) error {
	key := advanceLockPrefix + orderID
	_, err := r.Client.Del(ctx, key).Result()
	if err == redis.Nil {
		return nil
	}
	return err
}
