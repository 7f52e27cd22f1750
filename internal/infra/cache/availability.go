package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// AvailabilityCache keeps rendered slot listings per tenant and date for a
// short TTL. The client may be nil (Redis unreachable or unconfigured), in
// which case every operation degrades to a no-op and listings are always
// computed fresh.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func key(restaurantID uuid.UUID, date string) string {
	return "avail:" + restaurantID.String() + ":" + date
}

func (c *AvailabilityCache) Get(ctx context.Context, restaurantID uuid.UUID, date string, out any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key(restaurantID, date)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false
	}
	return true
}

func (c *AvailabilityCache) Set(ctx context.Context, restaurantID uuid.UUID, date string, value any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(restaurantID, date), raw, c.ttl).Err(); err != nil {
		slog.Debug("availability cache set failed", "error", err)
	}
}

// Invalidate drops the cached listing for one tenant-date. Called after any
// lifecycle write that changes capacity.
func (c *AvailabilityCache) Invalidate(ctx context.Context, restaurantID uuid.UUID, date string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key(restaurantID, date)).Err(); err != nil {
		slog.Debug("availability cache invalidate failed", "error", err)
	}
}
