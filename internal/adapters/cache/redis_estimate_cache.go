package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/ports"
)

// Redis-backed implementation of the EstimateCache port.
//
// Keys are stop fingerprints produced by the routing client; values are JSON.
// Trips are re-estimated on every mutation, so a warm cache makes repeated
// add/remove/re-add gestures on the same stop set free.
type RedisEstimateCache struct {
	client *redis.Client
}

const (
	estimatePrefix = "cache:estimate:"

	// Road networks change slowly; an hour keeps an editing session warm
	// without pinning stale metrics for days.
	EstimateTTL = time.Hour
)

// cachedEstimate is the stored wire shape for a route estimate.
type cachedEstimate struct {
	Hours      float64  `json:"hours"`
	DistanceKm float64  `json:"distance_km"`
	Order      []string `json:"order,omitempty"`
}

func NewRedisEstimateCache(client *redis.Client) *RedisEstimateCache {
	return &RedisEstimateCache{client: client}
}

// Get returns the cached estimate for key, reporting a miss for absent keys.
func (c *RedisEstimateCache) Get(ctx context.Context, key string) (ports.RouteEstimate, bool, error) {
	if c.client == nil {
		return ports.RouteEstimate{}, false, errors.New("estimate cache: client is nil")
	}

	data, err := c.client.Get(ctx, estimatePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.RouteEstimate{}, false, nil
		}
		return ports.RouteEstimate{}, false, fmt.Errorf("get estimate cache: %w", err)
	}

	var stored cachedEstimate
	if err := json.Unmarshal(data, &stored); err != nil {
		return ports.RouteEstimate{}, false, fmt.Errorf("get estimate cache: decode value: %w", err)
	}

	return ports.RouteEstimate{
		Hours:      stored.Hours,
		DistanceKm: stored.DistanceKm,
		Order:      stored.Order,
	}, true, nil
}

// Put stores an estimate under key with the standard TTL.
func (c *RedisEstimateCache) Put(ctx context.Context, key string, est ports.RouteEstimate) error {
	if c.client == nil {
		return errors.New("estimate cache: client is nil")
	}

	data, err := json.Marshal(cachedEstimate{
		Hours:      est.Hours,
		DistanceKm: est.DistanceKm,
		Order:      est.Order,
	})
	if err != nil {
		return fmt.Errorf("put estimate cache: encode value: %w", err)
	}

	if err := c.client.Set(ctx, estimatePrefix+key, data, EstimateTTL).Err(); err != nil {
		return fmt.Errorf("put estimate cache: %w", err)
	}

	return nil
}
