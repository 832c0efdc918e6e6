package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"phoneprices/scraper/internal/domain"

	"github.com/redis/go-redis/v9"
)

// PriceCache remembers recent lookup results so a re-run after a partial
// failure does not hammer the search endpoint for devices it already has.
// Get returns (nil, nil) on a miss.
type PriceCache interface {
	Get(ctx context.Context, device domain.Device) (*domain.PriceRange, error)
	Set(ctx context.Context, result *domain.PriceRange) error
}

type redisPriceCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisPriceCache(redisClient *redis.Client, ttl time.Duration) PriceCache {
	return &redisPriceCache{
		redisClient: redisClient,
		keyPrefix:   "phoneprices:range:",
		ttl:         ttl,
	}
}

func (c *redisPriceCache) Get(ctx context.Context, device domain.Device) (*domain.PriceRange, error) {
	key := c.keyPrefix + device.Key()
	val, err := c.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached prices for %s: %w", device.Key(), err)
	}

	var result domain.PriceRange
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached prices for %s: %w", device.Key(), err)
	}
	return &result, nil
}

func (c *redisPriceCache) Set(ctx context.Context, result *domain.PriceRange) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode prices for %s: %w", result.Device.Key(), err)
	}

	key := c.keyPrefix + result.Device.Key()
	if err := c.redisClient.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache prices for %s: %w", result.Device.Key(), err)
	}
	return nil
}
