package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/domain"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed geocode cache with entry expiry, for
// deployments that prefer a shared in-memory cache over a database table.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

func (r *RedisGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinates, bool, error) {
	if r.Client == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: redis client is nil")
	}

	raw, err := r.Client.Get(ctx, geocodeKeyPrefix+location).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: %w", err)
	}

	var coord domain.Coordinates
	if err := json.Unmarshal([]byte(raw), &coord); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: decode entry: %w", err)
	}

	return coord, true, nil
}

func (r *RedisGeocodeCache) Put(ctx context.Context, location string, coord domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if location == "" {
		return errors.New("insert geocode cache: empty location key")
	}

	payload, err := json.Marshal(coord)
	if err != nil {
		return fmt.Errorf("insert geocode cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, geocodeKeyPrefix+location, payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}
