package grandprix

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/constants"
)

// RedisCache implements Cache using a short-TTL Redis key. The TTL keeps the
// next-race answer fresh across the race-date boundary even without
// invalidation.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) GetNext(context context.Context) (*GrandPrix, error) {
	payload, err := cache.client.Get(context, constants.RedisKeyNextRace).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Next race not cached")
		}
		return nil, fmt.Errorf("redis_next_race_get_failed: %w", err)
	}

	race := &GrandPrix{}
	if err := json.Unmarshal(payload, race); err != nil {
		return nil, fmt.Errorf("redis_next_race_decode_failed: %w", err)
	}

	return race, nil
}

func (cache *RedisCache) SetNext(context context.Context, race *GrandPrix) error {
	payload, err := json.Marshal(race)
	if err != nil {
		return fmt.Errorf("redis_next_race_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisKeyNextRace, payload, constants.RedisNextRaceTTL).Err(); err != nil {
		return fmt.Errorf("redis_next_race_set_failed: %w", err)
	}

	return nil
}

func (cache *RedisCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeyNextRace).Err(); err != nil {
		return fmt.Errorf("redis_next_race_invalidate_failed: %w", err)
	}
	return nil
}
