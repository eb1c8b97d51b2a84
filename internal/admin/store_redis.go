// Copyright (c) 2026 Paddock. All rights reserved.

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/internal/platform/constants"
)

// RedisStatsCache implements StatsCache with a short-TTL Redis key. The
// dashboard tolerates slightly stale numbers, so 60s of staleness buys a
// large reduction in aggregate query load.
type RedisStatsCache struct {
	client *redis.Client
}

// NewStatsCache creates a new Redis-backed StatsCache.
func NewStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{client: client}
}

func (cache *RedisStatsCache) Get(context context.Context) (*DashboardStats, error) {
	payload, err := cache.client.Get(context, constants.RedisKeyAdminStats).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Stats not cached")
		}
		return nil, fmt.Errorf("redis_admin_stats_get_failed: %w", err)
	}

	stats := &DashboardStats{}
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("redis_admin_stats_decode_failed: %w", err)
	}

	return stats, nil
}

func (cache *RedisStatsCache) Set(context context.Context, stats *DashboardStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis_admin_stats_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisKeyAdminStats, payload, constants.RedisStatsCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_admin_stats_set_failed: %w", err)
	}

	return nil
}
