// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/taskboard/internal/platform/constants"
)

// RedisMissingAccountCache implements [MissingAccountCache] with one
// expiring key per absent account id.
type RedisMissingAccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMissingAccountCache creates a Redis-backed cache of absent account ids.
func NewRedisMissingAccountCache(client *redis.Client, ttl time.Duration) *RedisMissingAccountCache {
	return &RedisMissingAccountCache{client: client, ttl: ttl}
}

func missingAccountKey(userID string) string {
	return constants.RedisPrefixMissingAccount + userID
}

// IsMissing reports whether userID was recently confirmed absent.
func (cache *RedisMissingAccountCache) IsMissing(ctx context.Context, userID string) (bool, error) {
	count, err := cache.client.Exists(ctx, missingAccountKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis_missing_account_get_failed: %w", err)
	}
	return count > 0, nil
}

// MarkMissing records userID as absent for the configured TTL.
func (cache *RedisMissingAccountCache) MarkMissing(ctx context.Context, userID string) error {
	if err := cache.client.Set(ctx, missingAccountKey(userID), 1, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_missing_account_set_failed: %w", err)
	}
	return nil
}
