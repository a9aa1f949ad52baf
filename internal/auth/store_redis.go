// Copyright (c) 2026 Beacon CMS. All rights reserved.
// Author: dev@beaconcms.io

package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/beaconcms/beacon/internal/platform/constants"
)

// # Login Throttle Repository

// RedisLoginThrottle implements LoginThrottle using Redis counters with TTL.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a new Redis-backed LoginThrottle.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

/*
Hit increments the attempt counter for the key and returns the new count.

Description: The TTL is set only when the counter is first created so the
window is anchored to the first failed attempt.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - int64: Attempt count within the current window
  - error: Execution errors
*/
func (throttle *RedisLoginThrottle) Hit(context context.Context, key string) (int64, error) {
	redisKey := constants.RedisPrefixLoginAttempts + key

	count, err := throttle.client.Incr(context, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	// Anchor the window to the first attempt.
	if count == 1 {
		if err := throttle.client.Expire(context, redisKey, LoginAttemptWindow).Err(); err != nil {
			return 0, fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}

	return count, nil
}

/*
Clear removes the attempt counter after a successful login.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (throttle *RedisLoginThrottle) Clear(context context.Context, key string) error {
	redisKey := constants.RedisPrefixLoginAttempts + key

	if err := throttle.client.Del(context, redisKey).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_clear_failed: %w", err)
	}

	return nil
}
