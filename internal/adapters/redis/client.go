// Package redis provides the redis-backed KeyValueStore.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/example/gardenwatch/internal/platform/retry"
)

// NewClient parses redisURL and waits for the server to answer PING.
func NewClient(ctx context.Context, redisURL string, policy retry.Policy) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)

	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
			slog.Warn("redis not ready, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		}
	}

	err = retry.DoVoid(ctx, policy, retry.Always, func() error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}
