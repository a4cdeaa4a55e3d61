package cache

import (
	"context"
	"fmt"
	"time"

	"starter-kit/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, config utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: config.Addr,
		DB:   config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", config.Addr, err)
	}

	return client, nil
}
