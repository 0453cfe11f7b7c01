package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"payhub-backend/config"
)

var (
	// RedisClient is the shared client used for notification dedup. Tests
	// point it at miniredis directly.
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis dials redis and installs the shared client. The global is
// only set after a successful ping so a half-configured client never
// leaks into the dedup path.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0,
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisFullAddr(), err)
	}

	RedisClient = client
	return client, nil
}
