package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crmdesk/internal/shared/config"
	"crmdesk/internal/shared/logger"
)

// NewRedisClient connects and pings. Callers treat Redis as optional and
// check cfg.Enabled() first.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}

	log.Infow("redis connection established", "addr", cfg.GetAddr(), "db", cfg.DB)
	return client, nil
}
