package infra

import (
	"context"
	"fmt"

	"cashdrawer/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis connects the price cache and report queue client. Dialing and the
// startup ping are bounded by cfg.RedisTimeout(); a client that cannot answer
// the ping is closed before the error is returned.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	timeout := cfg.RedisTimeout()
	opts.DialTimeout = timeout

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Dur("timeout", timeout).Msg("redis connected")
	return rdb, nil
}
