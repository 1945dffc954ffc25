package infra

import (
	"testing"
	"time"

	"cashdrawer/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_RejectsMalformedURL(t *testing.T) {
	_, err := NewRedis(&config.Config{RedisURL: "not-a-redis-url"})
	assert.ErrorContains(t, err, "REDIS_URL")
}

func TestNewRedis_UnreachableServerFailsWithinTimeout(t *testing.T) {
	start := time.Now()
	_, err := NewRedis(&config.Config{RedisURL: "redis://127.0.0.1:1/0", RedisTimeoutSeconds: 1})
	assert.ErrorContains(t, err, "127.0.0.1:1")
	assert.Less(t, time.Since(start), 5*time.Second)
}
