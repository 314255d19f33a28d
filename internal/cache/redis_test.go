package cache

import (
	"testing"

	"github.com/taskhub/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_WrongType(t *testing.T) {
	t.Parallel()

	_, err := NewRedis(config.Cache{Type: "memcached"})
	assert.ErrorIs(t, err, ErrWrongRedisType)
}

func TestNewRedis_BuildsClientFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.Cache{Type: RedisTypeSingle}
	cfg.Redis.Address = "127.0.0.1:1"
	cfg.Redis.Password = "secret"
	cfg.Redis.PoolSize = 7

	c := newRedis(cfg)
	defer c.Close()

	assert.Equal(t, "127.0.0.1:1", c.Options().Addr)
	assert.Equal(t, "secret", c.Options().Password)
	assert.Equal(t, 7, c.Options().PoolSize)
}
