package cache

import (
	"context"
	"errors"
	"time"

	"github.com/taskhub/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	RedisTypeSingle  = "redis"
	RedisTypeCluster = "redisCluster"
	pingTimeout      = time.Millisecond * 1500
)

var ErrWrongRedisType = errors.New("wrong redis type")

// NewRedis backs the registration velocity counters.
func NewRedis(cfg config.Cache) (redis.UniversalClient, error) {
	switch cfg.Type {
	case RedisTypeSingle:
		return ping(newRedis(cfg))
	case RedisTypeCluster:
		return ping(newRedisCluster(cfg))
	}

	return nil, ErrWrongRedisType
}

func newRedis(cfg config.Cache) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.Address,
		Password:        cfg.Redis.Password,
		DB:              0,
		PoolSize:        cfg.Redis.PoolSize,
		ConnMaxIdleTime: 170 * time.Second,
		DialTimeout:     time.Second * 1,
		ReadTimeout:     time.Second * 1,
		WriteTimeout:    time.Second * 1,
	})
}

func newRedisCluster(cfg config.Cache) *redis.ClusterClient {
	return redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:           cfg.RedisCluster.Addresses,
		Password:        cfg.RedisCluster.Password,
		RouteRandomly:   false, // send read operations only to master nodes
		ReadOnly:        false,
		PoolSize:        cfg.RedisCluster.PoolSize,
		ConnMaxLifetime: 15 * time.Minute,
		DialTimeout:     time.Second * 1,
		ReadTimeout:     time.Second * 1,
		WriteTimeout:    time.Second * 1,
	})
}

func ping(client redis.UniversalClient) (redis.UniversalClient, error) {
	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	_, err := client.Ping(pingCtx).Result()
	return client, err
}
