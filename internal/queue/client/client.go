package client

import (
	"github.com/taskhub/backend/internal/cache"
	"github.com/taskhub/backend/internal/config"

	"github.com/hibiken/asynq"
)

// New returns a producer for the queues served by cmd/worker.
func New(cfg config.Cache) *asynq.Client {
	return asynq.NewClient(RedisOptions(cfg))
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{
			Addrs:    cfg.RedisCluster.Addresses,
			Password: cfg.RedisCluster.Password,
		}
	} else {
		opts = asynq.RedisClientOpt{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
		}
	}
	return opts
}
