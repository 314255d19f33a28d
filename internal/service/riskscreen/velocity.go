package riskscreen

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const velocityKeyPrefix = "risk:signup:ip:"

// Counter increments a key that lives for window after its first hit.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	rdb redis.Cmdable
}

func NewRedisCounter(rdb redis.Cmdable) Counter {
	return &redisCounter{rdb: rdb}
}

// Incr sends EXPIRE NX with every hit so a key left without a ttl gets one on the next hit.
func (c *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis incr failed: %w", err)
	}

	return incr.Val(), nil
}

// VelocityScreener limits registrations per client ip within a fixed window.
type VelocityScreener struct {
	counter Counter
	max     int64
	window  time.Duration
}

func NewVelocityScreener(counter Counter, max int64, window time.Duration) *VelocityScreener {
	return &VelocityScreener{
		counter: counter,
		max:     max,
		window:  window,
	}
}

func (v *VelocityScreener) Screen(ctx context.Context, req Request) (Decision, error) {
	if req.IP == "" {
		return Allow, nil
	}

	n, err := v.counter.Incr(ctx, velocityKeyPrefix+req.IP, v.window)
	if err != nil {
		return Decision{}, err
	}

	if n > v.max {
		return Deny("too many registrations from this address"), nil
	}

	return Allow, nil
}
