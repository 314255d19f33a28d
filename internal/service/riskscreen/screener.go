// Package riskscreen decides whether a registration attempt may proceed.
package riskscreen

import (
	"context"

	"github.com/taskhub/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

type Request struct {
	Email     string
	IP        string
	UserAgent string
}

type Decision struct {
	Denied bool
	Reason string
}

var Allow = Decision{}

func Deny(reason string) Decision {
	return Decision{Denied: true, Reason: reason}
}

type Screener interface {
	Screen(ctx context.Context, req Request) (Decision, error)
}

// New builds the registration chain from config. rdb may be nil, which disables the velocity check.
func New(cfg config.RiskConfig, rdb redis.Cmdable) *Chain {
	screeners := []Screener{NewDomainBlocklist(cfg.BlockedDomains)}

	if rdb != nil && cfg.MaxSignupsPerIP > 0 {
		screeners = append(screeners, NewVelocityScreener(NewRedisCounter(rdb), cfg.MaxSignupsPerIP, cfg.Window))
	}

	if cfg.URL != "" {
		screeners = append(screeners, NewClient(cfg.URL, cfg.Key, cfg.Timeout))
	}

	return NewChain(cfg.FailOpen, screeners...)
}
