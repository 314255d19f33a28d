package riskscreen

import (
	"context"
	"fmt"

	"github.com/taskhub/backend/pkg/logger"

	"go.uber.org/zap"
)

// Chain runs screeners in order, the first deny wins.
type Chain struct {
	screeners []Screener
	failOpen  bool
}

func NewChain(failOpen bool, screeners ...Screener) *Chain {
	return &Chain{
		screeners: screeners,
		failOpen:  failOpen,
	}
}

func (c *Chain) Screen(ctx context.Context, req Request) (Decision, error) {
	for _, s := range c.screeners {
		decision, err := s.Screen(ctx, req)
		if err != nil {
			if c.failOpen {
				logger.Warn("risk screener failed, allowing", zap.String("screener", fmt.Sprintf("%T", s)), zap.Error(err))
				continue
			}
			return Decision{}, fmt.Errorf("risk screener %T failed: %w", s, err)
		}

		if decision.Denied {
			return decision, nil
		}
	}

	return Allow, nil
}
