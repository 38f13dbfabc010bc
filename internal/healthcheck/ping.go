// Package healthcheck adapts stores without a portfolio-common checker to
// the health aggregator.
package healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/GunarsK-portfolio/portfolio-common/health"
)

// PingChecker reports a dependency healthy when its ping succeeds.
type PingChecker struct {
	name string
	ping func(ctx context.Context) error
}

// NewPingChecker wraps ping, for example a DynamoDB DescribeTable or an S3
// HeadBucket call, as a named health.Checker.
func NewPingChecker(name string, ping func(ctx context.Context) error) health.Checker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Name() string {
	return c.name
}

func (c *PingChecker) Check(ctx context.Context) health.CheckResult {
	start := time.Now()

	if c.ping == nil {
		return health.CheckResult{
			Status:  health.StatusUnhealthy,
			Latency: time.Since(start).String(),
			Error:   "ping is nil",
		}
	}

	if err := c.ping(ctx); err != nil {
		return health.CheckResult{
			Status:  health.StatusUnhealthy,
			Latency: time.Since(start).String(),
			Error:   fmt.Sprintf("ping failed: %v", err),
		}
	}

	return health.CheckResult{
		Status:  health.StatusHealthy,
		Latency: time.Since(start).String(),
	}
}
