package tasks

import (
	"context"
	"time"

	"github.com/sevenstarlining/sevenstar-api/internal/logging"
)

// Sweeper is anything that can drop expired rate-limit entries.
type Sweeper interface {
	Sweep() int
}

// RateLimitSweep periodically reclaims memory held by expired rate-limit windows
type RateLimitSweep struct {
	limiters map[string]Sweeper
	interval time.Duration
	logger   *logging.Logger
}

// NewRateLimitSweep creates a sweep task over the named limiters
func NewRateLimitSweep(interval time.Duration, limiters map[string]Sweeper) *RateLimitSweep {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &RateLimitSweep{
		limiters: limiters,
		interval: interval,
		logger:   logging.GetLogger(),
	}
}

// Start begins the sweep in the background; it stops when ctx is done
func (s *RateLimitSweep) Start(ctx context.Context) {
	go s.runPeriodically(ctx)
}

func (s *RateLimitSweep) runPeriodically(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Rate limit sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce sweeps every limiter a single time and returns the total removed
func (s *RateLimitSweep) RunOnce() int {
	total := 0
	for name, l := range s.limiters {
		removed := l.Sweep()
		if removed > 0 {
			s.logger.Debug("Swept %d expired %s rate limit entries", removed, name)
		}
		total += removed
	}
	return total
}
