// Package resource bounds the concurrency and throughput of dataset fetches.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds fetch resource limits.
type Config struct {
	// MaxConcurrentFetches is the maximum number of dataset files fetched in
	// parallel. If 0, defaults to 4.
	MaxConcurrentFetches int64

	// FetchBytesPerSec is the maximum fetch throughput.
	// If 0, unlimited.
	FetchBytesPerSec int64
}

// Controller manages fetch resources.
type Controller struct {
	cfg Config

	fetchSem  *semaphore.Weighted
	ioLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentFetches <= 0 {
		cfg.MaxConcurrentFetches = 4
	}

	c := &Controller{
		cfg:      cfg,
		fetchSem: semaphore.NewWeighted(cfg.MaxConcurrentFetches),
	}

	if cfg.FetchBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.FetchBytesPerSec), int(cfg.FetchBytesPerSec))
	}

	return c
}

// AcquireFetch reserves a fetch slot, blocking until one is available or ctx
// is canceled. A nil controller imposes no limits.
func (c *Controller) AcquireFetch(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fetchSem.Acquire(ctx, 1)
}

// ReleaseFetch releases a fetch slot.
func (c *Controller) ReleaseFetch() {
	if c == nil {
		return
	}
	c.fetchSem.Release(1)
}

// WaitIO throttles n fetched bytes against the configured throughput limit.
func (c *Controller) WaitIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}

	// rate.Limiter caps a single reservation at its burst size.
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
