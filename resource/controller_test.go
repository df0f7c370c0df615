package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController(t *testing.T) {
	t.Run("NilControllerNoops", func(t *testing.T) {
		var c *Controller
		require.NoError(t, c.AcquireFetch(context.Background()))
		c.ReleaseFetch()
		require.NoError(t, c.WaitIO(context.Background(), 1<<20))
	})

	t.Run("ConcurrencyLimit", func(t *testing.T) {
		c := NewController(Config{MaxConcurrentFetches: 1})
		ctx := context.Background()

		require.NoError(t, c.AcquireFetch(ctx))

		// Second acquire must block until release.
		blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		err := c.AcquireFetch(blocked)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		c.ReleaseFetch()
		require.NoError(t, c.AcquireFetch(ctx))
		c.ReleaseFetch()
	})

	t.Run("UnlimitedIO", func(t *testing.T) {
		c := NewController(Config{})
		require.NoError(t, c.WaitIO(context.Background(), 10<<20))
	})

	t.Run("ThrottledIO", func(t *testing.T) {
		// Large budget so the test does not actually sleep.
		c := NewController(Config{FetchBytesPerSec: 1 << 30})
		require.NoError(t, c.WaitIO(context.Background(), 1<<20))
	})
}
