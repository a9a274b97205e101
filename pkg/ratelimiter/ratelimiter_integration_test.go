//go:build integration

package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestLimiterAgainstRedis(t *testing.T) {
	ctx := context.Background()

	container, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })

	l := New(rdb, "login", 2, time.Minute)

	require.NoError(t, l.Allow(ctx, "1.2.3.4"))
	require.NoError(t, l.Allow(ctx, "1.2.3.4"))

	err = l.Allow(ctx, "1.2.3.4")
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Greater(t, rlErr.RetryAfter, time.Duration(0))

	assert.NoError(t, l.Allow(ctx, "5.6.7.8"), "keys are independent")

	require.NoError(t, l.Reset(ctx, "1.2.3.4"))
	assert.NoError(t, l.Allow(ctx, "1.2.3.4"))
}
