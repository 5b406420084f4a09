package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgavazzi/hydromate/internal/cache"
	"github.com/tgavazzi/hydromate/internal/config"
)

func setupCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	return cache.NewRedisCache(cfg), mr
}

func TestDayTotalRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCache(t)

	// Miss before any write.
	_, hit, err := c.GetDayTotal(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetDayTotal(ctx, 1, "2026-08-28", 750, time.Hour))

	total, hit, err := c.GetDayTotal(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 750, total)

	// Per-user, per-day keys do not collide.
	_, hit, err = c.GetDayTotal(ctx, 2, "2026-08-28")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestDayTotalExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	require.NoError(t, c.SetDayTotal(ctx, 1, "2026-08-28", 750, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, hit, err := c.GetDayTotal(ctx, 1, "2026-08-28")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateGoal(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	key := c.KeyForGoal(1)
	require.NoError(t, c.Set(ctx, key, 3000, time.Hour))
	require.True(t, mr.Exists(key))

	require.NoError(t, c.InvalidateGoal(ctx, 1))
	assert.False(t, mr.Exists(key))
}

func TestKeyShapes(t *testing.T) {
	c, _ := setupCache(t)

	assert.Equal(t, "hydration:today:7:2026-08-28", c.KeyForDayTotal(7, "2026-08-28"))
	assert.Equal(t, "goal:7", c.KeyForGoal(7))
	assert.Equal(t, "reset:demo1@example.com", c.KeyForResetCode("demo1@example.com"))
}
