package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tgavazzi/hydromate/internal/config"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForDayTotal is the running consumed-ml counter for one user-day.
func (c *RedisCache) KeyForDayTotal(userID uint64, date string) string {
	return fmt.Sprintf("hydration:today:%d:%s", userID, date)
}

// KeyForGoal caches the effective daily goal per user.
func (c *RedisCache) KeyForGoal(userID uint64) string {
	return fmt.Sprintf("goal:%d", userID)
}

// KeyForResetCode holds a short-lived password reset code per email.
func (c *RedisCache) KeyForResetCode(email string) string {
	return fmt.Sprintf("reset:%s", email)
}

// GetDayTotal reads the cached consumed total for a user-day.
// A cache miss is reported as found=false, not an error.
func (c *RedisCache) GetDayTotal(ctx context.Context, userID uint64, date string) (int, bool, error) {
	val, err := c.Client.Get(ctx, c.KeyForDayTotal(userID, date)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// SetDayTotal stores the consumed total for a user-day; the TTL should
// carry it to local midnight, after which the counter restarts.
func (c *RedisCache) SetDayTotal(ctx context.Context, userID uint64, date string, total int, ttl time.Duration) error {
	return c.Client.Set(ctx, c.KeyForDayTotal(userID, date), total, ttl).Err()
}

// InvalidateGoal drops the cached goal after a profile or goal change.
func (c *RedisCache) InvalidateGoal(ctx context.Context, userID uint64) error {
	return c.Client.Del(ctx, c.KeyForGoal(userID)).Err()
}
