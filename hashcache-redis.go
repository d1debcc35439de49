package adrules

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisHashCache stores source hashes in Redis, so several hosts producing the same
// ruleset can share download state.
type RedisHashCache struct {
	client *redis.Client
	opt    RedisHashCacheOptions
}

type RedisHashCacheOptions struct {
	RedisOptions redis.Options
	KeyPrefix    string

	// Expiry of stored hashes. 0 means they never expire.
	TTL time.Duration
}

var _ HashCache = &RedisHashCache{}

const redisOpTimeout = time.Second

func NewRedisHashCache(opt RedisHashCacheOptions) *RedisHashCache {
	return &RedisHashCache{
		client: redis.NewClient(&opt.RedisOptions),
		opt:    opt,
	}
}

// Lookup treats any Redis failure as a cache miss.
func (c *RedisHashCache) Lookup(url string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	value, err := c.client.Get(ctx, c.key(url)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			Log.WithError(err).WithField("url", url).Error("failed to read from redis")
		}
		return "", false
	}
	return value, true
}

func (c *RedisHashCache) Store(url, hash string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := c.client.Set(ctx, c.key(url), hash, c.opt.TTL).Err(); err != nil {
		Log.WithError(err).WithField("url", url).Error("failed to write to redis")
	}
}

// Flush is a no-op, values are written immediately.
func (c *RedisHashCache) Flush() error {
	return nil
}

// Close releases the connection pool.
func (c *RedisHashCache) Close() error {
	return c.client.Close()
}

func (c *RedisHashCache) key(url string) string {
	return c.opt.KeyPrefix + url
}
