// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"techvisit/config"
)

// AvailabilityCachePrefix is the prefix used for cached availability responses.
const AvailabilityCachePrefix = "availability:"

// CacheClient is the Redis client backing the availability cache. It stays nil
// when Redis is unreachable; callers treat a nil client as "cache disabled".
var CacheClient *redis.Client

var cacheInitialized bool

// InitCache initializes the Redis availability cache client. The cache is an
// optimization only, so a Redis that cannot be reached disables caching
// instead of failing startup.
func InitCache() {
	cacheInitialized = true
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unreachable, availability cache disabled", zap.Error(err))
		return
	}
	CacheClient = client
}

// GetCacheClient returns the availability cache client, or nil when caching is disabled.
func GetCacheClient() *redis.Client {
	if !cacheInitialized {
		InitCache()
	}
	return CacheClient
}

// FlushAvailabilityCache drops every cached availability response. Called after
// any write that changes busy intervals (block, unblock, booking, manual event).
func FlushAvailabilityCache(ctx context.Context, client *redis.Client) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, AvailabilityCachePrefix+"*").Result()
	if err != nil {
		GetLogger().Warn("Failed to scan availability cache keys", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Warn("Failed to flush availability cache", zap.Error(err))
	}
}
