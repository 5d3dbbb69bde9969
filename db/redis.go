// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/heritagearc/gatekeeper/logging"
	"github.com/heritagearc/gatekeeper/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: viper.GetString("redis.addr"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// RateLimit counts requests per key in a fixed window and reports whether
// the key is still under the limit.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := RedisClient.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := RedisClient.Expire(ctx, redisKey, per).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}

const classificationsCacheKey = "classifications:all"

// CacheClassifications stores the classification definition list. These are
// public reference data for admin dropdowns; the decision path never reads
// this cache.
func CacheClassifications(ctx context.Context, classifications []model.SecurityClassification) error {
	data, err := json.Marshal(classifications)
	if err != nil {
		return fmt.Errorf("failed to marshal classifications: %w", err)
	}

	ttl := viper.GetDuration("redis.defaultCacheTTL")
	if err := RedisClient.Set(ctx, classificationsCacheKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache classifications: %w", err)
	}

	logger.Debug("Classifications cached successfully", zap.Int("count", len(classifications)))
	return nil
}

// GetCachedClassifications returns the cached definition list, or nil on a
// cache miss.
func GetCachedClassifications(ctx context.Context) ([]model.SecurityClassification, error) {
	data, err := RedisClient.Get(ctx, classificationsCacheKey).Result()
	if err == redis.Nil {
		logger.Debug("Classifications not found in cache")
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get classifications from cache: %w", err)
	}

	var classifications []model.SecurityClassification
	if err := json.Unmarshal([]byte(data), &classifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal classifications: %w", err)
	}

	logger.Debug("Classifications retrieved from cache", zap.Int("count", len(classifications)))
	return classifications, nil
}
