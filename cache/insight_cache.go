package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"
)

// InsightCache memoizes personality analysis results per user, keyed by a
// hash of the behavior snapshot, and enforces a short per-user cooldown
// between model calls.
type InsightCache struct {
	redis    *RedisClient
	ttl      time.Duration
	cooldown time.Duration
}

// NewInsightCache creates a new insight cache instance
func NewInsightCache(redis *RedisClient, ttl, cooldown time.Duration) *InsightCache {
	return &InsightCache{
		redis:    redis,
		ttl:      ttl,
		cooldown: cooldown,
	}
}

// GetAnalysis retrieves a cached analysis for a user and behavior hash into
// dest. Returns true on a hit.
func (c *InsightCache) GetAnalysis(ctx context.Context, userID, dataHash string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}

	cacheKey := fmt.Sprintf("personality:analysis:%s:%s", userID, dataHash)
	if err := c.redis.Get(ctx, cacheKey, dest); err != nil {
		return false
	}
	return true
}

// SetAnalysis caches an analysis result for a user and behavior hash
func (c *InsightCache) SetAnalysis(ctx context.Context, userID, dataHash string, result interface{}) error {
	if c == nil || c.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	cacheKey := fmt.Sprintf("personality:analysis:%s:%s", userID, dataHash)
	return c.redis.Set(ctx, cacheKey, result, c.ttl)
}

// SetCooldown starts the per-user cooldown window after a model call
func (c *InsightCache) SetCooldown(ctx context.Context, userID string) error {
	if c == nil || c.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	cooldownKey := fmt.Sprintf("personality:cooldown:%s", userID)
	return c.redis.Set(ctx, cooldownKey, time.Now().Unix(), c.cooldown)
}

// IsInCooldown checks whether a user is inside the cooldown window
func (c *InsightCache) IsInCooldown(ctx context.Context, userID string) bool {
	if c == nil || c.redis == nil {
		return false
	}

	cooldownKey := fmt.Sprintf("personality:cooldown:%s", userID)
	var timestamp int64
	if err := c.redis.Get(ctx, cooldownKey, &timestamp); err != nil {
		return false
	}
	return timestamp > 0
}

// GenerateDataHash creates a short hash from a behavior snapshot to detect
// whether the user's behavioral data changed between runs
func GenerateDataHash(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf("%x", hash[:8]) // Use first 8 bytes for shorter hash
}
