// Package services wires the EA API client, the cache and the league
// registry into the ingestion pipeline and its schedule.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is not cached.
var ErrCacheMiss = fmt.Errorf("cache miss")

// CacheService is a thin JSON cache over redis.
type CacheService struct {
	client *redis.Client
}

// NewCacheService wraps an already connected redis client.
func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// Set stores a value under the key as JSON with an expiration.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Get loads the JSON value stored under the key into dest. Returns
// ErrCacheMiss when the key is absent.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes keys from the cache.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// MatchesCacheKey keys a club's fetched match history.
func MatchesCacheKey(clubID, platform, matchType string) string {
	return fmt.Sprintf("matches:%s:%s:%s", clubID, platform, matchType)
}
