// Package cache wraps a redis client for caching season/search run
// results. Adapted from the teacher's internal/services/cache.go:
// same Set/Get/Delete/Exists surface, new key scheme for league
// standings and search progress.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCacheMiss is returned by Get when the key isn't present, distinct
// from a transport/server error so a caller can tell "not cached yet"
// apart from "redis is unreachable" instead of matching on a message
// string.
var ErrCacheMiss = errors.New("cache: key not found")

type Service struct {
	client *redis.Client
}

func NewService(client *redis.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

func (s *Service) Exists(ctx context.Context, key string) (bool, error) {
	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check cache existence: %w", err)
	}
	return val > 0, nil
}

// Cache key generators for season/search state.
func StandingsCacheKey(seasonRunID string) string {
	return fmt.Sprintf("standings:%s", seasonRunID)
}

func SearchProgressCacheKey(searchRunID string) string {
	return fmt.Sprintf("search:progress:%s", searchRunID)
}

func TacticsTableCacheKey() string {
	return "tactics:table"
}

// SetWithRetry makes up to maxRetries redis writes, waiting between
// failed attempts with exponential backoff (50ms doubling, cap 2s) and
// returning ctx.Err() early if ctx is cancelled during a wait. The
// runner does not use it; its cache writes go through Set.
// A marshal error is never transient, so it's surfaced immediately
// without burning a retry.
func (s *Service) SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration, maxRetries int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	const maxBackoff = 2 * time.Second
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = s.client.Set(ctx, key, data, expiration).Err()
		if err == nil {
			return nil
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"key": key, "attempt": attempt + 1, "max_retries": maxRetries,
		}).Warn("cache set failed, retrying")

		backoff := time.Duration(math.Pow(2, float64(attempt))) * 50 * time.Millisecond
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed to set cache after %d attempts: %w", maxRetries, err)
}

// Flush clears all cache entries.
func (s *Service) Flush() error {
	return s.client.FlushDB(context.Background()).Err()
}
