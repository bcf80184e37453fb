// Package cache keeps assembled round data in Redis so repeated scorecard reads skip the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/interview-scorecard/internal/types"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how stale a cached round can get if an invalidation is missed.
const DefaultTTL = 5 * time.Minute

const (
	keyPrefix = "round_data:"
	scanBatch = 500
)

// RoundCache stores round data keyed by job, candidate and round number.
// A nil *RoundCache is valid and behaves as an always-empty cache.
type RoundCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoundCache creates a cache backed by client
func NewRoundCache(client *redis.Client, ttl time.Duration) *RoundCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RoundCache{client: client, ttl: ttl}
}

// Connect parses a redis:// URL and verifies the server answers
func Connect(ctx context.Context, redisURL string, ttl time.Duration) (*RoundCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRoundCache(client, ttl), nil
}

// Key returns the cache key for a round
func Key(q types.RoundQuery) string {
	return fmt.Sprintf("%s%d:%s:%d", keyPrefix, q.JobID, q.CandidateID, q.RoundNumber)
}

// Get returns the cached rounds. ok is false on a miss.
func (c *RoundCache) Get(ctx context.Context, q types.RoundQuery) (rounds []types.RoundData, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, Key(q)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get round from redis: %w", err)
	}
	if err := json.Unmarshal(data, &rounds); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached round: %w", err)
	}
	return rounds, true, nil
}

// Set stores rounds under the query's key
func (c *RoundCache) Set(ctx context.Context, q types.RoundQuery, rounds []types.RoundData) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rounds)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}
	if err := c.client.Set(ctx, Key(q), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store round in redis: %w", err)
	}
	return nil
}

// Invalidate drops the cached round that contains the interview
func (c *RoundCache) Invalidate(ctx context.Context, iv *types.Interview) error {
	if c == nil || iv == nil {
		return nil
	}
	q := types.RoundQuery{JobID: iv.JobID, CandidateID: iv.CandidateID, RoundNumber: iv.RoundNumber}
	if err := c.client.Del(ctx, Key(q)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate round: %w", err)
	}
	return nil
}

// InvalidateAll drops every cached round. Catalog deletes cascade into feedback of
// any round, so no single key can be targeted.
func (c *RoundCache) InvalidateAll(ctx context.Context) error {
	if c == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate rounds: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached rounds: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate rounds: %w", err)
		}
	}
	return nil
}

// Close releases the underlying client
func (c *RoundCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
