package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/domain"
)

const publicListingKey = "jobs:public"

// JobListingCache keeps the public (non-expired) job listing in Redis for a
// short TTL. All operations are failure-soft: a cache problem is logged and
// the caller falls through to the store.
type JobListingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewJobListingCache builds a cache. A nil client yields a cache that always
// misses, so the service runs without Redis.
func NewJobListingCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *JobListingCache {
	return &JobListingCache{client: client, ttl: ttl, logger: logger}
}

// GetPublicListing returns the cached listing, or (nil, false) on miss.
func (c *JobListingCache) GetPublicListing(ctx context.Context) ([]domain.Job, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, publicListingKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("job listing cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var jobs []domain.Job
	if err := json.Unmarshal(raw, &jobs); err != nil {
		c.logger.Warn("job listing cache payload corrupt", zap.Error(err))
		return nil, false
	}
	return jobs, true
}

// SetPublicListing stores the listing for the configured TTL.
func (c *JobListingCache) SetPublicListing(ctx context.Context, jobs []domain.Job) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(jobs)
	if err != nil {
		c.logger.Warn("job listing cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, publicListingKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("job listing cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached listing after any job write.
func (c *JobListingCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, publicListingKey).Err(); err != nil {
		c.logger.Warn("job listing cache invalidation failed", zap.Error(err))
	}
}
