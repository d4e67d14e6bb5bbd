package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const submissionKeyPrefix = "fulfillment:submission:"

// IdempotencyCache keeps serialized submission responses keyed by ledger ref
// so replays are answered without touching the database. It is a fast path
// only: a miss or an error always falls through to storage.
type IdempotencyCache struct {
	client goredis.Cmdable
}

func NewIdempotencyCache(client goredis.Cmdable) *IdempotencyCache {
	return &IdempotencyCache{client: client}
}

// Get returns nil, nil on a miss.
func (c *IdempotencyCache) Get(ctx context.Context, ref string) ([]byte, error) {
	raw, err := c.client.Get(ctx, submissionKeyPrefix+ref).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("get cached submission %s: %w", ref, err)
	}
	return raw, nil
}

// Set overwrites any cached copy, so a replay that observed a newer order
// lifecycle refreshes it.
func (c *IdempotencyCache) Set(ctx context.Context, ref string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, submissionKeyPrefix+ref, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache submission %s: %w", ref, err)
	}
	return nil
}
