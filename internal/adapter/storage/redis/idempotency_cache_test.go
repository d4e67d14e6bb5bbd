package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	key := "ful_3b1c"
	value := []byte(`{"fulfillment_id":"abc","amount_charged":10000}`)

	result, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, cache.Set(ctx, key, value, 24*time.Hour))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, result)
	assert.True(t, s.Exists(submissionKeyPrefix+key))
	ttl := s.TTL(submissionKeyPrefix + key)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestIdempotencyCache_SetRefreshesValue(t *testing.T) {
	s := miniredis.RunT(t)
	cache := NewIdempotencyCache(goredis.NewClient(&goredis.Options{Addr: s.Addr()}))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ful_1", []byte(`{"lifecycle":"submitted"}`), time.Hour))
	require.NoError(t, cache.Set(ctx, "ful_1", []byte(`{"lifecycle":"shipped"}`), time.Hour))

	got, err := cache.Get(ctx, "ful_1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lifecycle":"shipped"}`, string(got))
}

func TestIdempotencyCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewIdempotencyCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "ful_expiring", []byte(`{}`), time.Second))
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, "ful_expiring")
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestIdempotencyCache_ServerDown(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	cache := NewIdempotencyCache(client)
	s.Close()

	_, err := cache.Get(context.Background(), "ful_any")
	assert.ErrorContains(t, err, "ful_any")
	assert.Error(t, cache.Set(context.Background(), "ful_any", []byte("x"), time.Minute))
}
