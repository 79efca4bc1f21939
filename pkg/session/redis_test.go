package session

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	url := os.Getenv("SESSION_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SESSION_TEST_REDIS_URL is required for redis session tests")
	}

	client, err := NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, time.Minute)
	s.lockWait = 200 * time.Millisecond
	return s
}

func TestRedisStore_GetSetDelete(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()
	sid := NewID()

	v, err := s.Get(ctx, sid, CartTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set(ctx, sid, CartTokenKey, "tok"))
	v, err = s.Get(ctx, sid, CartTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok", v)

	ttl, err := s.client.TTL(ctx, s.bagKey(sid)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete(ctx, sid, CartTokenKey))
	v, err = s.Get(ctx, sid, CartTokenKey)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestRedisStore_Lock(t *testing.T) {
	s := newRedisStore(t)
	ctx := context.Background()
	sid := NewID()

	unlock, err := s.Lock(ctx, sid)
	require.NoError(t, err)

	_, err = s.Lock(ctx, sid)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLockTimeout))

	unlock()

	again, err := s.Lock(ctx, sid)
	require.NoError(t, err)
	again()
}
