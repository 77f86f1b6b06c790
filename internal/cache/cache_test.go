package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("one")))
	v, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "one", string(v))

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "b", []byte("two")))
	require.Equal(t, 1, c.Len(), "expired entries are swept on write")
}

func TestNop(t *testing.T) {
	var s Store = Nop{}
	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	_, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	c, err := NewRedis(ctx, mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, ok, err := c.Get(ctx, "/services/@v1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "/services/@v1", []byte("<html>")))
	v, ok, err := c.Get(ctx, "/services/@v1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "<html>", string(v))
	require.True(t, mr.Exists(keyPrefix+"/services/@v1"))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "/services/@v1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), addr, time.Minute)
	require.Error(t, err)
}
