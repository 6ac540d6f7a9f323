package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLocalCache(t *testing.T) {
	c := NewLocalCache(LocalConfig{
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   10 * time.Minute,
	})
	defer c.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		require.Equal(t, "v", got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "gone", 1, time.Minute))
		require.NoError(t, c.Delete(ctx, "gone"))
		require.False(t, c.Exists(ctx, "gone"))
	})

	t.Run("Increment starts from zero", func(t *testing.T) {
		n, err := c.Increment(ctx, "ctr", 1)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		n, err = c.Increment(ctx, "ctr", 2)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
		require.NoError(t, c.Clear(ctx))
		require.False(t, c.Exists(ctx, "a"))
	})
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	_, err := NewCache(Config{Type: "memcached"})
	require.Error(t, err)
}
