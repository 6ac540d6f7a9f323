package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// localCache is the in-process backend, backed by go-cache.
type localCache struct {
	c *gocache.Cache
}

func NewLocalCache(config LocalConfig) Cache {
	defExp := config.DefaultExpiration
	if defExp == 0 {
		defExp = 5 * time.Minute
	}
	cleanup := config.CleanupInterval
	if cleanup == 0 {
		cleanup = 10 * time.Minute
	}
	return &localCache{c: gocache.New(defExp, cleanup)}
}

func (lc *localCache) Get(_ context.Context, key string) (interface{}, bool) {
	return lc.c.Get(key)
}

func (lc *localCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	lc.c.Set(key, value, expiration)
	return nil
}

func (lc *localCache) Delete(_ context.Context, key string) error {
	lc.c.Delete(key)
	return nil
}

func (lc *localCache) Exists(_ context.Context, key string) bool {
	_, found := lc.c.Get(key)
	return found
}

func (lc *localCache) Increment(_ context.Context, key string, value int64) (int64, error) {
	if _, found := lc.c.Get(key); !found {
		lc.c.Set(key, value, gocache.NoExpiration)
		return value, nil
	}
	return lc.c.IncrementInt64(key, value)
}

func (lc *localCache) Clear(_ context.Context) error {
	lc.c.Flush()
	return nil
}

func (lc *localCache) Close() error { return nil }
