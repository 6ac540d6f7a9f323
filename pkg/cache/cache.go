package cache

import (
	"context"
	"time"
)

// Cache fronts hot read paths, primarily the active-sentence list.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	Increment(ctx context.Context, key string, value int64) (int64, error)
	Clear(ctx context.Context) error
	Close() error
}

type Config struct {
	// Type is "local" or "redis".
	Type string `json:"type" env:"CACHE_TYPE" default:"local"`

	Redis RedisConfig `json:"redis"`
	Local LocalConfig `json:"local"`
}

type RedisConfig struct {
	Addr     string `json:"addr" env:"REDIS_ADDR" default:"localhost:6379"`
	Password string `json:"password" env:"REDIS_PASSWORD"`
	DB       int    `json:"db" env:"REDIS_DB" default:"0"`

	PoolSize     int           `json:"pool_size" default:"10"`
	MinIdleConns int           `json:"min_idle_conns" default:"5"`
	DialTimeout  time.Duration `json:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `json:"read_timeout" default:"3s"`
	WriteTimeout time.Duration `json:"write_timeout" default:"3s"`
}

type LocalConfig struct {
	DefaultExpiration time.Duration `json:"default_expiration" default:"5m"`
	CleanupInterval   time.Duration `json:"cleanup_interval" default:"10m"`
}
