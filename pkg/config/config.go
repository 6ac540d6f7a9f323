package config

import (
	"log"
	"os"

	"voicebank/pkg/logger"
	"voicebank/pkg/util"
)

type Config struct {
	Addr      string `env:"ADDR"`
	Mode      string `env:"MODE"`
	APIPrefix string `env:"API_PREFIX"`

	DBDriver string `env:"DB_DRIVER"`
	DSN      string `env:"DSN"`

	// SessionSecret signs every bearer token. Tokens stop working only by
	// expiry; there is no revocation list.
	SessionSecret string `env:"SESSION_SECRET"`
	UserTokenDays int    `env:"USER_TOKEN_DAYS"`
	AdminTokenHrs int    `env:"ADMIN_TOKEN_HOURS"`

	// Audio payload storage. StorageType is "local" or "minio".
	StorageType    string `env:"STORAGE_TYPE"`
	UploadDir      string `env:"UPLOAD_DIR"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`
	MinioBaseURL   string `env:"MINIO_PUBLIC_BASE"`

	CacheType     string `env:"CACHE_TYPE"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	RateLimit string `env:"RATE_LIMIT"`

	Log logger.LogConfig

	BackupEnabled  bool   `env:"BACKUP_ENABLED"`
	BackupPath     string `env:"BACKUP_PATH"`
	BackupSchedule string `env:"BACKUP_SCHEDULE"`
}

var GlobalConfig *Config

func Load() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	if err := util.LoadEnv(env); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	GlobalConfig = &Config{
		Addr:      util.GetEnvDefault("ADDR", ":3001"),
		Mode:      util.GetEnvDefault("MODE", "debug"),
		APIPrefix: util.GetEnvDefault("API_PREFIX", "/api"),

		DBDriver: util.GetEnvDefault("DB_DRIVER", "sqlite"),
		DSN:      util.GetEnv("DSN"),

		SessionSecret: util.GetEnvDefault("SESSION_SECRET", "change-this-in-production"),
		UserTokenDays: intDefault("USER_TOKEN_DAYS", 7),
		AdminTokenHrs: intDefault("ADMIN_TOKEN_HOURS", 24),

		StorageType:    util.GetEnvDefault("STORAGE_TYPE", "local"),
		UploadDir:      util.GetEnvDefault("UPLOAD_DIR", "uploads"),
		MinioEndpoint:  util.GetEnv("MINIO_ENDPOINT"),
		MinioAccessKey: util.GetEnv("MINIO_ACCESS_KEY"),
		MinioSecretKey: util.GetEnv("MINIO_SECRET_KEY"),
		MinioBucket:    util.GetEnv("MINIO_BUCKET"),
		MinioUseSSL:    util.GetBoolEnv("MINIO_USE_SSL"),
		MinioBaseURL:   util.GetEnv("MINIO_PUBLIC_BASE"),

		CacheType:     util.GetEnvDefault("CACHE_TYPE", "local"),
		RedisAddr:     util.GetEnvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: util.GetEnv("REDIS_PASSWORD"),
		RedisDB:       int(util.GetIntEnv("REDIS_DB")),

		RateLimit: util.GetEnv("RATE_LIMIT"),

		Log: logger.LogConfig{
			Level:      util.GetEnvDefault("LOG_LEVEL", "info"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},

		BackupEnabled:  util.GetBoolEnv("BACKUP_ENABLED"),
		BackupPath:     util.GetEnvDefault("BACKUP_PATH", "backups"),
		BackupSchedule: util.GetEnvDefault("BACKUP_SCHEDULE", "0 3 * * *"),
	}
	return nil
}

func intDefault(key string, fallback int) int {
	if v := int(util.GetIntEnv(key)); v > 0 {
		return v
	}
	return fallback
}
