package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	handlers "voicebank/internal/handler"
	"voicebank/internal/models"
	"voicebank/pkg/backup"
	"voicebank/pkg/cache"
	"voicebank/pkg/config"
	"voicebank/pkg/logger"
	"voicebank/pkg/metrics"
	"voicebank/pkg/middleware"
	"voicebank/pkg/storage"
	"voicebank/pkg/util"
)

func main() {
	// The logger is not up yet, so config failures go to stderr.
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	if err := logger.Init(cfg.Log); err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := util.OpenDatabase(&gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}, cfg.DBDriver, cfg.DSN)
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.Sentence{},
		&models.RecordingSession{},
		&models.Recording{},
	); err != nil {
		logger.Error("Failed to migrate database", zap.Error(err))
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", zap.Error(err))
		os.Exit(1)
	}

	appCache, err := cache.NewCache(cache.Config{
		Type: cfg.CacheType,
		Redis: cache.RedisConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     10,
			MinIdleConns: 5,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	})
	if err != nil {
		logger.Error("Failed to initialize cache", zap.Error(err))
		os.Exit(1)
	}
	defer appCache.Close()

	gin.SetMode(ginMode(cfg.Mode))
	engine := gin.New()
	engine.Use(gin.Recovery())

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	engine.Use(metrics.Middleware(httpMetrics))
	engine.GET("/metrics", metrics.Handler())

	var limiter *middleware.RateLimiter
	if cfg.RateLimit != "" {
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate: cfg.RateLimit,
			PerRouteRates: map[string]string{
				cfg.APIPrefix + "/auth/signup": "10-M",
				cfg.APIPrefix + "/auth/signin": "30-M",
				cfg.APIPrefix + "/admin/auth":  "10-M",
			},
			SkipPaths:  []string{"/metrics", cfg.APIPrefix + "/system/health"},
			AddHeaders: true,
		}, nil).WithObserver(middleware.NewPrometheusObserver())
		engine.Use(limiter.Middleware())
	}

	h := handlers.NewHandlers(db, appCache, store, httpMetrics, limiter)
	h.Register(engine)

	if cfg.BackupEnabled {
		backup.StartBackupScheduler()
	}

	logger.Info("Server starting", zap.String("addr", cfg.Addr))
	if err := engine.Run(cfg.Addr); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
