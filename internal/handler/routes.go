package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"voicebank/internal/models"
	"voicebank/pkg/cache"
	"voicebank/pkg/config"
	"voicebank/pkg/metrics"
	"voicebank/pkg/middleware"
	"voicebank/pkg/storage"
)

type Handlers struct {
	db      *gorm.DB
	cache   cache.Cache
	store   storage.Store
	metrics *metrics.HTTPMetrics
	limiter *middleware.RateLimiter
}

func NewHandlers(db *gorm.DB, c cache.Cache, store storage.Store, m *metrics.HTTPMetrics, rl *middleware.RateLimiter) *Handlers {
	return &Handlers{
		db:      db,
		cache:   c,
		store:   store,
		metrics: m,
		limiter: rl,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	r := engine.Group(config.GlobalConfig.APIPrefix)

	r.Use(middleware.InjectDB(h.db))

	h.registerSystemRoutes(r)
	h.registerAuthRoutes(r)
	h.registerProfileRoutes(r)
	h.registerSentenceRoutes(r)
	h.registerSessionRoutes(r)
	h.registerRecordingRoutes(r)
	h.registerAdminRoutes(r)

	// Local blob storage serves audio straight back as static files,
	// matching the audio_url prefix persisted on submissions.
	if local, ok := h.store.(*storage.LocalStore); ok {
		engine.Static("/uploads", local.Dir())
	}
}

func (h *Handlers) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.handleUserSignup)

		auth.POST("/signin", h.handleUserSignin)
	}
}

func (h *Handlers) registerProfileRoutes(r *gin.RouterGroup) {
	profile := r.Group("/profile")
	profile.Use(models.AuthRequired)
	{
		profile.GET("", h.handleGetProfile)

		profile.PUT("", h.handleUpdateProfile)
	}
}

func (h *Handlers) registerSentenceRoutes(r *gin.RouterGroup) {
	sentences := r.Group("/sentences")
	{
		sentences.GET("", h.handleListSentences)

		// Catalog mutations are admin-only.
		sentences.POST("", models.AdminRequired, h.handleCreateSentence)

		sentences.PUT("/:id", models.AdminRequired, h.handleUpdateSentence)

		sentences.DELETE("/:id", models.AdminRequired, h.handleDeleteSentence)
	}
}

func (h *Handlers) registerSessionRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/recording-sessions")
	sessions.Use(models.AuthRequired)
	{
		sessions.POST("", h.handleCreateSession)

		sessions.PUT("/:id", h.handleUpdateSession)
	}
}

func (h *Handlers) registerRecordingRoutes(r *gin.RouterGroup) {
	recordings := r.Group("/recordings")
	recordings.Use(models.AuthRequired)
	{
		recordings.POST("", h.handleUploadRecording)

		recordings.GET("/user/:userId", h.handleListUserRecordings)
	}
}

func (h *Handlers) registerAdminRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.POST("/auth", h.handleAdminSignin)

		admin.GET("/sentences", models.AdminRequired, h.handleAdminSentences)

		admin.GET("/users", models.AdminRequired, h.handleAdminUsers)

		admin.GET("/recordings", models.AdminRequired, h.handleAdminRecordings)
	}
}

func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("/system")
	{
		system.GET("/health", h.HealthCheck)

		system.POST("/rate-limiter/config", models.AdminRequired, h.UpdateRateLimiterConfig)
	}
}
