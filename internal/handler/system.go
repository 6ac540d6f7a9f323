package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voicebank/pkg/errors"
	"voicebank/pkg/middleware"
	"voicebank/pkg/response"
)

// UpdateRateLimiterConfig swaps the throttling policy at runtime.
func (h *Handlers) UpdateRateLimiterConfig(c *gin.Context) {
	if h.limiter == nil {
		response.Error(c, errors.BadRequest("rate limiter not enabled"))
		return
	}

	var cfg middleware.RateLimiterConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.Error(c, errors.BadRequest("invalid request"))
		return
	}

	h.limiter.UpdateConfig(cfg)
	response.JSON(c, gin.H{"message": "rate limiter config updated"})
}

// HealthCheck reports database reachability.
func (h *Handlers) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database connection failed"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database ping failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
