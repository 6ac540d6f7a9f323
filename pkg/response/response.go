package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voicebank/pkg/errors"
	"voicebank/pkg/logger"
)

// JSON writes data with a 200, matching the original API's bare-row
// responses.
func JSON(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error maps a taxonomy error to its status. Anything without a code is
// an unexpected failure and is logged with its stack before surfacing as
// a generic 500.
func Error(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == 0 {
		code = http.StatusInternalServerError
	}
	if code >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(code, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(code, gin.H{"error": err.Error()})
}
