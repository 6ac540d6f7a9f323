package handlers

import (
	"github.com/gin-gonic/gin"

	"voicebank/internal/models"
	"voicebank/pkg/errors"
	"voicebank/pkg/response"
)

func (h *Handlers) handleCreateSession(c *gin.Context) {
	claims := models.CurrentClaims(c)

	var form struct {
		TotalSentences int `json:"total_sentences" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	session, err := models.OpenSession(h.db, claims.UserID, form.TotalSentences)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, session)
}

// handleUpdateSession advances the caller's session by one completed
// sentence. The original wire shape sent the whole counter state; the
// body is still accepted but the server computes progress and the
// completion timestamp itself.
func (h *Handlers) handleUpdateSession(c *gin.Context) {
	claims := models.CurrentClaims(c)

	var form struct {
		CompletedSentences int    `json:"completed_sentences"`
		Status             string `json:"status"`
		CompletedAt        string `json:"completed_at"`
	}
	_ = c.ShouldBindJSON(&form)

	session, err := models.AdvanceSession(h.db, c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, session)
}
