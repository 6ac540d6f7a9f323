package handlers

import (
	"github.com/gin-gonic/gin"

	"voicebank/internal/models"
	"voicebank/pkg/response"
)

// The admin review surface is read-only: full collections, recordings
// pre-joined with user and sentence data.

func (h *Handlers) handleAdminSentences(c *gin.Context) {
	sentences, err := models.AdminListSentences(h.db)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, sentences)
}

func (h *Handlers) handleAdminUsers(c *gin.Context) {
	users, err := models.AdminListUsers(h.db)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, users)
}

func (h *Handlers) handleAdminRecordings(c *gin.Context) {
	rows, err := models.AdminListRecordings(h.db)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, rows)
}
