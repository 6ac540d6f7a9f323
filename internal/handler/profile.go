package handlers

import (
	"github.com/gin-gonic/gin"

	"voicebank/internal/models"
	"voicebank/pkg/errors"
	"voicebank/pkg/response"
)

func (h *Handlers) handleGetProfile(c *gin.Context) {
	claims := models.CurrentClaims(c)

	user, err := models.GetUser(h.db, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, user)
}

func (h *Handlers) handleUpdateProfile(c *gin.Context) {
	claims := models.CurrentClaims(c)

	var form models.ProfileForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	user, err := models.UpdateProfile(h.db, claims.UserID, form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, user)
}
