package handlers

import (
	"github.com/gin-gonic/gin"

	"voicebank/internal/models"
	"voicebank/pkg/errors"
	"voicebank/pkg/response"
)

func (h *Handlers) handleUserSignup(c *gin.Context) {
	var form models.RegisterUserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	user, err := models.RegisterUser(h.db, form)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := models.IssueUserToken(user)
	if err != nil {
		response.Error(c, errors.Internal(err, "failed to issue token"))
		return
	}

	response.JSON(c, gin.H{"user": user, "token": token})
}

func (h *Handlers) handleUserSignin(c *gin.Context) {
	var form struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	user, err := models.AuthenticateUser(h.db, form.Email, form.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := models.IssueUserToken(user)
	if err != nil {
		response.Error(c, errors.Internal(err, "failed to issue token"))
		return
	}

	response.JSON(c, gin.H{"user": user, "token": token})
}

func (h *Handlers) handleAdminSignin(c *gin.Context) {
	var form struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	admin, err := models.AuthenticateAdmin(h.db, form.Username, form.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := models.IssueAdminToken(admin)
	if err != nil {
		response.Error(c, errors.Internal(err, "failed to issue token"))
		return
	}

	response.JSON(c, gin.H{"admin": admin, "token": token})
}
