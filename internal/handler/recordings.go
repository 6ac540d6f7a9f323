package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"voicebank/internal/models"
	"voicebank/pkg/errors"
	"voicebank/pkg/response"
)

// handleUploadRecording accepts a multipart take and runs it through
// the submission pipeline.
func (h *Handlers) handleUploadRecording(c *gin.Context) {
	claims := models.CurrentClaims(c)

	file, err := c.FormFile("audio")
	if err != nil {
		response.Error(c, errors.BadRequest("No audio file provided"))
		return
	}

	sentenceID, err := parseID(c.PostForm("sentence_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	attemptNumber, _ := strconv.Atoi(c.PostForm("attempt_number"))
	durationSeconds, _ := strconv.ParseFloat(c.PostForm("duration_seconds"), 64)

	src, err := file.Open()
	if err != nil {
		response.Error(c, errors.Internal(err, "failed to read upload"))
		return
	}
	defer src.Close()

	recording, err := models.SubmitRecording(c.Request.Context(), h.db, h.store, models.SubmitInput{
		UserID:          claims.UserID,
		SentenceID:      sentenceID,
		Status:          c.PostForm("status"),
		AttemptNumber:   attemptNumber,
		DurationSeconds: durationSeconds,
		Audio:           src,
		Size:            file.Size,
		Filename:        file.Filename,
		ContentType:     file.Header.Get("Content-Type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.RecordUpload()
	response.JSON(c, recording)
}

// handleListUserRecordings returns a user's own takes. Users can only
// read their own; admins can read anyone's.
func (h *Handlers) handleListUserRecordings(c *gin.Context) {
	claims := models.CurrentClaims(c)

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if userID != claims.UserID && !claims.Admin {
		response.Error(c, errors.Forbidden("Cannot read another user's recordings"))
		return
	}

	rows, err := models.ListUserRecordings(h.db, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, rows)
}
