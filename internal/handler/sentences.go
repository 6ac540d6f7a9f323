package handlers

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"voicebank/internal/models"
	"voicebank/pkg/errors"
	"voicebank/pkg/response"
)

const (
	sentenceCacheKey = "sentences:active"
	sentenceCacheTTL = 30 * time.Second
)

// handleListSentences serves the recording flow's prompt list. The
// list is read on every page load, so it sits behind a short cache
// that catalog writes invalidate. The entry is stored as its JSON
// encoding; a string survives the redis backend's marshal round trip,
// where a typed slice would come back as []interface{}.
func (h *Handlers) handleListSentences(c *gin.Context) {
	if cached, ok := h.cache.Get(c.Request.Context(), sentenceCacheKey); ok {
		if raw, ok := cached.(string); ok {
			var sentences []models.Sentence
			if err := json.Unmarshal([]byte(raw), &sentences); err == nil {
				response.JSON(c, sentences)
				return
			}
		}
	}

	sentences, err := models.ListActiveSentences(h.db)
	if err != nil {
		response.Error(c, err)
		return
	}

	if data, err := json.Marshal(sentences); err == nil {
		_ = h.cache.Set(c.Request.Context(), sentenceCacheKey, string(data), sentenceCacheTTL)
	}
	response.JSON(c, sentences)
}

func (h *Handlers) handleCreateSentence(c *gin.Context) {
	var form struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	sentence, err := models.CreateSentence(h.db, form.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.cache.Delete(c.Request.Context(), sentenceCacheKey)
	response.JSON(c, sentence)
}

func (h *Handlers) handleUpdateSentence(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var form struct {
		Text     string `json:"text" binding:"required"`
		IsActive bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, errors.BadRequest(err.Error()))
		return
	}

	sentence, err := models.UpdateSentence(h.db, id, form.Text, form.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.cache.Delete(c.Request.Context(), sentenceCacheKey)
	response.JSON(c, sentence)
}

// handleDeleteSentence reports whether the row was removed or only
// deactivated, so the admin UI can tell the two apart.
func (h *Handlers) handleDeleteSentence(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	outcome, sentence, err := models.DeleteSentence(h.db, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.cache.Delete(c.Request.Context(), sentenceCacheKey)

	switch outcome {
	case models.SentenceDeactivated:
		response.JSON(c, gin.H{
			"result":   string(outcome),
			"message":  "Sentence has submissions and was marked inactive",
			"sentence": sentence,
		})
	default:
		response.JSON(c, gin.H{
			"result":  string(outcome),
			"message": "Sentence deleted successfully",
		})
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.BadRequest("invalid id")
	}
	return uint(id), nil
}
