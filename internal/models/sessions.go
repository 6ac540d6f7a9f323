package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voicebank/pkg/errors"
)

const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

// RecordingSession tracks one user's run through a sentence list.
// in_progress -> completed is the only transition; completed is
// terminal. An abandoned run simply stays in_progress.
type RecordingSession struct {
	ID                 string     `json:"id" gorm:"primaryKey;size:36"`
	UserID             uint       `json:"user_id" gorm:"index"`
	TotalSentences     int        `json:"total_sentences"`
	CompletedSentences int        `json:"completed_sentences"`
	Status             string     `json:"status" gorm:"size:32"`
	StartedAt          time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt        *time.Time `json:"completed_at"`
}

// OpenSession creates the user's recording session. An open session
// with the same sentence contract is returned as-is so a page reload
// does not fork a second run; a different contract is a conflict.
// The user row is touched first inside the transaction to serialize
// concurrent opens on the same user.
func OpenSession(db *gorm.DB, userID uint, totalSentences int) (*RecordingSession, error) {
	if totalSentences <= 0 {
		return nil, errors.BadRequest("total_sentences must be positive")
	}

	var session RecordingSession
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&User{}).Where("id = ?", userID).Update("updated_at", time.Now())
		if res.Error != nil {
			return errors.Internal(res.Error, "failed to lock user")
		}
		if res.RowsAffected == 0 {
			return errors.NotFound("User not found")
		}

		var existing RecordingSession
		err := tx.Where("user_id = ? AND status = ?", userID, SessionInProgress).First(&existing).Error
		switch {
		case err == nil:
			if existing.TotalSentences != totalSentences {
				return errors.Conflict("An open recording session already exists")
			}
			session = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			session = RecordingSession{
				ID:             uuid.NewString(),
				UserID:         userID,
				TotalSentences: totalSentences,
				Status:         SessionInProgress,
			}
			if err := tx.Create(&session).Error; err != nil {
				return errors.Internal(err, "failed to create session")
			}
			return nil
		default:
			return errors.Internal(err, "failed to look up open session")
		}
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AdvanceSession increments the owner's progress counter by one.
// Completion is written in the same update as the final increment, so
// completed_at can never precede a full counter. The guarded update
// makes a lost concurrent increment surface as Conflict instead of a
// double count.
func AdvanceSession(db *gorm.DB, id string, userID uint) (*RecordingSession, error) {
	var session RecordingSession
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
			return errors.NotFound("Session not found")
		}
		if session.Status == SessionCompleted {
			return errors.Conflict("Session already completed")
		}

		previous := session.CompletedSentences
		session.CompletedSentences = previous + 1
		updates := map[string]interface{}{
			"completed_sentences": session.CompletedSentences,
		}
		if session.CompletedSentences >= session.TotalSentences {
			now := time.Now()
			session.Status = SessionCompleted
			session.CompletedAt = &now
			updates["status"] = SessionCompleted
			updates["completed_at"] = &now
		}

		res := tx.Model(&RecordingSession{}).
			Where("id = ? AND completed_sentences = ?", id, previous).
			Updates(updates)
		if res.Error != nil {
			return errors.Internal(res.Error, "failed to advance session")
		}
		if res.RowsAffected == 0 {
			return errors.Conflict("Session advanced concurrently")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}
