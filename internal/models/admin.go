package models

import (
	"time"

	"gorm.io/gorm"

	"voicebank/pkg/errors"
)

// AdminRecordingRow is a submission joined with its owner and prompt
// for the review surface. It is produced on demand, never persisted.
type AdminRecordingRow struct {
	ID              string    `json:"id"`
	UserID          uint      `json:"user_id"`
	SentenceID      uint      `json:"sentence_id"`
	AudioURL        string    `json:"audio_url"`
	Status          string    `json:"status"`
	AttemptNumber   int       `json:"attempt_number"`
	DurationSeconds float64   `json:"duration_seconds"`
	RecordedAt      time.Time `json:"recorded_at"`
	UserFullName    string    `json:"full_name"`
	UserEmail       string    `json:"email"`
	SentenceText    string    `json:"sentence_text"`
}

// adminRecordingScan carries the nullable join columns before the
// fallbacks are applied.
type adminRecordingScan struct {
	Recording
	JoinedUserID   *uint   `gorm:"column:joined_user_id"`
	UserFullName   *string `gorm:"column:user_full_name"`
	UserEmail      *string `gorm:"column:user_email"`
	JoinedSentence *uint   `gorm:"column:joined_sentence_id"`
	SentenceText   *string `gorm:"column:sentence_text"`
}

// AdminListRecordings returns every submission left-joined with user
// and sentence data. A vanished user shows "Unknown"; a hard-deleted
// sentence shows "Deleted sentence".
func AdminListRecordings(db *gorm.DB) ([]AdminRecordingRow, error) {
	var scans []adminRecordingScan
	err := db.Table("recordings").
		Select(`recordings.*,
			users.id AS joined_user_id,
			users.full_name AS user_full_name,
			users.email AS user_email,
			sentences.id AS joined_sentence_id,
			sentences.text AS sentence_text`).
		Joins("LEFT JOIN users ON users.id = recordings.user_id").
		Joins("LEFT JOIN sentences ON sentences.id = recordings.sentence_id").
		Order("recordings.recorded_at DESC").
		Scan(&scans).Error
	if err != nil {
		return nil, errors.Internal(err, "failed to list recordings")
	}

	rows := make([]AdminRecordingRow, 0, len(scans))
	for _, s := range scans {
		row := AdminRecordingRow{
			ID:              s.ID,
			UserID:          s.UserID,
			SentenceID:      s.SentenceID,
			AudioURL:        s.AudioURL,
			Status:          s.Status,
			AttemptNumber:   s.AttemptNumber,
			DurationSeconds: s.DurationSeconds,
			RecordedAt:      s.RecordedAt,
			UserFullName:    "Unknown",
			UserEmail:       "Unknown",
			SentenceText:    "Deleted sentence",
		}
		if s.JoinedUserID != nil {
			if s.UserFullName != nil {
				row.UserFullName = *s.UserFullName
			}
			if s.UserEmail != nil {
				row.UserEmail = *s.UserEmail
			}
		}
		if s.JoinedSentence != nil && s.SentenceText != nil {
			row.SentenceText = *s.SentenceText
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AdminUserRow omits credential material.
type AdminUserRow struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	State        string    `json:"state"`
	MotherTongue string    `json:"mother_tongue"`
	CreatedAt    time.Time `json:"created_at"`
}

func AdminListUsers(db *gorm.DB) ([]AdminUserRow, error) {
	var rows []AdminUserRow
	err := db.Model(&User{}).
		Select("id, email, full_name, phone, state, mother_tongue, created_at").
		Order("created_at DESC, id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Internal(err, "failed to list users")
	}
	return rows, nil
}
