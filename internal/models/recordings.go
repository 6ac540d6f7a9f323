package models

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"voicebank/pkg/errors"
	"voicebank/pkg/logger"
	"voicebank/pkg/storage"
)

const (
	RecordingAccepted = "accepted"
	RecordingRejected = "rejected"

	// A losing rejected insert tries this many candidate suffixes
	// before surfacing the conflict.
	rejectedInsertRetries = 3
)

// Recording is a submitted take. The primary key is the semantic
// submission id, so the id-uniqueness invariants are enforced by the
// store itself. AudioURL points at the blob store and is never
// interpreted; only the id is.
type Recording struct {
	ID              string    `json:"id" gorm:"primaryKey;size:255"`
	UserID          uint      `json:"user_id" gorm:"index"`
	SentenceID      uint      `json:"sentence_id" gorm:"index"`
	AudioURL        string    `json:"audio_url" gorm:"size:1024"`
	Status          string    `json:"status" gorm:"size:32"`
	AttemptNumber   int       `json:"attempt_number"`
	DurationSeconds float64   `json:"duration_seconds"`
	RecordedAt      time.Time `json:"recorded_at" gorm:"autoCreateTime"`
}

// SubmitInput carries one take through the pipeline.
type SubmitInput struct {
	UserID          uint
	SentenceID      uint
	Status          string
	AttemptNumber   int
	DurationSeconds float64

	Audio       io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// LocalName resolves the user-visible half of a submission id: the
// display name with whitespace collapsed to underscores, else the email
// local part, else the raw id.
func LocalName(u *User) string {
	if name := strings.Join(strings.Fields(u.FullName), "_"); name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return strconv.FormatUint(uint64(u.ID), 10)
}

// AcceptedRecordingID is the single accepted take's id for a
// user+sentence pair.
func AcceptedRecordingID(name string, sentenceID uint) string {
	return fmt.Sprintf("%s_%d", name, sentenceID)
}

// RejectedRecordingID numbers rejected takes 1,2,3...; the first one
// carries no suffix.
func RejectedRecordingID(name string, sentenceID uint, n int) string {
	if n <= 1 {
		return fmt.Sprintf("%s_rejected_%d", name, sentenceID)
	}
	return fmt.Sprintf("%s_rejected_%d-%d", name, sentenceID, n)
}

func countRejected(db *gorm.DB, userID, sentenceID uint) (int64, error) {
	var count int64
	err := db.Model(&Recording{}).
		Where("user_id = ? AND sentence_id = ? AND status = ?", userID, sentenceID, RecordingRejected).
		Count(&count).Error
	return count, err
}

// SubmitRecording runs the submission pipeline: resolve the semantic
// id, persist the audio blob under a storage-unique key, then insert
// the row. A failed insert after a successful blob write leaves the
// blob orphaned; that is logged and surfaced as Internal, never
// reconciled here.
func SubmitRecording(ctx context.Context, db *gorm.DB, store storage.Store, in SubmitInput) (*Recording, error) {
	if in.Audio == nil {
		return nil, errors.BadRequest("No audio file provided")
	}
	if in.Status != RecordingAccepted && in.Status != RecordingRejected {
		return nil, errors.BadRequest("status must be accepted or rejected")
	}

	user, err := GetUser(db, in.UserID)
	if err != nil {
		return nil, err
	}

	var sentence Sentence
	if err := db.First(&sentence, in.SentenceID).Error; err != nil {
		return nil, errors.NotFound("Sentence not found")
	}

	name := LocalName(user)

	// The accepted id is checked up front so the common duplicate case
	// fails before any blob is written. The insert's key constraint
	// still backstops a race.
	if in.Status == RecordingAccepted {
		id := AcceptedRecordingID(name, in.SentenceID)
		var count int64
		if err := db.Model(&Recording{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, errors.Internal(err, "failed to check existing submission")
		}
		if count > 0 {
			return nil, errors.Conflict("An accepted recording already exists for this sentence")
		}
	}

	key := storage.ObjectKey(in.Filename)
	if err := store.Write(ctx, key, in.Audio, in.Size, in.ContentType); err != nil {
		return nil, errors.Internal(err, "failed to store audio")
	}
	audioURL := store.PublicURL(key)

	recording := &Recording{
		UserID:          in.UserID,
		SentenceID:      in.SentenceID,
		AudioURL:        audioURL,
		Status:          in.Status,
		AttemptNumber:   in.AttemptNumber,
		DurationSeconds: in.DurationSeconds,
	}

	if in.Status == RecordingAccepted {
		recording.ID = AcceptedRecordingID(name, in.SentenceID)
		if err := db.Create(recording).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, errors.Conflict("An accepted recording already exists for this sentence")
			}
			logger.Error("orphaned audio blob after failed insert",
				zap.String("key", key), zap.Error(err))
			return nil, errors.Internal(err, "failed to save recording")
		}
		return recording, nil
	}

	// Rejected takes: count-then-insert. A key collision means the
	// count was stale (a concurrent insert, or a gap in the suffix
	// sequence), so each retry advances the candidate ordinal rather
	// than recounting into the same collision.
	count, err := countRejected(db, in.UserID, in.SentenceID)
	if err != nil {
		return nil, errors.Internal(err, "failed to count rejections")
	}
	for attempt := 0; attempt < rejectedInsertRetries; attempt++ {
		recording.ID = RejectedRecordingID(name, in.SentenceID, int(count)+1+attempt)
		if err := db.Create(recording).Error; err != nil {
			if isDuplicateKey(err) {
				continue
			}
			logger.Error("orphaned audio blob after failed insert",
				zap.String("key", key), zap.Error(err))
			return nil, errors.Internal(err, "failed to save recording")
		}
		return recording, nil
	}
	return nil, errors.Conflict("Concurrent submission, please retry")
}

// UserRecordingRow is a user's own submission joined with its prompt.
type UserRecordingRow struct {
	Recording
	SentenceText string `json:"sentence_text"`
}

// ListUserRecordings returns a user's submissions, newest first, with
// the sentence text resolved.
func ListUserRecordings(db *gorm.DB, userID uint) ([]UserRecordingRow, error) {
	var rows []UserRecordingRow
	err := db.Table("recordings").
		Select("recordings.*, sentences.text AS sentence_text").
		Joins("LEFT JOIN sentences ON sentences.id = recordings.sentence_id").
		Where("recordings.user_id = ?", userID).
		Order("recordings.recorded_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Internal(err, "failed to list recordings")
	}
	return rows, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Driver-specific fallbacks when gorm's error translation is off.
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}
