package models

import (
	"time"

	"gorm.io/gorm"

	"voicebank/pkg/errors"
)

// Sentence is a recordable prompt. Deactivation hides it from the
// recording flow without breaking existing submissions.
type Sentence struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"size:1024"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// DeleteOutcome tells the caller whether a delete actually removed the
// row or was downgraded to deactivation.
type DeleteOutcome string

const (
	SentenceDeleted     DeleteOutcome = "deleted"
	SentenceDeactivated DeleteOutcome = "deactivated"
)

// ListActiveSentences returns active prompts in insertion order.
func ListActiveSentences(db *gorm.DB) ([]Sentence, error) {
	var sentences []Sentence
	if err := db.Where("is_active = ?", true).Order("created_at, id").Find(&sentences).Error; err != nil {
		return nil, errors.Internal(err, "failed to list sentences")
	}
	return sentences, nil
}

func CreateSentence(db *gorm.DB, text string) (*Sentence, error) {
	sentence := &Sentence{Text: text, IsActive: true}
	if err := db.Create(sentence).Error; err != nil {
		return nil, errors.Internal(err, "failed to create sentence")
	}
	return sentence, nil
}

func UpdateSentence(db *gorm.DB, id uint, text string, isActive bool) (*Sentence, error) {
	var sentence Sentence
	if err := db.First(&sentence, id).Error; err != nil {
		return nil, errors.NotFound("Sentence not found")
	}
	sentence.Text = text
	sentence.IsActive = isActive
	// Updates with a map so a deactivation (false) is not skipped as a
	// zero value.
	err := db.Model(&sentence).Updates(map[string]interface{}{
		"text":      text,
		"is_active": isActive,
	}).Error
	if err != nil {
		return nil, errors.Internal(err, "failed to update sentence")
	}
	return &sentence, nil
}

// DeleteSentence removes a prompt, unless submissions reference it, in
// which case it is deactivated instead and the outcome says so.
func DeleteSentence(db *gorm.DB, id uint) (DeleteOutcome, *Sentence, error) {
	var outcome DeleteOutcome
	var sentence Sentence

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sentence, id).Error; err != nil {
			return errors.NotFound("Sentence not found")
		}

		var refs int64
		if err := tx.Model(&Recording{}).Where("sentence_id = ?", id).Count(&refs).Error; err != nil {
			return errors.Internal(err, "failed to count submissions")
		}

		if refs > 0 {
			if err := tx.Model(&sentence).Update("is_active", false).Error; err != nil {
				return errors.Internal(err, "failed to deactivate sentence")
			}
			sentence.IsActive = false
			outcome = SentenceDeactivated
			return nil
		}

		if err := tx.Delete(&Sentence{}, id).Error; err != nil {
			return errors.Internal(err, "failed to delete sentence")
		}
		outcome = SentenceDeleted
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return outcome, &sentence, nil
}

// AdminListSentences returns the full catalog, newest first, inactive
// rows included.
func AdminListSentences(db *gorm.DB) ([]Sentence, error) {
	var sentences []Sentence
	if err := db.Order("created_at DESC, id DESC").Find(&sentences).Error; err != nil {
		return nil, errors.Internal(err, "failed to list sentences")
	}
	return sentences, nil
}
