package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicebank/pkg/errors"
)

func TestListActiveSentences(t *testing.T) {
	db := openTestDB(t)
	first := createTestSentence(t, db, "First prompt.")
	second := createTestSentence(t, db, "Second prompt.")
	third := createTestSentence(t, db, "Third prompt.")

	_, err := UpdateSentence(db, second.ID, second.Text, false)
	require.NoError(t, err)

	active, err := ListActiveSentences(db)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, third.ID, active[1].ID)

	all, err := AdminListSentences(db)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateSentence(t *testing.T) {
	db := openTestDB(t)
	sentence := createTestSentence(t, db, "Original text.")

	updated, err := UpdateSentence(db, sentence.ID, "Edited text.", false)
	require.NoError(t, err)
	assert.Equal(t, "Edited text.", updated.Text)
	assert.False(t, updated.IsActive)

	var stored Sentence
	require.NoError(t, db.First(&stored, sentence.ID).Error)
	assert.Equal(t, "Edited text.", stored.Text)
	assert.False(t, stored.IsActive)

	_, err = UpdateSentence(db, 999, "x", true)
	require.Error(t, err)
	assert.Equal(t, 404, errors.GetCode(err))
}

func TestDeleteSentence(t *testing.T) {
	t.Run("unreferenced sentence is deleted", func(t *testing.T) {
		db := openTestDB(t)
		sentence := createTestSentence(t, db, "Disposable prompt.")

		outcome, _, err := DeleteSentence(db, sentence.ID)
		require.NoError(t, err)
		assert.Equal(t, SentenceDeleted, outcome)

		var count int64
		require.NoError(t, db.Model(&Sentence{}).Where("id = ?", sentence.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("referenced sentence is deactivated instead", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "Recorded prompt.")

		_, err := SubmitRecording(context.Background(), db, store,
			submitInput(user.ID, sentence.ID, RecordingAccepted))
		require.NoError(t, err)

		outcome, row, err := DeleteSentence(db, sentence.ID)
		require.NoError(t, err)
		assert.Equal(t, SentenceDeactivated, outcome)
		require.NotNil(t, row)
		assert.False(t, row.IsActive)

		var stored Sentence
		require.NoError(t, db.First(&stored, sentence.ID).Error)
		assert.False(t, stored.IsActive)
	})

	t.Run("unknown sentence is not found", func(t *testing.T) {
		db := openTestDB(t)

		_, _, err := DeleteSentence(db, 999)
		require.Error(t, err)
		assert.Equal(t, 404, errors.GetCode(err))
	})
}
