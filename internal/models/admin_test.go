package models

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListRecordings(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := newTestStore(t)

	user := createTestUser(t, db, "asha@example.com", "Asha Rao")
	sentence := createTestSentence(t, db, "The quick brown fox.")

	_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingAccepted))
	require.NoError(t, err)

	t.Run("joins speaker and prompt", func(t *testing.T) {
		rows, err := AdminListRecordings(db)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Asha Rao", rows[0].UserFullName)
		assert.Equal(t, "asha@example.com", rows[0].UserEmail)
		assert.Equal(t, "The quick brown fox.", rows[0].SentenceText)
	})

	t.Run("falls back when the prompt row is gone", func(t *testing.T) {
		// A hard delete bypasses the deactivation downgrade to leave a
		// dangling sentence_id behind.
		require.NoError(t, db.Delete(&Sentence{}, sentence.ID).Error)

		rows, err := AdminListRecordings(db)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Deleted sentence", rows[0].SentenceText)
		assert.Equal(t, "Asha Rao", rows[0].UserFullName)
	})

	t.Run("falls back when the speaker row is gone", func(t *testing.T) {
		require.NoError(t, db.Delete(&User{}, user.ID).Error)

		rows, err := AdminListRecordings(db)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Unknown", rows[0].UserFullName)
		assert.Equal(t, "Unknown", rows[0].UserEmail)
	})
}

func TestAdminListUsers(t *testing.T) {
	db := openTestDB(t)
	createTestUser(t, db, "asha@example.com", "Asha Rao")
	createTestUser(t, db, "ben@example.com", "Ben Iyer")

	rows, err := AdminListUsers(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.NotEmpty(t, row.Email)
	}
}
