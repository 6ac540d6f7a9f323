package models

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicebank/pkg/errors"
	"voicebank/pkg/storage"
)

func newTestStore(t *testing.T) *storage.LocalStore {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func storedFileCount(t *testing.T, store *storage.LocalStore) int {
	t.Helper()

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	return len(entries)
}

func submitInput(userID, sentenceID uint, status string) SubmitInput {
	return SubmitInput{
		UserID:          userID,
		SentenceID:      sentenceID,
		Status:          status,
		AttemptNumber:   1,
		DurationSeconds: 3.2,
		Audio:           strings.NewReader("webm-bytes"),
		Size:            10,
		Filename:        "take.webm",
		ContentType:     "audio/webm",
	}
}

func TestLocalName(t *testing.T) {
	t.Run("full name wins, whitespace collapsed", func(t *testing.T) {
		u := &User{ID: 7, Email: "asha@example.com", FullName: "  Asha   Rao "}
		assert.Equal(t, "Asha_Rao", LocalName(u))
	})

	t.Run("falls back to email local part", func(t *testing.T) {
		u := &User{ID: 7, Email: "asha.rao@example.com"}
		assert.Equal(t, "asha.rao", LocalName(u))
	})

	t.Run("falls back to user id", func(t *testing.T) {
		u := &User{ID: 7, Email: "@broken"}
		assert.Equal(t, "7", LocalName(u))
	})
}

func TestRecordingIDs(t *testing.T) {
	assert.Equal(t, "Asha_Rao_42", AcceptedRecordingID("Asha_Rao", 42))
	assert.Equal(t, "Asha_Rao_rejected_42", RejectedRecordingID("Asha_Rao", 42, 1))
	assert.Equal(t, "Asha_Rao_rejected_42-2", RejectedRecordingID("Asha_Rao", 42, 2))
	assert.Equal(t, "Asha_Rao_rejected_42-3", RejectedRecordingID("Asha_Rao", 42, 3))
}

func TestSubmitRecording(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted then rejected sequence", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "The quick brown fox.")

		accepted, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingAccepted))
		require.NoError(t, err)
		wantAccepted := AcceptedRecordingID("Asha_Rao", sentence.ID)
		assert.Equal(t, wantAccepted, accepted.ID)
		assert.Equal(t, RecordingAccepted, accepted.Status)
		assert.True(t, strings.HasPrefix(accepted.AudioURL, "/uploads/"))

		first, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		assert.Equal(t, RejectedRecordingID("Asha_Rao", sentence.ID, 1), first.ID)

		second, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		assert.Equal(t, RejectedRecordingID("Asha_Rao", sentence.ID, 2), second.ID)

		third, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		assert.Equal(t, RejectedRecordingID("Asha_Rao", sentence.ID, 3), third.ID)
	})

	t.Run("duplicate accepted conflicts without writing a blob", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "The quick brown fox.")

		_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingAccepted))
		require.NoError(t, err)
		before := storedFileCount(t, store)

		_, err = SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingAccepted))
		require.Error(t, err)
		assert.Equal(t, 409, errors.GetCode(err))
		assert.Equal(t, before, storedFileCount(t, store))
	})

	t.Run("rejected insert retries past a stale count", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "The quick brown fox.")

		// A pre-existing row with the id the next count would produce
		// forces at least one collision-and-retry.
		_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		require.NoError(t, db.Create(&Recording{
			ID:         RejectedRecordingID("Asha_Rao", sentence.ID, 3),
			UserID:     user.ID,
			SentenceID: sentence.ID,
			Status:     RecordingRejected,
		}).Error)

		got, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		assert.Equal(t, RejectedRecordingID("Asha_Rao", sentence.ID, 4), got.ID)
	})

	t.Run("rejected insert walks past consecutive collisions", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "The quick brown fox.")

		// Rows with ordinals {1, 4, 5} leave a gap: the count says the
		// next suffix is 4, which is taken, and so is 5.
		_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		for _, n := range []int{4, 5} {
			require.NoError(t, db.Create(&Recording{
				ID:         RejectedRecordingID("Asha_Rao", sentence.ID, n),
				UserID:     user.ID,
				SentenceID: sentence.ID,
				Status:     RecordingRejected,
			}).Error)
		}

		got, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, RecordingRejected))
		require.NoError(t, err)
		assert.Equal(t, RejectedRecordingID("Asha_Rao", sentence.ID, 6), got.ID)
	})

	t.Run("missing audio is rejected", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "The quick brown fox.")

		in := submitInput(user.ID, sentence.ID, RecordingAccepted)
		in.Audio = nil
		_, err := SubmitRecording(ctx, db, store, in)
		require.Error(t, err)
		assert.Equal(t, 400, errors.GetCode(err))
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")
		sentence := createTestSentence(t, db, "The quick brown fox.")

		_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, sentence.ID, "pending"))
		require.Error(t, err)
		assert.Equal(t, 400, errors.GetCode(err))
	})

	t.Run("unknown sentence is not found", func(t *testing.T) {
		db := openTestDB(t)
		store := newTestStore(t)
		user := createTestUser(t, db, "asha@example.com", "Asha Rao")

		_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, 999, RecordingAccepted))
		require.Error(t, err)
		assert.Equal(t, 404, errors.GetCode(err))
	})
}

func TestListUserRecordings(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	store := newTestStore(t)
	user := createTestUser(t, db, "asha@example.com", "Asha Rao")
	other := createTestUser(t, db, "ben@example.com", "Ben Iyer")
	s1 := createTestSentence(t, db, "First sentence.")
	s2 := createTestSentence(t, db, "Second sentence.")

	_, err := SubmitRecording(ctx, db, store, submitInput(user.ID, s1.ID, RecordingAccepted))
	require.NoError(t, err)
	_, err = SubmitRecording(ctx, db, store, submitInput(user.ID, s2.ID, RecordingRejected))
	require.NoError(t, err)
	_, err = SubmitRecording(ctx, db, store, submitInput(other.ID, s1.ID, RecordingAccepted))
	require.NoError(t, err)

	rows, err := ListUserRecordings(db, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, user.ID, row.UserID)
		assert.NotEmpty(t, row.SentenceText)
	}
}
