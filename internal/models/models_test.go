package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"voicebank/pkg/config"
	"voicebank/pkg/logger"
	"voicebank/pkg/util"
)

func init() {
	config.GlobalConfig = &config.Config{
		SessionSecret: "test-secret",
		UserTokenDays: 7,
		AdminTokenHrs: 24,
	}
	_ = logger.Init(logger.LogConfig{Level: "error"})
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := util.OpenDatabase(&gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}, "sqlite", dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{}, &AdminUser{}, &Sentence{}, &RecordingSession{}, &Recording{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, fullName string) *User {
	t.Helper()

	user, err := RegisterUser(db, RegisterUserForm{
		Email:    email,
		Password: "secret123",
		FullName: fullName,
	})
	require.NoError(t, err)
	return user
}

func createTestSentence(t *testing.T, db *gorm.DB, text string) *Sentence {
	t.Helper()

	sentence, err := CreateSentence(db, text)
	require.NoError(t, err)
	return sentence
}
