package backup

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"voicebank/pkg/config"
	"voicebank/pkg/logger"
)

// StartBackupScheduler runs periodic database dumps on the configured
// cron expression.
func StartBackupScheduler() {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))

	schedule := config.GlobalConfig.BackupSchedule
	_, err := c.AddFunc(schedule, func() {
		if err := ExecuteBackup(); err != nil {
			logger.Warn("Backup failed", zap.Error(err))
		} else {
			logger.Info("Backup completed successfully")
		}
	})
	if err != nil {
		logger.Warn("Invalid backup schedule", zap.String("schedule", schedule), zap.Error(err))
		return
	}

	c.Start()
}

func ExecuteBackup() error {
	stamp := time.Now().Format("20060102_150405")
	switch config.GlobalConfig.DBDriver {
	case "sqlite":
		dst := filepath.Join(config.GlobalConfig.BackupPath, fmt.Sprintf("voicebank_backup_%s.db", stamp))
		return BackupSQLiteDatabase(config.GlobalConfig.DSN, dst)
	case "mysql":
		dst := filepath.Join(config.GlobalConfig.BackupPath, fmt.Sprintf("voicebank_backup_%s.sql", stamp))
		return BackupMySQLDatabase(config.GlobalConfig.DSN, dst)
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", config.GlobalConfig.DBDriver)
	}
}

// BackupSQLiteDatabase copies the database file.
func BackupSQLiteDatabase(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create backup directory: %v", err)
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening source file: %v", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("error creating destination file: %v", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("error copying database: %v", err)
	}
	return destFile.Sync()
}

// BackupMySQLDatabase shells out to mysqldump with the DSN's database.
func BackupMySQLDatabase(dsn, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create backup directory: %v", err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("error creating destination file: %v", err)
	}
	defer out.Close()

	cmd := exec.Command("mysqldump", "--defaults-extra-file=/etc/mysql/backup.cnf", dsn)
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysqldump failed: %v", err)
	}
	return nil
}
