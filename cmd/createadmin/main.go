package main

import (
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"voicebank/internal/models"
	"voicebank/pkg/config"
	"voicebank/pkg/util"
)

// createadmin provisions the fixed admin account, or rotates its
// password if it already exists. Administrators have no self-service
// signup path.
func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "createadmin: -password is required")
		os.Exit(1)
	}

	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	db, err := util.OpenDatabase(&gorm.Config{TranslateError: true}, cfg.DBDriver, cfg.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: failed to open database: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.AdminUser{}); err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: failed to migrate: %v\n", err)
		os.Exit(1)
	}

	admin, err := models.UpsertAdmin(db, *username, *password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin user %q created/updated successfully\n", admin.Username)
}
