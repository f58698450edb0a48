package main

import (
	"context"
	"flag"
	"log"
	"os"

	"lecturescribe-be/internal/bootstrap"
	"lecturescribe-be/internal/config"
	"lecturescribe-be/internal/model"
	"lecturescribe-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Runs the schema migration and, when -user is given, imports that user's
// legacy notes into the document store.
func main() {
	userFlag := flag.String("user", "", "user id whose legacy notes should be imported")
	flag.Parse()

	cfg := config.Load()

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("🚀 Starting GORM Migration")

	color.Yellow("\nStep 1: Setting up Extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Red("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Yellow("\nStep 2: Running AutoMigrate...")
	// The legacy notes table is read-only input; it is never migrated here.
	models := []interface{}{
		&model.NoteMetadata{},
		&model.Folder{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}
	color.Green("Schema migration completed")

	if *userFlag == "" {
		color.Cyan("\n✅ Done. Pass -user <uuid> to also import legacy notes.")
		return
	}

	userId, err := uuid.Parse(*userFlag)
	if err != nil {
		log.Fatalf("Error: Invalid user id %q: %v", *userFlag, err)
	}

	color.Yellow("\nStep 3: Importing legacy notes for user %s...", userId)
	container := bootstrap.NewContainer(db, cfg)
	result, err := container.MigrationService.Migrate(context.Background(), userId)
	if err != nil {
		log.Fatalf("Error: Legacy import failed: %v", err)
	}

	color.Green("Imported %d note(s)", result.Count)
	for _, msg := range result.Errors {
		color.Red("  %s", msg)
	}
	if !result.Success {
		color.Red("\nFinished with %d error(s)", len(result.Errors))
		os.Exit(1)
	}
	color.Cyan("\n✅ Success: Legacy import completed.")
}
