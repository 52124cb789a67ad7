package services

import (
	"path/filepath"
	"testing"

	"diabkit/config"
	"diabkit/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points the global handle at a throwaway SQLite file for
// the duration of one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.SessionProfile{},
		&models.Meal{},
		&models.Reminder{},
		&models.Alert{},
		&models.UserDevice{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}
