package config

import (
	"fmt"
	"log"
	"os"

	"diabkit/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB loads .env, opens the database and runs migrations. The driver
// is chosen by DB_DRIVER: "postgres" for a shared deployment, anything
// else falls back to a local SQLite file (the default for a companion
// device install).
func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "diabkit.db"
		}
		db, err = gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.SessionProfile{},
		&models.Meal{},
		&models.Reminder{},
		&models.Alert{},
		&models.UserDevice{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
