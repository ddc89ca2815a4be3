package database

import (
	"log"
	"strings"

	"github.com/gdg-garage/mental-health-partner-api/internal/config"
	"github.com/gdg-garage/mental-health-partner-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.SeedCatalog {
		if err := SeedCatalog(db); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	return db
}

// dsn makes concurrent writers to a file database wait for the write lock instead of
// failing with "database is locked".
func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL"
}

// Open connects to the sqlite database at path and migrates every model.
// Tests pass ":memory:".
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if path == ":memory:" {
		// every new connection to :memory: is a fresh, empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, err
	}

	return db, nil
}
