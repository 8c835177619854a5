// Package database implements the persistence layer for suggestions and
// their vote ledger, backed by GORM on an embedded SQLite store.
package database

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"suggestions-bot/internal/database/models"
)

// Open opens (or creates) the SQLite database at path, applies PRAGMAs and
// migrates the schema. The parent directory is created when missing.
func Open(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	// PRAGMAs go through the DSN so every pooled connection gets them;
	// foreign_keys=ON is what makes the votes FK cascade fire on SQLite.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates the suggestions and votes tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Suggestion{},
		&models.Vote{},
	)
}
