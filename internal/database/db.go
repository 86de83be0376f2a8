package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect

	"brigade/internal/models"
)

// Open connects to the configured database and migrates the roster
// schema. SQLite is the default for single-host deployments; PostgreSQL
// is supported through the same gorm dialect mechanism.
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.RosterSnapshot{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return db, nil
}
