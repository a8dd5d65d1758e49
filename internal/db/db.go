// Package db owns the database connection and schema migration.
package db

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/garnizeh/skillsnap/pkg/models"
)

// DB wraps the gorm handle for connection management.
type DB struct {
	conn *gorm.DB
}

// New opens a sqlite database at path and migrates the schema. Foreign
// keys are switched on so the cascade constraints hold at the store
// level too, not only in the repository transaction.
func New(ctx context.Context, path string) (*DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access db pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(
		&models.Account{},
		&models.PortfolioUser{},
		&models.Project{},
		&models.Skill{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Ping reports whether the store is reachable.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Conn returns the underlying gorm handle.
func (db *DB) Conn() *gorm.DB {
	return db.conn
}

// Close closes the DB connection.
func (db *DB) Close() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
