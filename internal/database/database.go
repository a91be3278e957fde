package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ErrNotFound is returned by repositories when no document matches an id.
var ErrNotFound = gorm.ErrRecordNotFound

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (or creates) the SQLite catalog at dbPath and migrates
// the catalog schema.
func NewDatabase(dbPath string) (*Database, error) {
	return NewDatabaseWithLogLevel(dbPath, logger.Warn)
}

func NewDatabaseWithLogLevel(dbPath string, level logger.LogLevel) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Genre{},
		&entities.Author{},
		&entities.Book{},
		&entities.BookInstance{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("Database initialized")

	return &Database{DB: db}, nil
}

// dsn enables WAL and a busy timeout so fanned-out reads within a request
// do not trip over each other.
func dsn(dbPath string) string {
	if dbPath == ":memory:" || strings.Contains(dbPath, "?") {
		return dbPath
	}
	return dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=off"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks connectivity of the underlying connection pool.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// IsNotFound reports whether err means a lookup matched no document.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
