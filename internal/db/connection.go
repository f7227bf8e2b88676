package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/finblog/backend/internal/config"
)

// DB wraps the GORM database connection
type DB struct {
	*gorm.DB
}

// Connect opens the database selected by cfg.DBDriver. The memory driver
// has no database and is rejected here.
func Connect(cfg *config.Config, log *zap.Logger) (*DB, error) {
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch cfg.DBDriver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return Open(sqlite.Open(cfg.DBPath+"?_foreign_keys=on&_journal_mode=WAL"), gcfg, 1)
	case config.DriverPostgres:
		if log != nil {
			log.Info("connecting to postgres", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
		}
		return Open(postgres.Open(cfg.PostgresDSN()), gcfg, 25)
	}
	return nil, fmt.Errorf("driver %q has no database connection", cfg.DBDriver)
}

// Open establishes a GORM connection and configures the pool. SQLite
// allows a single writer, so callers pass maxOpen=1 for it.
func Open(dialector gorm.Dialector, gcfg *gorm.Config, maxOpen int) (*DB, error) {
	if gcfg == nil {
		gcfg = &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(min(maxOpen, 5))
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// Migrate creates or updates the tables of the given models.
func (db *DB) Migrate(models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks if the database connection is healthy
func (db *DB) Health() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetSQLDB returns the underlying *sql.DB
func (db *DB) GetSQLDB() (*sql.DB, error) {
	return db.DB.DB()
}
