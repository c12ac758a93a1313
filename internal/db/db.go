package db

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"obrador/internal/config"
	"obrador/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// Initialize opens the database the blob store persists into. An empty URL
// means a sqlite file under the data directory; a postgres URL switches the
// driver.
func Initialize(cfg config.DatabaseConfig, dataDir string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	db, err := gorm.Open(dialectorFor(cfg.URL, dataDir), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return db, nil
}

func dialectorFor(url, dataDir string) gorm.Dialector {
	trimmed := strings.TrimSpace(url)
	switch {
	case strings.HasPrefix(trimmed, "postgres://"), strings.HasPrefix(trimmed, "postgresql://"):
		return postgres.Open(trimmed)
	case trimmed != "":
		return sqlite.Open(trimmed)
	default:
		return sqlite.Open(filepath.Join(dataDir, "obrador.db"))
	}
}

// AutoMigrate creates the key-value blob table.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	return db.AutoMigrate(&storage.CollectionBlob{})
}

// Configure opens, migrates, and installs the global handle.
func Configure(cfg config.DatabaseConfig, dataDir string) (*gorm.DB, error) {
	database, err := Initialize(cfg, dataDir)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(database); err != nil {
		return nil, err
	}

	DB = database

	return database, nil
}

// MustConfigure is Configure for program start paths where failing to open
// storage is fatal.
func MustConfigure(cfg config.DatabaseConfig, dataDir string) *gorm.DB {
	database, err := Configure(cfg, dataDir)
	if err != nil {
		panic(err)
	}

	return database
}

// Get returns the global handle installed by Configure.
func Get() *gorm.DB {
	return DB
}
