package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names a persistence strategy for the encoded collection store.
type Backend string

const (
	// BackendWorkbook keeps every collection as a spreadsheet blob on disk.
	BackendWorkbook Backend = "workbook"
	// BackendDatabase keeps collections as JSON blobs in a key-value table.
	BackendDatabase Backend = "database"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// StorageConfig selects the collection store backend and its data directory.
type StorageConfig struct {
	Backend Backend
	DataDir string
}

// DatabaseConfig contains the database connection settings used when the
// database backend is selected.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig controls the global logger.
type LoggingConfig struct {
	Level string
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	backend := strings.ToLower(firstNonEmpty(os.Getenv("STORAGE_BACKEND"), string(BackendWorkbook)))
	switch Backend(backend) {
	case BackendWorkbook, BackendDatabase:
	default:
		return Config{}, fmt.Errorf("unknown storage backend: %s", backend)
	}

	cfg.Storage = StorageConfig{
		Backend: Backend(backend),
		DataDir: firstNonEmpty(os.Getenv("DATA_DIR"), "data"),
	}

	cfg.Database = DatabaseConfig{
		URL:             firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("DB_URL"), ""),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 2),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 10),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), time.Hour),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 10*time.Minute),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}

	cfg.Logging = LoggingConfig{
		Level: firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
	}

	if strings.TrimSpace(cfg.Storage.DataDir) == "" {
		return Config{}, fmt.Errorf("data directory must not be empty")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := time.ParseDuration(trimmed)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return def
	}
	return parsed
}
