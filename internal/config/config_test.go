package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendWorkbook {
		t.Fatalf("Backend = %q, want %q", cfg.Storage.Backend, BackendWorkbook)
	}
	if cfg.Storage.DataDir != "data" {
		t.Fatalf("DataDir = %q, want data", cfg.Storage.DataDir)
	}
	if cfg.Database.MaxOpenConns != 10 || cfg.Database.MaxIdleConns != 2 {
		t.Fatalf("unexpected pool defaults: %+v", cfg.Database)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadDatabaseBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "DATABASE")
	t.Setenv("DATA_DIR", "/var/lib/obrador")
	t.Setenv("DB_URL", "postgres://localhost/obrador")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "25")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DATABASE_USE_MOCK", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != BackendDatabase {
		t.Fatalf("Backend = %q, want %q", cfg.Storage.Backend, BackendDatabase)
	}
	if cfg.Database.URL != "postgres://localhost/obrador" {
		t.Fatalf("URL = %q", cfg.Database.URL)
	}
	if cfg.Database.MaxOpenConns != 25 {
		t.Fatalf("MaxOpenConns = %d, want 25", cfg.Database.MaxOpenConns)
	}
	if cfg.Database.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("ConnMaxLifetime = %v, want 30m", cfg.Database.ConnMaxLifetime)
	}
	if !cfg.Database.UseMock {
		t.Fatal("UseMock = false, want true")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cloud")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"first wins", []string{"a", "b"}, "a"},
		{"skips blanks", []string{"", "  ", "c"}, "c"},
		{"all empty", []string{"", ""}, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Fatalf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	t.Parallel()

	if got := parseIntWithDefault("7", 1); got != 7 {
		t.Fatalf("parseIntWithDefault = %d, want 7", got)
	}
	if got := parseIntWithDefault("not a number", 1); got != 1 {
		t.Fatalf("parseIntWithDefault fallback = %d, want 1", got)
	}
	if got := parseDurationWithDefault("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("parseDurationWithDefault = %v, want 90s", got)
	}
	if got := parseDurationWithDefault("", time.Minute); got != time.Minute {
		t.Fatalf("parseDurationWithDefault fallback = %v, want 1m", got)
	}
	if !parseBoolWithDefault("1", false) {
		t.Fatal("parseBoolWithDefault(1) = false, want true")
	}
	if parseBoolWithDefault("maybe", false) {
		t.Fatal("parseBoolWithDefault(maybe) = true, want false")
	}
}
