package db

import (
	"testing"

	"obrador/internal/config"
)

func TestDialectorFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"postgres url", "postgres://localhost/obrador", "postgres"},
		{"postgresql url", "postgresql://localhost/obrador", "postgres"},
		{"explicit sqlite path", "/tmp/custom.db", "sqlite"},
		{"empty falls back to data dir", "", "sqlite"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dialector := dialectorFor(tt.url, "/var/lib/obrador")
			if got := dialector.Name(); got != tt.want {
				t.Fatalf("dialectorFor(%q).Name() = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestAutoMigrateRejectsNilHandle(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error for nil handle")
	}
}

func TestConfigureSqliteInTempDir(t *testing.T) {
	dir := t.TempDir()

	database, err := Configure(config.DatabaseConfig{MaxOpenConns: 1}, dir)
	if err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if Get() != database {
		t.Fatal("Configure should install the global handle")
	}

	var count int64
	if err := database.Table("collection_blobs").Count(&count).Error; err != nil {
		t.Fatalf("blob table missing after migrate: %v", err)
	}
	if count != 0 {
		t.Fatalf("fresh store has %d blobs, want 0", count)
	}
}
