package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestWorkbookRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewWorkbook(t.TempDir())
	if err := backend.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	columns := []string{"id", "name", "price"}
	rows := []Row{
		{"id": "2", "name": "Butter", "price": "1200"},
		{"id": "1", "name": "Flour", "price": "500"},
	}

	if err := backend.WriteAll(ctx, "ingredients", columns, rows); err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}

	got, err := backend.ReadAll(ctx, "ingredients")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadAll() returned %d rows, want 2", len(got))
	}
	if got[0].String("name") != "Butter" || got[1].String("name") != "Flour" {
		t.Fatalf("row order not preserved: %v", got)
	}
	if got[1].Int("id") != 1 || got[1].Float("price") != 500 {
		t.Fatalf("row fields lost: %v", got[1])
	}
}

func TestWorkbookMissingFileReadsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewWorkbook(t.TempDir())
	if err := backend.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	rows, err := backend.ReadAll(ctx, "products")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if rows != nil {
		t.Fatalf("ReadAll() = %v, want nil for a collection never written", rows)
	}
}

func TestWorkbookOverwriteReplacesRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backend := NewWorkbook(t.TempDir())
	if err := backend.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	columns := []string{"id", "name"}
	if err := backend.WriteAll(ctx, "clients", columns, []Row{
		{"id": "1", "name": "Marta"},
		{"id": "2", "name": "Diego"},
	}); err != nil {
		t.Fatalf("first WriteAll() error = %v", err)
	}
	if err := backend.WriteAll(ctx, "clients", columns, []Row{
		{"id": "3", "name": "Lucia"},
	}); err != nil {
		t.Fatalf("second WriteAll() error = %v", err)
	}

	rows, err := backend.ReadAll(ctx, "clients")
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 1 || rows[0].String("name") != "Lucia" {
		t.Fatalf("overwrite not applied: %v", rows)
	}
}

func TestWorkbookPathPerKey(t *testing.T) {
	t.Parallel()

	backend := NewWorkbook("/var/lib/obrador")
	want := filepath.Join("/var/lib/obrador", "sales.xlsx")
	if got := backend.path("sales"); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}
