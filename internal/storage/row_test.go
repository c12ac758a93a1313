package storage

import (
	"testing"
	"time"
)

func TestRowCoercion(t *testing.T) {
	t.Parallel()

	row := Row{
		"name":     "  Flour ",
		"quantity": "1000",
		"price":    "500.5",
		"active":   "false",
		"margin":   "20",
		"broken":   "not-a-number",
	}

	if got := row.String("name"); got != "Flour" {
		t.Fatalf("String = %q, want Flour", got)
	}
	if got := row.Int("quantity"); got != 1000 {
		t.Fatalf("Int = %d, want 1000", got)
	}
	if got := row.Int("broken"); got != 0 {
		t.Fatalf("Int on malformed = %d, want 0", got)
	}
	if got := row.Float("price"); got != 500.5 {
		t.Fatalf("Float = %v, want 500.5", got)
	}
	if got := row.Float("missing"); got != 0 {
		t.Fatalf("Float on missing = %v, want 0", got)
	}
	if row.Bool("active", true) {
		t.Fatal("Bool should honor an explicit false")
	}
	if !row.Bool("missing", true) {
		t.Fatal("Bool should default on missing key")
	}
	if !row.Bool("broken", true) {
		t.Fatal("Bool should default on malformed value")
	}
}

func TestRowOptionalAccessors(t *testing.T) {
	t.Parallel()

	row := Row{"margin": "20.5", "order": "3", "blank": ""}

	if got := row.OptionalFloat("margin"); got == nil || *got != 20.5 {
		t.Fatalf("OptionalFloat = %v, want 20.5", got)
	}
	if got := row.OptionalFloat("blank"); got != nil {
		t.Fatalf("OptionalFloat on blank = %v, want nil", *got)
	}
	if got := row.OptionalFloat("missing"); got != nil {
		t.Fatalf("OptionalFloat on missing = %v, want nil", *got)
	}
	if got := row.OptionalInt("order"); got == nil || *got != 3 {
		t.Fatalf("OptionalInt = %v, want 3", got)
	}
	if got := row.OptionalInt("margin"); got != nil {
		t.Fatalf("OptionalInt on non-integer = %v, want nil", *got)
	}
}

func TestRowTime(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	row := Row{"created_at": FormatTime(stamp), "broken": "yesterday"}

	if got := row.Time("created_at"); !got.Equal(stamp) {
		t.Fatalf("Time = %v, want %v", got, stamp)
	}

	before := time.Now().UTC()
	got := row.Time("broken")
	if got.Before(before.Add(-time.Minute)) {
		t.Fatalf("malformed timestamp should default near now, got %v", got)
	}
}

func TestFormatters(t *testing.T) {
	t.Parallel()

	if got := FormatFloat(150); got != "150" {
		t.Fatalf("FormatFloat = %q, want 150", got)
	}
	if got := FormatFloat(0.5); got != "0.5" {
		t.Fatalf("FormatFloat = %q, want 0.5", got)
	}
	if got := FormatOptionalFloat(nil); got != "" {
		t.Fatalf("FormatOptionalFloat(nil) = %q, want empty", got)
	}
	margin := 20.0
	if got := FormatOptionalFloat(&margin); got != "20" {
		t.Fatalf("FormatOptionalFloat = %q, want 20", got)
	}
	order := 2
	if got := FormatOptionalInt(&order); got != "2" {
		t.Fatalf("FormatOptionalInt = %q, want 2", got)
	}
	if got := FormatOptionalInt(nil); got != "" {
		t.Fatalf("FormatOptionalInt(nil) = %q, want empty", got)
	}
	if got := FormatBool(true); got != "true" {
		t.Fatalf("FormatBool = %q, want true", got)
	}
}
