package models

import (
	"encoding/json"
	"testing"
)

func TestIngredientRef(t *testing.T) {
	t.Parallel()

	catalog := CatalogIngredient(5)
	if id, ok := catalog.CatalogID(); !ok || id != 5 {
		t.Fatalf("CatalogID() = %d, %t, want 5, true", id, ok)
	}
	if catalog.Wire() != 5 {
		t.Fatalf("Wire() = %d, want 5", catalog.Wire())
	}

	free := FreeTextIngredient()
	if _, ok := free.CatalogID(); ok {
		t.Fatal("free-text reference should have no catalog id")
	}
	if free.Wire() != -1 {
		t.Fatalf("Wire() = %d, want -1", free.Wire())
	}

	if degraded := CatalogIngredient(0); degraded.Wire() != -1 {
		t.Fatalf("non-positive catalog id should degrade to free-text, got wire %d", degraded.Wire())
	}

	if rebuilt := IngredientRefFromWire(-1); rebuilt != FreeTextIngredient() {
		t.Fatal("wire -1 should rebuild as free-text")
	}
}

func TestIngredientRefJSONRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(CatalogIngredient(9))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "9" {
		t.Fatalf("marshal = %s, want 9", data)
	}

	var ref IngredientRef
	if err := json.Unmarshal([]byte("-1"), &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := ref.CatalogID(); ok {
		t.Fatal("expected unmarshalled -1 to be free-text")
	}
}
