package models

import (
	"testing"
)

func TestFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{"both names", Client{FirstName: "Marta", LastName: "Quiroga"}, "Marta Quiroga"},
		{"first only", Client{FirstName: "Marta"}, "Marta"},
		{"last only", Client{LastName: "Quiroga"}, "Quiroga"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.client.FullName(); got != tt.want {
				t.Fatalf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecipeBlockSortOrder(t *testing.T) {
	t.Parallel()

	order := 2
	if got := (RecipeBlock{ID: 9, Order: &order}).SortOrder(); got != 2 {
		t.Fatalf("SortOrder() = %d, want explicit order 2", got)
	}
	if got := (RecipeBlock{ID: 9}).SortOrder(); got != 9 {
		t.Fatalf("SortOrder() = %d, want id fallback 9", got)
	}
}
