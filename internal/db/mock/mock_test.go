package mock

import (
	"context"
	"testing"

	"obrador/internal/bus"
	"obrador/internal/repository"
	"obrador/internal/storage"
)

// The mock database is a shared in-memory handle, so one New() per process:
// a second call would seed on top of the first.
func TestNewSeedsWorkshopData(t *testing.T) {
	ctx := context.Background()

	db, err := New(ctx)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	registry := repository.New(storage.NewDatabase(db), bus.New())
	if err := registry.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := len(registry.Ingredients.ReadAll(ctx)); got != 2 {
		t.Fatalf("seeded %d ingredients, want 2", got)
	}
	if got := len(registry.IngredientUses.ReadAll(ctx)); got != 3 {
		t.Fatalf("seeded %d uses, want 3", got)
	}
	if got := len(registry.Clients.ReadAll(ctx)); got != 1 {
		t.Fatalf("seeded %d clients, want 1", got)
	}

	sales := registry.Sales.ReadAll(ctx)
	if len(sales) != 1 {
		t.Fatalf("seeded %d sales, want 1", len(sales))
	}
	if got := len(registry.SaleLines.ReadAllBy(ctx, sales[0].ID)); got != 1 {
		t.Fatalf("seeded %d sale lines, want 1", got)
	}

	recipes := registry.Recipes.ReadAll(ctx)
	if len(recipes) != 1 {
		t.Fatalf("seeded %d recipes, want 1", len(recipes))
	}
	if got := len(registry.RecipeBlocks.ReadAllBy(ctx, recipes[0].ID)); got != 2 {
		t.Fatalf("seeded %d recipe blocks, want 2", got)
	}

	products := registry.Products.ReadAll(ctx)
	if len(products) != 2 {
		t.Fatalf("seeded %d products, want 2", len(products))
	}
	for _, product := range products {
		if product.Name != "Country Bread" {
			continue
		}
		// 250g of flour at 500/1000 per gram is 125; with the seeded 20%
		// margin the batch totals 150 and each of the 10 loaves 15.
		if product.TotalWithMargin == nil || *product.TotalWithMargin != 150 {
			t.Fatalf("TotalWithMargin = %v, want 150", product.TotalWithMargin)
		}
		if product.UnitPriceWithMargin == nil || *product.UnitPriceWithMargin != 15 {
			t.Fatalf("UnitPriceWithMargin = %v, want 15", product.UnitPriceWithMargin)
		}
		return
	}
	t.Fatal("seeded bread product not found")
}
