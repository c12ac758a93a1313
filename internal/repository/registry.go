package repository

import (
	"context"
	"strings"

	"obrador/internal/bus"
	applog "obrador/internal/log"
	"obrador/internal/storage"
	"obrador/models"
)

// EventIngredientsChanged fires after a recompute persists new derived totals
// onto a product, so list views showing prices can re-read.
const EventIngredientsChanged = "ingredients:changed"

// Registry owns all entity repositories and wires the cross-repository rules
// between them: cascade deletes and the cost/margin recompute. Rules run
// synchronously inside the repository call that triggers them and are
// best-effort — a failing cascade is logged, never surfaced.
type Registry struct {
	Products       *Products
	Ingredients    *Ingredients
	IngredientUses *IngredientUses
	Clients        *Clients
	Sales          *Sales
	SaleLines      *SaleLines
	Recipes        *Recipes
	RecipeBlocks   *RecipeBlocks

	backend  storage.Backend
	notifier *bus.Bus
}

// New builds the registry over a backend. The notifier may be nil when no
// surface listens for changes.
func New(backend storage.Backend, notifier *bus.Bus) *Registry {
	r := &Registry{
		Products:       newProducts(backend),
		Ingredients:    newIngredients(backend),
		IngredientUses: newIngredientUses(backend),
		Clients:        newClients(backend),
		Sales:          newSales(backend),
		SaleLines:      newSaleLines(backend),
		Recipes:        newRecipes(backend),
		RecipeBlocks:   newRecipeBlocks(backend),
		backend:        backend,
		notifier:       notifier,
	}

	r.Products.afterDelete = func(ctx context.Context, productID int) {
		r.IngredientUses.deleteWhereProduct(ctx, productID)
	}
	r.Ingredients.afterDelete = func(ctx context.Context, ingredientID int) {
		r.IngredientUses.deleteWhereIngredient(ctx, ingredientID)
	}
	r.Sales.afterDelete = func(ctx context.Context, saleID int) {
		r.SaleLines.deleteWhereSale(ctx, saleID)
	}
	r.Recipes.afterDelete = func(ctx context.Context, recipeID int) {
		r.RecipeBlocks.deleteWhereRecipe(ctx, recipeID)
	}

	recompute := func(ctx context.Context, productID int) {
		r.recomputeProduct(ctx, productID)
		r.emitChanged(ctx)
	}
	r.IngredientUses.afterChange = recompute
	r.Products.afterMarginChange = recompute

	return r
}

// Init warms the backend's cache. Must be awaited once at process start on
// backends that load asynchronously stored state; a no-op elsewhere.
func (r *Registry) Init(ctx context.Context) error {
	return r.backend.Init(ctx)
}

// Subscribe registers a handler for a registry event, returning an idempotent
// unsubscribe function.
func (r *Registry) Subscribe(event string, handler bus.Handler) func() {
	if r.notifier == nil {
		return func() {}
	}
	return r.notifier.Subscribe(event, handler)
}

func (r *Registry) emitChanged(ctx context.Context) {
	if r.notifier != nil {
		r.notifier.Emit(ctx, EventIngredientsChanged, nil)
	}
}

// RecomputeProductTotals recomputes and persists the derived totals of every
// product, for callers that just finished a bulk mutation of uses or
// ingredients. A single notification follows.
func (r *Registry) RecomputeProductTotals(ctx context.Context) {
	for _, product := range r.Products.ReadAll(ctx) {
		r.recomputeProduct(ctx, product.ID)
	}
	r.emitChanged(ctx)
}

// recomputeProduct rebuilds one product's ingredient cost and persists the
// margin-derived totals. Cost per use is the ingredient's per-unit price
// times the quantity used; an ingredient that cannot be resolved contributes
// zero rather than failing the pass.
func (r *Registry) recomputeProduct(ctx context.Context, productID int) {
	product, ok := r.Products.Get(ctx, productID)
	if !ok {
		return
	}

	ingredients := r.Ingredients.ReadAll(ctx)
	cost := 0.0
	for _, use := range r.IngredientUses.ReadAllBy(ctx, productID) {
		ingredient, found := resolveIngredient(ingredients, use)
		if !found || ingredient.Quantity <= 0 || ingredient.Price < 0 {
			continue
		}
		cost += ingredient.UnitCost() * use.QuantityUsed
	}

	margin := 0.0
	if product.MarginPercent != nil {
		margin = *product.MarginPercent
	}
	total := cost * (1 + margin/100)
	unitPrice := 0.0
	if product.YieldQuantity > 0 {
		unitPrice = total / float64(product.YieldQuantity)
	}

	if !r.Products.setDerived(ctx, productID, total, unitPrice) {
		applog.Warn(ctx, "recompute target vanished", "product_id", productID)
	}
}

// resolveIngredient finds the catalog entry behind a use: by id when the use
// references the catalog, otherwise by case-insensitive name. Free-text uses
// whose name later matches a catalog entry start pricing again.
func resolveIngredient(ingredients []models.Ingredient, use models.IngredientUse) (models.Ingredient, bool) {
	if id, ok := use.Ingredient.CatalogID(); ok {
		for _, ingredient := range ingredients {
			if ingredient.ID == id {
				return ingredient, true
			}
		}
	}

	name := strings.ToLower(strings.TrimSpace(use.Name))
	if name == "" {
		return models.Ingredient{}, false
	}
	for _, ingredient := range ingredients {
		if strings.ToLower(strings.TrimSpace(ingredient.Name)) == name {
			return ingredient, true
		}
	}
	return models.Ingredient{}, false
}
