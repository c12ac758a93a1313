package repository

import (
	"context"
	"time"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const usesKey = "product_ingredient_links"

func useSchema() store.Schema[models.IngredientUse] {
	return store.Schema[models.IngredientUse]{
		Key:     usesKey,
		Columns: []string{"id", "product_id", "ingredient_id", "name", "unit", "quantity_used", "created_at"},
		Encode: func(u models.IngredientUse) storage.Row {
			return storage.Row{
				"id":            storage.FormatInt(u.ID),
				"product_id":    storage.FormatInt(u.ProductID),
				"ingredient_id": storage.FormatInt(u.Ingredient.Wire()),
				"name":          u.Name,
				"unit":          u.Unit,
				"quantity_used": storage.FormatFloat(u.QuantityUsed),
				"created_at":    storage.FormatTime(u.CreatedAt),
			}
		},
		Decode: func(row storage.Row) (models.IngredientUse, bool) {
			u := models.IngredientUse{
				ID:           row.Int("id"),
				ProductID:    row.Int("product_id"),
				Ingredient:   models.IngredientRefFromWire(row.Int("ingredient_id")),
				Name:         row.String("name"),
				Unit:         row.String("unit"),
				QuantityUsed: row.Float("quantity_used"),
				CreatedAt:    row.Time("created_at"),
			}
			return u, models.Valid(u)
		},
	}
}

// UsePatch updates a subset of an ingredient use; nil pointers leave the
// current value untouched.
type UsePatch struct {
	Name         *string
	Unit         *string
	QuantityUsed *float64
}

// IngredientUses is the product-ingredient link repository. Every mutation
// that changes a product's composition triggers the registry's recompute rule
// through the afterChange hook before returning.
type IngredientUses struct {
	repo[models.IngredientUse]
	afterChange func(ctx context.Context, productID int)
}

func newIngredientUses(backend storage.Backend) *IngredientUses {
	return &IngredientUses{repo: repo[models.IngredientUse]{
		col:    store.NewCollection(backend, useSchema()),
		id:     func(u models.IngredientUse) int { return u.ID },
		withID: func(u models.IngredientUse, id int) models.IngredientUse { u.ID = id; return u },
	}}
}

// ReadAll returns every use across all products.
func (u *IngredientUses) ReadAll(ctx context.Context) []models.IngredientUse {
	return u.readAll(ctx)
}

// ReadAllBy returns the uses composing one product.
func (u *IngredientUses) ReadAllBy(ctx context.Context, productID int) []models.IngredientUse {
	return u.filter(ctx, func(use models.IngredientUse) bool {
		return use.ProductID == productID
	})
}

// Append stores a new use and returns its minted id. The owning product's
// totals are recomputed before Append returns.
func (u *IngredientUses) Append(ctx context.Context, use models.IngredientUse) int {
	if use.CreatedAt.IsZero() {
		use.CreatedAt = time.Now().UTC()
	}
	id := u.append(ctx, use, false)
	u.changed(ctx, use.ProductID)
	return id
}

// Update applies the patch to the use with the given id and recomputes the
// owning product.
func (u *IngredientUses) Update(ctx context.Context, id int, patch UsePatch) bool {
	productID := 0
	ok := u.update(ctx, id, func(use models.IngredientUse) models.IngredientUse {
		assign(&use.Name, patch.Name)
		assign(&use.Unit, patch.Unit)
		assign(&use.QuantityUsed, patch.QuantityUsed)
		productID = use.ProductID
		return use
	})
	if ok {
		u.changed(ctx, productID)
	}
	return ok
}

// Delete removes a use and recomputes the product it belonged to.
func (u *IngredientUses) Delete(ctx context.Context, id int) bool {
	productID := 0
	for _, use := range u.readAll(ctx) {
		if use.ID == id {
			productID = use.ProductID
			break
		}
	}
	ok := u.delete(ctx, id)
	if ok {
		u.changed(ctx, productID)
	}
	return ok
}

func (u *IngredientUses) changed(ctx context.Context, productID int) {
	if u.afterChange != nil && productID > 0 {
		u.afterChange(ctx, productID)
	}
}

// deleteWhereProduct drops all uses of a deleted product. No recompute: the
// product is gone.
func (u *IngredientUses) deleteWhereProduct(ctx context.Context, productID int) {
	u.deleteWhere(ctx, func(use models.IngredientUse) bool {
		return use.ProductID == productID
	})
}

// deleteWhereIngredient drops all uses referencing a deleted catalog
// ingredient. Affected products keep their last persisted totals until the
// next recompute.
func (u *IngredientUses) deleteWhereIngredient(ctx context.Context, ingredientID int) {
	u.deleteWhere(ctx, func(use models.IngredientUse) bool {
		id, ok := use.Ingredient.CatalogID()
		return ok && id == ingredientID
	})
}
