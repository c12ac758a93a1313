package models

import (
	"encoding/json"
	"time"
)

// freeTextSentinel is the wire value recorded for uses added by free-text
// name instead of a catalog pick. Kept for compatibility with existing blobs.
const freeTextSentinel = -1

// IngredientRef points an ingredient use either at a catalog ingredient or at
// nothing but its denormalized name (free-text). Construct values with
// CatalogIngredient or FreeTextIngredient.
type IngredientRef struct {
	id int
}

// CatalogIngredient references the catalog entry with the given id. A
// non-positive id degrades to a free-text reference.
func CatalogIngredient(id int) IngredientRef {
	if id <= 0 {
		return FreeTextIngredient()
	}
	return IngredientRef{id: id}
}

// FreeTextIngredient marks a use whose ingredient exists only as the
// denormalized name on the use itself.
func FreeTextIngredient() IngredientRef {
	return IngredientRef{id: freeTextSentinel}
}

// IngredientRefFromWire rebuilds a reference from its stored integer form.
func IngredientRefFromWire(value int) IngredientRef {
	return CatalogIngredient(value)
}

// CatalogID reports the referenced catalog id. ok is false for free-text
// references.
func (r IngredientRef) CatalogID() (int, bool) {
	if r.id <= 0 {
		return 0, false
	}
	return r.id, true
}

// Wire returns the integer persisted for this reference.
func (r IngredientRef) Wire() int {
	if r.id <= 0 {
		return freeTextSentinel
	}
	return r.id
}

func (r IngredientRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Wire())
}

func (r *IngredientRef) UnmarshalJSON(data []byte) error {
	var value int
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*r = IngredientRefFromWire(value)
	return nil
}

// IngredientUse links a product to an ingredient its batch consumes. Name and
// Unit are snapshots of the ingredient at link time; they are read fast-path
// data and the lookup fallback for free-text references, never synced back.
type IngredientUse struct {
	ID           int           `json:"id"`
	ProductID    int           `json:"product_id" validate:"gt=0"`
	Ingredient   IngredientRef `json:"ingredient_id"`
	Name         string        `json:"name" validate:"required"`
	Unit         string        `json:"unit"`
	QuantityUsed float64       `json:"quantity_used" validate:"gt=0"`
	CreatedAt    time.Time     `json:"created_at"`
}
