package repository

import (
	"context"
	"time"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const productsKey = "products"

func productSchema() store.Schema[models.Product] {
	return store.Schema[models.Product]{
		Key: productsKey,
		Columns: []string{
			"id", "name", "yield_quantity", "created_at", "active",
			"margin_percent", "total_with_margin", "unit_price_with_margin",
		},
		Encode: func(p models.Product) storage.Row {
			return storage.Row{
				"id":                     storage.FormatInt(p.ID),
				"name":                   p.Name,
				"yield_quantity":         storage.FormatInt(p.YieldQuantity),
				"created_at":             storage.FormatTime(p.CreatedAt),
				"active":                 storage.FormatBool(p.Active),
				"margin_percent":         storage.FormatOptionalFloat(p.MarginPercent),
				"total_with_margin":      storage.FormatOptionalFloat(p.TotalWithMargin),
				"unit_price_with_margin": storage.FormatOptionalFloat(p.UnitPriceWithMargin),
			}
		},
		Decode: func(row storage.Row) (models.Product, bool) {
			p := models.Product{
				ID:                  row.Int("id"),
				Name:                row.String("name"),
				YieldQuantity:       row.Int("yield_quantity"),
				CreatedAt:           row.Time("created_at"),
				Active:              row.Bool("active", true),
				MarginPercent:       row.OptionalFloat("margin_percent"),
				TotalWithMargin:     row.OptionalFloat("total_with_margin"),
				UnitPriceWithMargin: row.OptionalFloat("unit_price_with_margin"),
			}
			return p, models.Valid(p)
		},
	}
}

// ProductPatch updates a subset of product fields; nil pointers leave the
// current value untouched. ClearPricing wipes the margin and both derived
// totals in one go.
type ProductPatch struct {
	Name                *string
	YieldQuantity       *int
	Active              *bool
	MarginPercent       *float64
	TotalWithMargin     *float64
	UnitPriceWithMargin *float64
	ClearPricing        bool
}

func (p ProductPatch) touchesMargin() bool {
	return p.MarginPercent != nil || p.ClearPricing
}

// Products is the product repository. Margin changes trigger the registry's
// recompute rule through the afterMarginChange hook.
type Products struct {
	repo[models.Product]
	afterDelete       func(ctx context.Context, productID int)
	afterMarginChange func(ctx context.Context, productID int)
}

func newProducts(backend storage.Backend) *Products {
	return &Products{repo: repo[models.Product]{
		col:    store.NewCollection(backend, productSchema()),
		id:     func(p models.Product) int { return p.ID },
		withID: func(p models.Product, id int) models.Product { p.ID = id; return p },
	}}
}

// ReadAll returns every product, newest first. The active flag is returned
// as stored; filtering on it is the caller's decision.
func (p *Products) ReadAll(ctx context.Context) []models.Product {
	return p.readAll(ctx)
}

// Get returns the product with the given id.
func (p *Products) Get(ctx context.Context, id int) (models.Product, bool) {
	for _, product := range p.readAll(ctx) {
		if product.ID == id {
			return product, true
		}
	}
	return models.Product{}, false
}

// Append stores a new product and returns its minted id.
func (p *Products) Append(ctx context.Context, product models.Product) int {
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	return p.append(ctx, product, false)
}

// Update applies the patch to the product with the given id. A margin change
// recomputes the product's derived totals before Update returns.
func (p *Products) Update(ctx context.Context, id int, patch ProductPatch) bool {
	ok := p.update(ctx, id, func(product models.Product) models.Product {
		assign(&product.Name, patch.Name)
		assign(&product.YieldQuantity, patch.YieldQuantity)
		assign(&product.Active, patch.Active)
		if patch.ClearPricing {
			product.MarginPercent = nil
			product.TotalWithMargin = nil
			product.UnitPriceWithMargin = nil
		}
		assignOptional(&product.MarginPercent, patch.MarginPercent)
		assignOptional(&product.TotalWithMargin, patch.TotalWithMargin)
		assignOptional(&product.UnitPriceWithMargin, patch.UnitPriceWithMargin)
		return product
	})
	if ok && patch.touchesMargin() && p.afterMarginChange != nil {
		p.afterMarginChange(ctx, id)
	}
	return ok
}

// Delete removes a product. On success the registry cascade removes the
// product's ingredient uses before Delete returns.
func (p *Products) Delete(ctx context.Context, id int) bool {
	ok := p.delete(ctx, id)
	if ok && p.afterDelete != nil {
		p.afterDelete(ctx, id)
	}
	return ok
}

// setDerived persists recomputed totals without re-entering the margin hook.
func (p *Products) setDerived(ctx context.Context, id int, total, unitPrice float64) bool {
	return p.update(ctx, id, func(product models.Product) models.Product {
		product.TotalWithMargin = &total
		product.UnitPriceWithMargin = &unitPrice
		return product
	})
}

func assign[T any](target *T, value *T) {
	if value != nil {
		*target = *value
	}
}

func assignOptional[T any](target **T, value *T) {
	if value != nil {
		copied := *value
		*target = &copied
	}
}
