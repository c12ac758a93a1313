package repository

import (
	"context"
	"time"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const ingredientsKey = "ingredients"

func ingredientSchema() store.Schema[models.Ingredient] {
	return store.Schema[models.Ingredient]{
		Key:     ingredientsKey,
		Columns: []string{"id", "name", "quantity", "unit", "price", "created_at", "active"},
		Encode: func(i models.Ingredient) storage.Row {
			return storage.Row{
				"id":         storage.FormatInt(i.ID),
				"name":       i.Name,
				"quantity":   storage.FormatFloat(i.Quantity),
				"unit":       string(i.Unit),
				"price":      storage.FormatFloat(i.Price),
				"created_at": storage.FormatTime(i.CreatedAt),
				"active":     storage.FormatBool(i.Active),
			}
		},
		Decode: func(row storage.Row) (models.Ingredient, bool) {
			i := models.Ingredient{
				ID:        row.Int("id"),
				Name:      row.String("name"),
				Quantity:  row.Float("quantity"),
				Unit:      models.ParseUnit(row.String("unit")),
				Price:     row.Float("price"),
				CreatedAt: row.Time("created_at"),
				Active:    row.Bool("active", true),
			}
			return i, models.Valid(i)
		},
	}
}

// IngredientPatch updates a subset of ingredient fields; nil pointers leave
// the current value untouched.
type IngredientPatch struct {
	Name     *string
	Quantity *float64
	Unit     *models.Unit
	Price    *float64
	Active   *bool
}

// Ingredients is the ingredient catalog repository.
type Ingredients struct {
	repo[models.Ingredient]
	afterDelete func(ctx context.Context, ingredientID int)
}

func newIngredients(backend storage.Backend) *Ingredients {
	return &Ingredients{repo: repo[models.Ingredient]{
		col:    store.NewCollection(backend, ingredientSchema()),
		id:     func(i models.Ingredient) int { return i.ID },
		withID: func(i models.Ingredient, id int) models.Ingredient { i.ID = id; return i },
	}}
}

// ReadAll returns every catalog ingredient, newest first.
func (i *Ingredients) ReadAll(ctx context.Context) []models.Ingredient {
	return i.readAll(ctx)
}

// Append stores a new ingredient and returns its minted id.
func (i *Ingredients) Append(ctx context.Context, ingredient models.Ingredient) int {
	if ingredient.CreatedAt.IsZero() {
		ingredient.CreatedAt = time.Now().UTC()
	}
	if ingredient.Unit == "" {
		ingredient.Unit = models.UnitUnits
	}
	return i.append(ctx, ingredient, false)
}

// Update applies the patch to the ingredient with the given id.
func (i *Ingredients) Update(ctx context.Context, id int, patch IngredientPatch) bool {
	return i.update(ctx, id, func(ingredient models.Ingredient) models.Ingredient {
		assign(&ingredient.Name, patch.Name)
		assign(&ingredient.Quantity, patch.Quantity)
		assign(&ingredient.Unit, patch.Unit)
		assign(&ingredient.Price, patch.Price)
		assign(&ingredient.Active, patch.Active)
		return ingredient
	})
}

// Delete removes an ingredient. Uses referencing it are cascaded away by the
// registry; products that consumed it are left as they are.
func (i *Ingredients) Delete(ctx context.Context, id int) bool {
	ok := i.delete(ctx, id)
	if ok && i.afterDelete != nil {
		i.afterDelete(ctx, id)
	}
	return ok
}
