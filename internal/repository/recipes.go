package repository

import (
	"context"
	"sort"
	"time"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const (
	recipesKey      = "recipes"
	recipeBlocksKey = "recipe_blocks"
)

func recipeSchema() store.Schema[models.Recipe] {
	return store.Schema[models.Recipe]{
		Key:     recipesKey,
		Columns: []string{"id", "name", "created_at", "active"},
		Encode: func(r models.Recipe) storage.Row {
			return storage.Row{
				"id":         storage.FormatInt(r.ID),
				"name":       r.Name,
				"created_at": storage.FormatTime(r.CreatedAt),
				"active":     storage.FormatBool(r.Active),
			}
		},
		Decode: func(row storage.Row) (models.Recipe, bool) {
			r := models.Recipe{
				ID:        row.Int("id"),
				Name:      row.String("name"),
				CreatedAt: row.Time("created_at"),
				Active:    row.Bool("active", true),
			}
			return r, models.Valid(r)
		},
	}
}

func recipeBlockSchema() store.Schema[models.RecipeBlock] {
	return store.Schema[models.RecipeBlock]{
		Key:     recipeBlocksKey,
		Columns: []string{"id", "recipe_id", "title", "body", "order", "created_at"},
		Encode: func(b models.RecipeBlock) storage.Row {
			return storage.Row{
				"id":         storage.FormatInt(b.ID),
				"recipe_id":  storage.FormatInt(b.RecipeID),
				"title":      b.Title,
				"body":       b.Body,
				"order":      storage.FormatOptionalInt(b.Order),
				"created_at": storage.FormatTime(b.CreatedAt),
			}
		},
		Decode: func(row storage.Row) (models.RecipeBlock, bool) {
			b := models.RecipeBlock{
				ID:        row.Int("id"),
				RecipeID:  row.Int("recipe_id"),
				Title:     row.String("title"),
				Body:      row.String("body"),
				Order:     row.OptionalInt("order"),
				CreatedAt: row.Time("created_at"),
			}
			return b, models.Valid(b)
		},
	}
}

// RecipePatch updates a subset of recipe fields; nil pointers leave the
// current value untouched.
type RecipePatch struct {
	Name   *string
	Active *bool
}

// Recipes is the recipe repository.
type Recipes struct {
	repo[models.Recipe]
	afterDelete func(ctx context.Context, recipeID int)
}

func newRecipes(backend storage.Backend) *Recipes {
	return &Recipes{repo: repo[models.Recipe]{
		col:    store.NewCollection(backend, recipeSchema()),
		id:     func(r models.Recipe) int { return r.ID },
		withID: func(r models.Recipe, id int) models.Recipe { r.ID = id; return r },
	}}
}

// ReadAll returns every recipe, newest first.
func (r *Recipes) ReadAll(ctx context.Context) []models.Recipe {
	return r.readAll(ctx)
}

// Append stores a new recipe and returns its minted id.
func (r *Recipes) Append(ctx context.Context, recipe models.Recipe) int {
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}
	return r.append(ctx, recipe, false)
}

// Update applies the patch to the recipe with the given id.
func (r *Recipes) Update(ctx context.Context, id int, patch RecipePatch) bool {
	return r.update(ctx, id, func(recipe models.Recipe) models.Recipe {
		assign(&recipe.Name, patch.Name)
		assign(&recipe.Active, patch.Active)
		return recipe
	})
}

// Delete removes a recipe. On success the registry cascade removes its blocks
// before Delete returns.
func (r *Recipes) Delete(ctx context.Context, id int) bool {
	ok := r.delete(ctx, id)
	if ok && r.afterDelete != nil {
		r.afterDelete(ctx, id)
	}
	return ok
}

// RecipeBlockPatch updates a subset of a recipe block; nil pointers leave the
// current value untouched.
type RecipeBlockPatch struct {
	Title *string
	Body  *string
	Order *int
}

// RecipeBlocks is the recipe block repository. Unlike every other collection,
// blocks append at the tail so freshly added instructions land after the
// existing ones.
type RecipeBlocks struct {
	repo[models.RecipeBlock]
}

func newRecipeBlocks(backend storage.Backend) *RecipeBlocks {
	return &RecipeBlocks{repo: repo[models.RecipeBlock]{
		col:    store.NewCollection(backend, recipeBlockSchema()),
		id:     func(b models.RecipeBlock) int { return b.ID },
		withID: func(b models.RecipeBlock, id int) models.RecipeBlock { b.ID = id; return b },
	}}
}

// ReadAll returns every block across all recipes in storage order.
func (b *RecipeBlocks) ReadAll(ctx context.Context) []models.RecipeBlock {
	return b.readAll(ctx)
}

// ReadAllBy returns one recipe's blocks sorted by their order field, falling
// back to the id for blocks that never had an explicit order.
func (b *RecipeBlocks) ReadAllBy(ctx context.Context, recipeID int) []models.RecipeBlock {
	blocks := b.filter(ctx, func(block models.RecipeBlock) bool {
		return block.RecipeID == recipeID
	})
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].SortOrder() < blocks[j].SortOrder()
	})
	return blocks
}

// Append stores a new block at the tail and returns its minted id.
func (b *RecipeBlocks) Append(ctx context.Context, block models.RecipeBlock) int {
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}
	return b.append(ctx, block, true)
}

// Update applies the patch to the block with the given id.
func (b *RecipeBlocks) Update(ctx context.Context, id int, patch RecipeBlockPatch) bool {
	return b.update(ctx, id, func(block models.RecipeBlock) models.RecipeBlock {
		assign(&block.Title, patch.Title)
		assign(&block.Body, patch.Body)
		assignOptional(&block.Order, patch.Order)
		return block
	})
}

// Delete removes a block.
func (b *RecipeBlocks) Delete(ctx context.Context, id int) bool {
	return b.delete(ctx, id)
}

// deleteWhereRecipe drops all blocks of a deleted recipe.
func (b *RecipeBlocks) deleteWhereRecipe(ctx context.Context, recipeID int) {
	b.deleteWhere(ctx, func(block models.RecipeBlock) bool {
		return block.RecipeID == recipeID
	})
}
