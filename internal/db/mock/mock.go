package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"obrador/internal/bus"
	applog "obrador/internal/log"
	"obrador/internal/repository"
	"obrador/internal/storage"
	"obrador/models"
)

// New returns an in-memory sqlite database seeded with a representative
// workshop dataset, persisted through the same blob store the real database
// backend uses.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:obrador-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&storage.CollectionBlob{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	registry := repository.New(storage.NewDatabase(db), bus.New())
	if err := registry.Init(ctx); err != nil {
		return err
	}

	flourID := registry.Ingredients.Append(ctx, models.Ingredient{
		Name:     "Flour",
		Quantity: 1000,
		Unit:     models.UnitGrams,
		Price:    500,
		Active:   true,
	})
	butterID := registry.Ingredients.Append(ctx, models.Ingredient{
		Name:     "Butter",
		Quantity: 200,
		Unit:     models.UnitGrams,
		Price:    900,
		Active:   true,
	})

	breadID := registry.Products.Append(ctx, models.Product{
		Name:          "Country Bread",
		YieldQuantity: 10,
		Active:        true,
	})
	croissantID := registry.Products.Append(ctx, models.Product{
		Name:          "Croissant",
		YieldQuantity: 12,
		Active:        true,
	})

	registry.IngredientUses.Append(ctx, models.IngredientUse{
		ProductID:    breadID,
		Ingredient:   models.CatalogIngredient(flourID),
		Name:         "Flour",
		Unit:         string(models.UnitGrams),
		QuantityUsed: 250,
	})
	registry.IngredientUses.Append(ctx, models.IngredientUse{
		ProductID:    croissantID,
		Ingredient:   models.CatalogIngredient(flourID),
		Name:         "Flour",
		Unit:         string(models.UnitGrams),
		QuantityUsed: 120,
	})
	registry.IngredientUses.Append(ctx, models.IngredientUse{
		ProductID:    croissantID,
		Ingredient:   models.CatalogIngredient(butterID),
		Name:         "Butter",
		Unit:         string(models.UnitGrams),
		QuantityUsed: 80,
	})

	margin := 20.0
	registry.Products.Update(ctx, breadID, repository.ProductPatch{MarginPercent: &margin})

	registry.Clients.Append(ctx, models.Client{
		FirstName: "Marta",
		LastName:  "Quiroga",
		Phone:     "+54 11 5555 0101",
		Active:    true,
	})

	saleID := registry.Sales.Append(ctx, models.Sale{
		ClientName: "Marta Quiroga",
		Total:      180,
		Status:     models.SaleStatusPaid,
	})
	registry.SaleLines.Replace(ctx, saleID, []models.SaleLine{
		models.NewSaleLine(saleID, breadID, "Country Bread", 2, 75),
	})

	recipeID := registry.Recipes.Append(ctx, models.Recipe{
		Name:   "Country Bread",
		Active: true,
	})
	registry.RecipeBlocks.Append(ctx, models.RecipeBlock{
		RecipeID: recipeID,
		Title:    "Mix",
		Body:     "Combine flour, water, salt and starter.",
	})
	registry.RecipeBlocks.Append(ctx, models.RecipeBlock{
		RecipeID: recipeID,
		Title:    "Proof",
		Body:     "Rest covered until doubled.",
	})

	applog.Debug(ctx, "mock database seeded")
	return nil
}
