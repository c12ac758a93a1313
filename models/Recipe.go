package models

import (
	"time"
)

// Recipe is a named collection of instruction blocks.
type Recipe struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// RecipeBlock is one titled section of a recipe's instructions. Order is
// optional; readers fall back to the id when it is unset.
type RecipeBlock struct {
	ID        int       `json:"id"`
	RecipeID  int       `json:"recipe_id" validate:"gt=0"`
	Title     string    `json:"title" validate:"required"`
	Body      string    `json:"body" validate:"required"`
	Order     *int      `json:"order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SortOrder returns the effective ordering key for the block.
func (b RecipeBlock) SortOrder() int {
	if b.Order != nil {
		return *b.Order
	}
	return b.ID
}
