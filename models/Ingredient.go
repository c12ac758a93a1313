package models

import (
	"strings"
	"time"
)

// Unit is the measurement unit an ingredient is bought in.
type Unit string

const (
	UnitGrams       Unit = "grams"
	UnitMilliliters Unit = "milliliters"
	UnitLiters      Unit = "liters"
	UnitKilogram    Unit = "kilogram"
	UnitUnits       Unit = "units"
)

// ParseUnit normalizes stored or imported unit values. Unknown or empty
// values fall back to UnitUnits rather than failing.
func ParseUnit(value string) Unit {
	switch Unit(strings.ToLower(strings.TrimSpace(value))) {
	case UnitGrams:
		return UnitGrams
	case UnitMilliliters:
		return UnitMilliliters
	case UnitLiters:
		return UnitLiters
	case UnitKilogram:
		return UnitKilogram
	default:
		return UnitUnits
	}
}

// Ingredient is a catalog entry priced per package: Price buys Quantity of
// Unit. Per-unit cost is therefore Price / Quantity.
type Ingredient struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Quantity  float64   `json:"quantity" validate:"gt=0"`
	Unit      Unit      `json:"unit"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// UnitCost returns the price of a single Unit of the ingredient, or 0 when
// the package quantity is not positive.
func (i Ingredient) UnitCost() float64 {
	if i.Quantity <= 0 {
		return 0
	}
	return i.Price / i.Quantity
}
