package models

import (
	"time"
)

// Product is something the workshop produces in batches. YieldQuantity is the
// number of units one batch yields; the priced totals are derived from the
// product's ingredient uses and persisted here so list views can show them
// without recomputing.
type Product struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name" validate:"required"`
	YieldQuantity       int        `json:"yield_quantity" validate:"gt=0"`
	CreatedAt           time.Time  `json:"created_at"`
	Active              bool       `json:"active"`
	MarginPercent       *float64   `json:"margin_percent,omitempty"`
	TotalWithMargin     *float64   `json:"total_with_margin,omitempty"`
	UnitPriceWithMargin *float64   `json:"unit_price_with_margin,omitempty"`
}
