package models

import (
	"strings"
	"time"
)

// SaleStatus tracks how much of a sale has been collected.
type SaleStatus string

const (
	SaleStatusPaid      SaleStatus = "paid"
	SaleStatusDeposited SaleStatus = "deposited"
	SaleStatusUnpaid    SaleStatus = "unpaid"
)

// ParseSaleStatus normalizes stored status values, including the legacy
// spellings older blobs carry for unpaid sales. Anything unrecognized reads
// as paid.
func ParseSaleStatus(value string) SaleStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(SaleStatusDeposited):
		return SaleStatusDeposited
	case string(SaleStatusUnpaid), "not paid", "notpaid":
		return SaleStatusUnpaid
	default:
		return SaleStatusPaid
	}
}

// Sale records one transaction. ClientName is a denormalized snapshot and may
// be empty for walk-in sales. Total includes shipping, which is not stored
// separately; see ShippingOver.
type Sale struct {
	ID         int        `json:"id"`
	ClientName string     `json:"client_name"`
	Date       time.Time  `json:"date"`
	Total      float64    `json:"total"`
	Status     SaleStatus `json:"status"`
}

// ShippingOver derives the shipping charge implied by the sale total over its
// lines, clamped to zero so rounding or edited totals never show negative
// shipping.
func (s Sale) ShippingOver(lines []SaleLine) float64 {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.LineTotal
	}
	if shipping := s.Total - subtotal; shipping > 0 {
		return shipping
	}
	return 0
}

// SaleLine is one product position on a sale. Name, UnitPrice and LineTotal
// are snapshots taken when the line was created; later product price changes
// must not rewrite sold history.
type SaleLine struct {
	ID        int     `json:"id"`
	SaleID    int     `json:"sale_id" validate:"gt=0"`
	ProductID int     `json:"product_id"`
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// NewSaleLine builds a line with its total snapshotted from quantity and
// unit price.
func NewSaleLine(saleID, productID int, name string, quantity int, unitPrice float64) SaleLine {
	return SaleLine{
		SaleID:    saleID,
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: float64(quantity) * unitPrice,
	}
}
