package repository

import (
	"context"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const saleLinesKey = "sale_lines"

func saleLineSchema() store.Schema[models.SaleLine] {
	return store.Schema[models.SaleLine]{
		Key:     saleLinesKey,
		Columns: []string{"id", "sale_id", "product_id", "name", "quantity", "unit_price", "line_total"},
		Encode: func(l models.SaleLine) storage.Row {
			return storage.Row{
				"id":         storage.FormatInt(l.ID),
				"sale_id":    storage.FormatInt(l.SaleID),
				"product_id": storage.FormatInt(l.ProductID),
				"name":       l.Name,
				"quantity":   storage.FormatInt(l.Quantity),
				"unit_price": storage.FormatFloat(l.UnitPrice),
				"line_total": storage.FormatFloat(l.LineTotal),
			}
		},
		Decode: func(row storage.Row) (models.SaleLine, bool) {
			l := models.SaleLine{
				ID:        row.Int("id"),
				SaleID:    row.Int("sale_id"),
				ProductID: row.Int("product_id"),
				Name:      row.String("name"),
				Quantity:  row.Int("quantity"),
				UnitPrice: row.Float("unit_price"),
				LineTotal: row.Float("line_total"),
			}
			return l, models.Valid(l)
		},
	}
}

// SaleLinePatch updates a subset of a sale line; nil pointers leave the
// current value untouched. Totals are snapshots, so patching quantity or
// price does not rederive LineTotal.
type SaleLinePatch struct {
	Name      *string
	Quantity  *int
	UnitPrice *float64
	LineTotal *float64
}

// SaleLines is the sale line repository.
type SaleLines struct {
	repo[models.SaleLine]
}

func newSaleLines(backend storage.Backend) *SaleLines {
	return &SaleLines{repo: repo[models.SaleLine]{
		col:    store.NewCollection(backend, saleLineSchema()),
		id:     func(l models.SaleLine) int { return l.ID },
		withID: func(l models.SaleLine, id int) models.SaleLine { l.ID = id; return l },
	}}
}

// ReadAll returns every line across all sales.
func (l *SaleLines) ReadAll(ctx context.Context) []models.SaleLine {
	return l.readAll(ctx)
}

// ReadAllBy returns the lines of one sale.
func (l *SaleLines) ReadAllBy(ctx context.Context, saleID int) []models.SaleLine {
	return l.filter(ctx, func(line models.SaleLine) bool {
		return line.SaleID == saleID
	})
}

// Append stores a new line and returns its minted id.
func (l *SaleLines) Append(ctx context.Context, line models.SaleLine) int {
	return l.append(ctx, line, false)
}

// Update applies the patch to the line with the given id.
func (l *SaleLines) Update(ctx context.Context, id int, patch SaleLinePatch) bool {
	return l.update(ctx, id, func(line models.SaleLine) models.SaleLine {
		assign(&line.Name, patch.Name)
		assign(&line.Quantity, patch.Quantity)
		assign(&line.UnitPrice, patch.UnitPrice)
		assign(&line.LineTotal, patch.LineTotal)
		return line
	})
}

// Delete removes a line.
func (l *SaleLines) Delete(ctx context.Context, id int) bool {
	return l.delete(ctx, id)
}

// Replace swaps out all lines of one sale for the given set, minting fresh
// ids above whatever survives in the collection. Used when a sale is edited
// as a whole.
func (l *SaleLines) Replace(ctx context.Context, saleID int, lines []models.SaleLine) {
	records := l.readAll(ctx)
	remaining := records[:0:0]
	for _, record := range records {
		if record.SaleID != saleID {
			remaining = append(remaining, record)
		}
	}

	nextID := maxID(remaining, l.id)
	replaced := make([]models.SaleLine, 0, len(lines))
	for _, line := range lines {
		nextID++
		line.ID = nextID
		line.SaleID = saleID
		replaced = append(replaced, line)
	}

	l.col.WriteAll(ctx, append(replaced, remaining...))
}

// deleteWhereSale drops all lines of a deleted sale.
func (l *SaleLines) deleteWhereSale(ctx context.Context, saleID int) {
	l.deleteWhere(ctx, func(line models.SaleLine) bool {
		return line.SaleID == saleID
	})
}
