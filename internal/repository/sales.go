package repository

import (
	"context"
	"time"

	"obrador/internal/storage"
	"obrador/internal/store"
	"obrador/models"
)

const salesKey = "sales"

func saleSchema() store.Schema[models.Sale] {
	return store.Schema[models.Sale]{
		Key:     salesKey,
		Columns: []string{"id", "client_name", "date", "total", "status"},
		Encode: func(s models.Sale) storage.Row {
			return storage.Row{
				"id":          storage.FormatInt(s.ID),
				"client_name": s.ClientName,
				"date":        storage.FormatTime(s.Date),
				"total":       storage.FormatFloat(s.Total),
				"status":      string(s.Status),
			}
		},
		Decode: func(row storage.Row) (models.Sale, bool) {
			s := models.Sale{
				ID:         row.Int("id"),
				ClientName: row.String("client_name"),
				Date:       row.Time("date"),
				Total:      row.Float("total"),
				Status:     models.ParseSaleStatus(row.String("status")),
			}
			return s, models.Valid(s)
		},
	}
}

// SalePatch updates a subset of sale fields; nil pointers leave the current
// value untouched.
type SalePatch struct {
	ClientName *string
	Date       *time.Time
	Total      *float64
	Status     *models.SaleStatus
}

// Sales is the sale repository.
type Sales struct {
	repo[models.Sale]
	afterDelete func(ctx context.Context, saleID int)
}

func newSales(backend storage.Backend) *Sales {
	return &Sales{repo: repo[models.Sale]{
		col:    store.NewCollection(backend, saleSchema()),
		id:     func(s models.Sale) int { return s.ID },
		withID: func(s models.Sale, id int) models.Sale { s.ID = id; return s },
	}}
}

// ReadAll returns every sale, newest first.
func (s *Sales) ReadAll(ctx context.Context) []models.Sale {
	return s.readAll(ctx)
}

// Append stores a sale and returns its id. Callers may supply a provisional
// positive id minted before persistence; if a sale with that id already
// exists the call becomes an update that moves the sale to the front instead
// of inserting a duplicate. Without a usable id one is minted normally.
func (s *Sales) Append(ctx context.Context, sale models.Sale) int {
	if sale.Date.IsZero() {
		sale.Date = time.Now().UTC()
	}
	if sale.Status == "" {
		sale.Status = models.SaleStatusPaid
	}

	if sale.ID > 0 {
		sales := s.readAll(ctx)
		for idx, existing := range sales {
			if existing.ID != sale.ID {
				continue
			}
			rest := append(sales[:idx:idx], sales[idx+1:]...)
			s.col.WriteAll(ctx, append([]models.Sale{sale}, rest...))
			return sale.ID
		}
		sales = append([]models.Sale{sale}, sales...)
		s.col.WriteAll(ctx, sales)
		return sale.ID
	}

	return s.append(ctx, sale, false)
}

// Update applies the patch to the sale with the given id.
func (s *Sales) Update(ctx context.Context, id int, patch SalePatch) bool {
	return s.update(ctx, id, func(sale models.Sale) models.Sale {
		assign(&sale.ClientName, patch.ClientName)
		assign(&sale.Date, patch.Date)
		assign(&sale.Total, patch.Total)
		assign(&sale.Status, patch.Status)
		return sale
	})
}

// Delete removes a sale. On success the registry cascade removes its lines
// before Delete returns.
func (s *Sales) Delete(ctx context.Context, id int) bool {
	ok := s.delete(ctx, id)
	if ok && s.afterDelete != nil {
		s.afterDelete(ctx, id)
	}
	return ok
}
