package repository

import (
	"context"

	"obrador/internal/storage"
)

// SheetDump is one collection in its encoded tabular form, ready to become a
// spreadsheet sheet.
type SheetDump struct {
	Key     string
	Columns []string
	Rows    []storage.Row
}

// Dump materializes every collection for export, in a stable order.
func (r *Registry) Dump(ctx context.Context) []SheetDump {
	dumps := make([]SheetDump, 0, 8)
	for _, dump := range []func(context.Context) (string, []string, []storage.Row){
		r.Products.dump,
		r.Ingredients.dump,
		r.IngredientUses.dump,
		r.Clients.dump,
		r.Sales.dump,
		r.SaleLines.dump,
		r.Recipes.dump,
		r.RecipeBlocks.dump,
	} {
		key, columns, rows := dump(ctx)
		dumps = append(dumps, SheetDump{Key: key, Columns: columns, Rows: rows})
	}
	return dumps
}
