package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"obrador/internal/bus"
	"obrador/internal/config"
	"obrador/internal/db"
	"obrador/internal/db/mock"
	applog "obrador/internal/log"
	"obrador/internal/repository"
	"obrador/internal/storage"
	"obrador/models"
)

var priceLinePattern = regexp.MustCompile(
	`^(.+?)\s+([\d.,]+)\s*(grams|milliliters|liters|kilogram|units|g|ml|l|kg|u)\s+\$?\s*([\d.,]+)$`,
)

func main() {
	kind := flag.String("kind", "products", "record kind for spreadsheet imports: products or ingredients")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: import [-kind products|ingredients] <file.xlsx|pricelist.pdf>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *kind); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path, kind string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applog.SetLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	ctx := context.Background()
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	registry := repository.New(backend, bus.New())
	if err := registry.Init(ctx); err != nil {
		return fmt.Errorf("warm storage: %w", err)
	}

	imported := 0
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		imported, err = importPriceList(ctx, registry, path)
	case ".xlsx":
		imported, err = importWorkbook(ctx, registry, path, kind)
	default:
		return fmt.Errorf("unsupported file type: %s", path)
	}
	if err != nil {
		return err
	}

	registry.RecomputeProductTotals(ctx)

	fmt.Fprintf(os.Stdout, "Imported %d records from %s\n", imported, filepath.Base(path))
	return nil
}

func importWorkbook(ctx context.Context, registry *repository.Registry, path, kind string) (int, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	cells, err := file.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(cells) < 2 {
		return 0, nil
	}

	header := cells[0]
	imported := 0
	for _, line := range cells[1:] {
		row := make(storage.Row, len(header))
		for idx, column := range header {
			if idx < len(line) {
				row[column] = line[idx]
			}
		}

		switch kind {
		case "ingredients":
			ingredient := models.Ingredient{
				Name:     row.String("name"),
				Quantity: row.Float("quantity"),
				Unit:     models.ParseUnit(row.String("unit")),
				Price:    row.Float("price"),
				Active:   row.Bool("active", true),
			}
			if !models.Valid(ingredient) {
				continue
			}
			registry.Ingredients.Append(ctx, ingredient)
		case "products":
			product := models.Product{
				Name:          row.String("name"),
				YieldQuantity: row.Int("yield_quantity"),
				Active:        row.Bool("active", true),
			}
			if !models.Valid(product) {
				continue
			}
			registry.Products.Append(ctx, product)
		default:
			return imported, fmt.Errorf("unknown record kind: %s", kind)
		}
		imported++
	}
	return imported, nil
}

// importPriceList pulls ingredient lines out of a supplier PDF price list.
// Only lines shaped like "<name> <package quantity> <unit> <price>" are
// taken; everything else on the page is ignored.
func importPriceList(ctx context.Context, registry *repository.Registry, path string) (int, error) {
	handle, reader, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer handle.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return 0, fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return 0, fmt.Errorf("read text: %w", err)
	}

	imported := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		ingredient, ok := parsePriceLine(line)
		if !ok {
			continue
		}
		registry.Ingredients.Append(ctx, ingredient)
		imported++
	}
	return imported, nil
}

func parsePriceLine(line string) (models.Ingredient, bool) {
	match := priceLinePattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return models.Ingredient{}, false
	}

	quantity := parseAmount(match[2])
	price := parseAmount(match[4])
	ingredient := models.Ingredient{
		Name:     strings.TrimSpace(match[1]),
		Quantity: quantity,
		Unit:     unitFromAlias(match[3]),
		Price:    price,
		Active:   true,
	}
	if !models.Valid(ingredient) {
		return models.Ingredient{}, false
	}
	return ingredient, true
}

// parseAmount accepts both 1.234,56 and 1,234.56 digit grouping.
func parseAmount(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	} else if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

func unitFromAlias(alias string) models.Unit {
	switch strings.ToLower(alias) {
	case "g", "grams":
		return models.UnitGrams
	case "ml", "milliliters":
		return models.UnitMilliliters
	case "l", "liters":
		return models.UnitLiters
	case "kg", "kilogram":
		return models.UnitKilogram
	default:
		return models.UnitUnits
	}
}

func openBackend(ctx context.Context, cfg config.Config) (storage.Backend, error) {
	if cfg.Storage.Backend == config.BackendDatabase {
		if cfg.Database.UseMock {
			database, err := mock.New(ctx)
			if err != nil {
				return nil, err
			}
			return storage.NewDatabase(database), nil
		}
		database, err := db.Configure(cfg.Database, cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return storage.NewDatabase(database), nil
	}
	return storage.NewWorkbook(cfg.Storage.DataDir), nil
}
