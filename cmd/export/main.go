package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"

	"obrador/internal/bus"
	"obrador/internal/config"
	"obrador/internal/db"
	"obrador/internal/db/mock"
	"obrador/internal/format"
	applog "obrador/internal/log"
	"obrador/internal/repository"
	"obrador/internal/storage"
)

func main() {
	outPath := "obrador-export.xlsx"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := run(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}
}

func run(outPath string) error {
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

	if err := writeWorkbook(ctx, registry, outPath); err != nil {
		return err
	}

	revenue := 0.0
	sales := registry.Sales.ReadAll(ctx)
	for _, sale := range sales {
		revenue += sale.Total
	}
	fmt.Fprintf(os.Stdout, "Exported %s on %s: %d sales worth %s\n",
		outPath, format.DateShort(time.Now()), len(sales), format.Currency(revenue))
	return nil
}

func writeWorkbook(ctx context.Context, registry *repository.Registry, outPath string) error {
	file := excelize.NewFile()
	defer file.Close()

	for idx, dump := range registry.Dump(ctx) {
		if idx == 0 {
			if err := file.SetSheetName("Sheet1", dump.Key); err != nil {
				return fmt.Errorf("name sheet %s: %w", dump.Key, err)
			}
		} else if _, err := file.NewSheet(dump.Key); err != nil {
			return fmt.Errorf("add sheet %s: %w", dump.Key, err)
		}

		header := make([]any, len(dump.Columns))
		for col, column := range dump.Columns {
			header[col] = column
		}
		if err := file.SetSheetRow(dump.Key, "A1", &header); err != nil {
			return fmt.Errorf("write header %s: %w", dump.Key, err)
		}

		for rowIdx, row := range dump.Rows {
			cells := make([]any, len(dump.Columns))
			for col, column := range dump.Columns {
				cells[col] = row[column]
			}
			anchor, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("address row %d of %s: %w", rowIdx+2, dump.Key, err)
			}
			if err := file.SetSheetRow(dump.Key, anchor, &cells); err != nil {
				return fmt.Errorf("write row %d of %s: %w", rowIdx+2, dump.Key, err)
			}
		}
	}

	if err := file.SaveAs(outPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
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
