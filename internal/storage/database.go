package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Database persists each collection as a JSON blob in the key-value table,
// with an in-process cache populated once by Init. After the warm-up the
// cache is authoritative for reads; durable writes are attempted after the
// cache is already updated.
type Database struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string][]Row
	warm  bool
}

// NewDatabase returns a database backend over an opened handle. The
// collection blob table must already be migrated.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db, cache: make(map[string][]Row)}
}

func (d *Database) Init(ctx context.Context) error {
	var blobs []CollectionBlob
	if err := d.db.WithContext(ctx).Find(&blobs).Error; err != nil {
		return fmt.Errorf("load collection blobs: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for _, blob := range blobs {
		var rows []Row
		if err := json.Unmarshal(blob.Data, &rows); err != nil {
			// A corrupt blob loses that collection, not the whole store.
			continue
		}
		d.cache[blob.Key] = rows
	}
	d.warm = true
	return nil
}

func (d *Database) ReadAll(ctx context.Context, key string) ([]Row, error) {
	d.mu.RLock()
	if d.warm {
		rows := cloneRows(d.cache[key])
		d.mu.RUnlock()
		return rows, nil
	}
	d.mu.RUnlock()

	var blob CollectionBlob
	err := d.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", key, err)
	}

	var rows []Row
	if err := json.Unmarshal(blob.Data, &rows); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", key, err)
	}
	return rows, nil
}

func (d *Database) WriteAll(ctx context.Context, key string, columns []string, rows []Row) error {
	d.mu.Lock()
	d.cache[key] = cloneRows(rows)
	d.mu.Unlock()

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	blob := CollectionBlob{Key: key, Data: data}
	err = d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("save collection %s: %w", key, err)
	}
	return nil
}

func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	cloned := make([]Row, len(rows))
	for idx, row := range rows {
		copied := make(Row, len(row))
		for key, value := range row {
			copied[key] = value
		}
		cloned[idx] = copied
	}
	return cloned
}
