// Package store provides the cache-authoritative collection layer between
// typed repositories and the blob storage backends. Reads never fail from the
// caller's point of view: storage trouble is logged and an empty collection
// returned, so the application keeps working on whatever survives.
package store

import (
	"context"
	"sync"

	applog "obrador/internal/log"
	"obrador/internal/storage"
)

// Schema describes how one record type maps onto its persisted collection.
type Schema[T any] struct {
	// Key addresses the collection inside the backend and names its sheet.
	Key string
	// Columns fixes field order for tabular encodings; optional fields
	// serialize as empty cells, never omitted.
	Columns []string
	// Encode flattens a record into its stored row form.
	Encode func(T) storage.Row
	// Decode rebuilds a record from a stored row, coercing missing fields to
	// defaults. Returning false drops the row as malformed.
	Decode func(storage.Row) (T, bool)
}

// Collection owns the in-memory copy of one record collection. The cache is
// authoritative: writes update it before the durable write is attempted, and
// reads after the first never touch the backend again.
type Collection[T any] struct {
	backend storage.Backend
	schema  Schema[T]

	mu     sync.Mutex
	cache  []T
	loaded bool
}

// NewCollection binds a schema to a backend.
func NewCollection[T any](backend storage.Backend, schema Schema[T]) *Collection[T] {
	return &Collection[T]{backend: backend, schema: schema}
}

// Key returns the collection's storage key.
func (c *Collection[T]) Key() string {
	return c.schema.Key
}

// ReadAll returns the current records. The first call loads from the backend;
// read failures are logged and yield an empty collection.
func (c *Collection[T]) ReadAll(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		c.cache = c.load(ctx)
		c.loaded = true
	}

	records := make([]T, len(c.cache))
	copy(records, c.cache)
	return records
}

func (c *Collection[T]) load(ctx context.Context) []T {
	rows, err := c.backend.ReadAll(ctx, c.schema.Key)
	if err != nil {
		applog.Error(ctx, "read collection failed", "collection", c.schema.Key, "error", err)
		return nil
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		record, ok := c.schema.Decode(row)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records
}

// WriteAll replaces the collection. The cache is updated synchronously; the
// durable write is best-effort and a failure is logged, leaving the cache
// ahead of storage until the next successful write.
func (c *Collection[T]) WriteAll(ctx context.Context, records []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make([]T, len(records))
	copy(c.cache, records)
	c.loaded = true

	rows := make([]storage.Row, len(records))
	for idx, record := range records {
		rows[idx] = c.schema.Encode(record)
	}
	if err := c.backend.WriteAll(ctx, c.schema.Key, c.schema.Columns, rows); err != nil {
		applog.Error(ctx, "persist collection failed", "collection", c.schema.Key, "error", err)
	}
}

// Dump returns the collection in its encoded tabular form, for exports.
func (c *Collection[T]) Dump(ctx context.Context) (columns []string, rows []storage.Row) {
	records := c.ReadAll(ctx)
	rows = make([]storage.Row, len(records))
	for idx, record := range records {
		rows[idx] = c.schema.Encode(record)
	}
	return c.schema.Columns, rows
}
