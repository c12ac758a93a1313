package storage

import (
	"context"
	"time"
)

// Backend persists whole record collections as encoded blobs, one blob per
// collection key. Implementations differ in encoding and medium only; callers
// must not be able to tell which one is active.
type Backend interface {
	// Init performs any cache warm-up the medium needs before first use.
	// Backends with synchronous storage return nil without work.
	Init(ctx context.Context) error
	// ReadAll returns every row stored under key. A missing collection is an
	// empty result, not an error.
	ReadAll(ctx context.Context, key string) ([]Row, error)
	// WriteAll replaces the collection under key with the given rows. Columns
	// fixes the field order for tabular encodings.
	WriteAll(ctx context.Context, key string, columns []string, rows []Row) error
}

// CollectionBlob is the key-value table backing the database backend.
type CollectionBlob struct {
	Key       string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}
