// Package repository exposes typed CRUD over the encoded collection store,
// one repository per record kind, plus the cross-repository cascade and
// recompute rules wired by the Registry. Ids are minted here: every append
// takes the collection's running maximum plus one, so ids are monotonic per
// collection and never reused.
package repository

import (
	"context"

	"obrador/internal/storage"
	"obrador/internal/store"
)

// repo is the shared CRUD core. Each entity repository embeds one and adds
// its typed surface and hooks.
type repo[T any] struct {
	col    *store.Collection[T]
	id     func(T) int
	withID func(T, int) T
}

func (r *repo[T]) readAll(ctx context.Context) []T {
	return r.col.ReadAll(ctx)
}

func (r *repo[T]) filter(ctx context.Context, keep func(T) bool) []T {
	var matched []T
	for _, record := range r.col.ReadAll(ctx) {
		if keep(record) {
			matched = append(matched, record)
		}
	}
	return matched
}

func maxID[T any](records []T, id func(T) int) int {
	max := 0
	for _, record := range records {
		if value := id(record); value > max {
			max = value
		}
	}
	return max
}

// append mints the next id and inserts the record. New records go to the
// front so they list first; atEnd preserves the one collection that grows at
// the tail instead.
func (r *repo[T]) append(ctx context.Context, record T, atEnd bool) int {
	records := r.col.ReadAll(ctx)
	id := maxID(records, r.id) + 1
	record = r.withID(record, id)

	if atEnd {
		records = append(records, record)
	} else {
		records = append([]T{record}, records...)
	}
	r.col.WriteAll(ctx, records)
	return id
}

// update merges changes over the record with the given id. A missing id is a
// no-op returning false.
func (r *repo[T]) update(ctx context.Context, id int, merge func(T) T) bool {
	records := r.col.ReadAll(ctx)
	for idx, record := range records {
		if r.id(record) != id {
			continue
		}
		records[idx] = merge(record)
		r.col.WriteAll(ctx, records)
		return true
	}
	return false
}

// delete removes the record with the given id, reporting false on a miss.
func (r *repo[T]) delete(ctx context.Context, id int) bool {
	records := r.col.ReadAll(ctx)
	remaining := records[:0:0]
	for _, record := range records {
		if r.id(record) != id {
			remaining = append(remaining, record)
		}
	}
	if len(remaining) == len(records) {
		return false
	}
	r.col.WriteAll(ctx, remaining)
	return true
}

// deleteWhere removes every matching record, for cascades. Nothing is written
// when no record matches.
func (r *repo[T]) deleteWhere(ctx context.Context, match func(T) bool) {
	records := r.col.ReadAll(ctx)
	remaining := records[:0:0]
	for _, record := range records {
		if !match(record) {
			remaining = append(remaining, record)
		}
	}
	if len(remaining) == len(records) {
		return
	}
	r.col.WriteAll(ctx, remaining)
}

func (r *repo[T]) dump(ctx context.Context) (string, []string, []storage.Row) {
	columns, rows := r.col.Dump(ctx)
	return r.col.Key(), columns, rows
}
