// Package store provides the diary storage interface and its SQLite
// implementation.
package store

import (
	"context"
	"iter"

	"github.com/rcliao/didi/internal/model"
)

// InitOptions controls store initialization.
type InitOptions struct {
	// Force re-applies the schema to an existing database instead of
	// failing with model.ErrAlreadyExists. Existing entries are kept.
	Force bool
}

// InsertParams holds the user supplied fields of a new entry.
type InsertParams struct {
	Title    string
	Content  string
	Keywords []string
}

// ListParams holds parameters for listing entries.
type ListParams struct {
	IncludeHidden bool
}

// SearchParams holds parameters for searching entries.
type SearchParams struct {
	Terms         []string
	IncludeHidden bool
}

// BatchFailure is a single id that a batch operation could not process.
type BatchFailure struct {
	ID  int64
	Err error
}

// BatchResult reports a per-id batch operation. Every requested id ends up
// in exactly one of the two lists.
type BatchResult struct {
	Succeeded []int64
	Failed    []BatchFailure
}

// OK reports whether every id succeeded.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}

// Store defines the diary storage interface.
type Store interface {
	// Insert validates and persists a new entry and returns it with its
	// generated id, timestamp and hash.
	Insert(ctx context.Context, p InsertParams) (*model.Entry, error)

	// List yields entries in creation order. Ranging over the result again
	// re-reads the store.
	List(ctx context.Context, p ListParams) iter.Seq2[model.Entry, error]

	// Search yields entries matching any of the terms, in creation order.
	Search(ctx context.Context, p SearchParams) iter.Seq2[model.Entry, error]

	// SetHidden sets the hidden flag of each id independently.
	SetHidden(ctx context.Context, ids []int64, hidden bool) (BatchResult, error)

	// FindByIDs returns the entries that exist and the ids that do not.
	FindByIDs(ctx context.Context, ids []int64) ([]model.Entry, []int64, error)

	// Close closes the store.
	Close() error
}
