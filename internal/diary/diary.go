// Package diary exposes the command-level operations of the diary. Every
// operation opens the store, does its work and closes the store again.
package diary

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/didi/internal/fingerprint"
	"github.com/rcliao/didi/internal/input"
	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/query"
	"github.com/rcliao/didi/internal/store"
)

// Diary runs operations against the database at a fixed path.
type Diary struct {
	path string
	log  *zap.Logger
}

// New returns a Diary for the database at path. A nil logger discards logs.
func New(path string, log *zap.Logger) *Diary {
	if log == nil {
		log = zap.NewNop()
	}
	return &Diary{path: path, log: log.With(zap.String("db", path))}
}

// Path returns the database location.
func (d *Diary) Path() string {
	return d.path
}

// withStore opens the store for the duration of fn and always closes it.
func (d *Diary) withStore(ctx context.Context, fn func(s *store.SQLiteStore) error) (err error) {
	s, err := store.Open(ctx, d.path)
	if err != nil {
		return err
	}
	d.log.Debug("opened store")

	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close db: %w: %w", model.ErrIO, cerr)
		}
	}()

	return fn(s)
}

// Initialize creates the database. With force an existing database is
// brought up to the current schema instead of rejected.
func (d *Diary) Initialize(ctx context.Context, force bool) error {
	s, err := store.Initialize(ctx, d.path, store.InitOptions{Force: force})
	if err != nil {
		return err
	}
	d.log.Debug("initialized store", zap.Bool("force", force))
	return s.Close()
}

// AddEntry stores a collected draft.
func (d *Diary) AddEntry(ctx context.Context, draft input.Draft) (*model.Entry, error) {
	var e *model.Entry
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		e, err = s.Insert(ctx, store.InsertParams{
			Title:    draft.Title,
			Content:  draft.Content,
			Keywords: draft.Keywords,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	d.log.Debug("added entry", zap.Int64("id", e.ID), zap.String("hash", e.Hash))
	return e, nil
}

// ListOptions selects entries for a listing. WantIDs and WantHashes are
// carried through to the caller's rendering; entries are always complete.
type ListOptions struct {
	IncludeHidden bool
	WantIDs       bool
	WantHashes    bool
}

// Listing is the result of ListEntries.
type Listing struct {
	Entries    []model.Entry
	WantIDs    bool
	WantHashes bool
}

// ListEntries returns the entries in creation order.
func (d *Diary) ListEntries(ctx context.Context, opts ListOptions) (*Listing, error) {
	l := &Listing{WantIDs: opts.WantIDs, WantHashes: opts.WantHashes}
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		l.Entries, err = query.Collect(s.List(ctx, store.ListParams{IncludeHidden: opts.IncludeHidden}))
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

// SearchEntries returns the entries matching any of terms.
func (d *Diary) SearchEntries(ctx context.Context, terms []string, includeHidden bool) ([]model.Entry, error) {
	if len(query.NormalizeTerms(terms)) == 0 {
		return nil, fmt.Errorf("%w: at least one search term is required", model.ErrValidation)
	}

	var entries []model.Entry
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		entries, err = query.Collect(s.Search(ctx, store.SearchParams{Terms: terms, IncludeHidden: includeHidden}))
		return err
	})
	if err != nil {
		return nil, err
	}
	d.log.Debug("searched", zap.Strings("terms", terms), zap.Int("found", len(entries)))
	return entries, nil
}

// HideEntries hides each id; see setHidden.
func (d *Diary) HideEntries(ctx context.Context, ids []int64) (store.BatchResult, error) {
	return d.setHidden(ctx, ids, true)
}

// UnhideEntries unhides each id; see setHidden.
func (d *Diary) UnhideEntries(ctx context.Context, ids []int64) (store.BatchResult, error) {
	return d.setHidden(ctx, ids, false)
}

// setHidden processes ids independently. Ids that fail are reported in the
// result and logged; they never stop the others.
func (d *Diary) setHidden(ctx context.Context, ids []int64, hidden bool) (store.BatchResult, error) {
	if len(ids) == 0 {
		return store.BatchResult{}, fmt.Errorf("%w: no ids given", model.ErrValidation)
	}

	var res store.BatchResult
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		res, err = s.SetHidden(ctx, ids, hidden)
		return err
	})
	if err != nil {
		return res, err
	}

	for _, f := range res.Failed {
		d.log.Warn("set hidden failed", zap.Int64("id", f.ID), zap.Bool("hidden", hidden), zap.Error(f.Err))
	}
	d.log.Debug("set hidden", zap.Bool("hidden", hidden), zap.Int("changed", len(res.Succeeded)))
	return res, nil
}

// ShowEntries looks entries up by id. Unknown ids are returned separately.
func (d *Diary) ShowEntries(ctx context.Context, ids []int64) ([]model.Entry, []int64, error) {
	var found []model.Entry
	var missing []int64
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		found, missing, err = s.FindByIDs(ctx, ids)
		return err
	})
	return found, missing, err
}

// VerifyReport is the outcome of VerifyEntries.
type VerifyReport struct {
	Checked    int           `json:"checked"`
	Mismatched []model.Entry `json:"mismatched"`
}

// VerifyEntries recomputes the fingerprint of every entry, hidden ones
// included, and reports those whose stored hash no longer matches.
func (d *Diary) VerifyEntries(ctx context.Context) (*VerifyReport, error) {
	r := &VerifyReport{Mismatched: []model.Entry{}}
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		for e, err := range s.List(ctx, store.ListParams{IncludeHidden: true}) {
			if err != nil {
				return err
			}
			r.Checked++
			if !fingerprint.Verify(e) {
				d.log.Warn("hash mismatch", zap.Int64("id", e.ID))
				r.Mismatched = append(r.Mismatched, e)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Stats returns database statistics.
func (d *Diary) Stats(ctx context.Context) (*store.Stats, error) {
	var st *store.Stats
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		st, err = s.Stats(ctx)
		return err
	})
	return st, err
}

// Export returns every entry, hidden ones included.
func (d *Diary) Export(ctx context.Context) ([]model.Entry, error) {
	var entries []model.Entry
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		entries, err = s.ExportAll(ctx)
		return err
	})
	return entries, err
}

// Import stores exported entries, skipping the ones already present.
func (d *Diary) Import(ctx context.Context, entries []model.Entry) (store.ImportResult, error) {
	var res store.ImportResult
	err := d.withStore(ctx, func(s *store.SQLiteStore) error {
		var err error
		res, err = s.Import(ctx, entries)
		return err
	})
	if err != nil {
		return res, err
	}
	for _, f := range res.Failed {
		d.log.Warn("import failed", zap.String("ref", f.Ref), zap.String("title", f.Title), zap.Error(f.Err))
	}
	d.log.Debug("imported", zap.Int("imported", len(res.Imported)), zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
