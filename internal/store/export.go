package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/didi/internal/fingerprint"
	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/query"
)

// ImportFailure is an exported entry that could not be imported.
type ImportFailure struct {
	Ref   string
	Title string
	Err   error
}

// ImportResult reports an import. Entries whose ref is already stored are
// skipped, not failed.
type ImportResult struct {
	Imported []model.Entry
	Skipped  []string
	Failed   []ImportFailure
}

// ExportAll returns every entry, hidden ones included, in creation order.
func (s *SQLiteStore) ExportAll(ctx context.Context) ([]model.Entry, error) {
	return query.Collect(s.entries(ctx))
}

// Import stores entries from an export, keeping their creation time, ref and
// hidden flag. A non-empty hash must match the entry fields. Each entry is
// written in its own transaction and gets a fresh id.
func (s *SQLiteStore) Import(ctx context.Context, entries []model.Entry) (ImportResult, error) {
	if err := ctx.Err(); err != nil {
		return ImportResult{}, err
	}

	var res ImportResult
	for _, in := range entries {
		e, err := s.prepareImport(in)
		if err != nil {
			res.Failed = append(res.Failed, ImportFailure{Ref: in.Ref, Title: in.Title, Err: err})
			continue
		}

		skipped := false
		err = s.inTx(ctx, func(tx *sql.Tx) error {
			var id int64
			err := tx.QueryRowContext(ctx, `SELECT id FROM entries WHERE ref = ?`, e.Ref).Scan(&id)
			if err == nil {
				skipped = true
				return nil
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			return insertEntry(ctx, tx, &e)
		})
		switch {
		case err != nil:
			res.Failed = append(res.Failed, ImportFailure{Ref: e.Ref, Title: e.Title, Err: ioErr("import entry", err)})
		case skipped:
			res.Skipped = append(res.Skipped, e.Ref)
		default:
			res.Imported = append(res.Imported, e)
		}
	}

	return res, nil
}

func (s *SQLiteStore) prepareImport(in model.Entry) (model.Entry, error) {
	e, err := model.NewEntry(in.Title, in.Content, in.Keywords)
	if err != nil {
		return e, err
	}
	if in.CreatedAt.IsZero() {
		return e, fmt.Errorf("%w: entry %q has no created_at", model.ErrValidation, e.Title)
	}
	e.CreatedAt = in.CreatedAt.UTC()
	e.Hidden = in.Hidden

	e.Ref = strings.TrimSpace(in.Ref)
	if e.Ref == "" {
		e.Ref = s.newRef(e.CreatedAt)
	} else if _, err := ulid.ParseStrict(e.Ref); err != nil {
		return e, fmt.Errorf("%w: entry %q ref %q: %v", model.ErrValidation, e.Title, e.Ref, err)
	}

	e.Hash = fingerprint.Of(e)
	if in.Hash != "" && !strings.EqualFold(in.Hash, e.Hash) {
		return e, fmt.Errorf("%w: entry %q hash mismatch", model.ErrValidation, e.Title)
	}

	return e, nil
}
