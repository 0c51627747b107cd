package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/rcliao/didi/internal/fingerprint"
	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/query"
	"github.com/rcliao/didi/internal/store/migrations"
)

// timeLayout is fixed width so that created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// busyTimeout is how long a writer waits for another process's write lock
// before failing with SQLITE_BUSY.
const busyTimeout = 5 * time.Second

const selectEntries = `SELECT id, ref, title, content, keywords, created_at, hash, hidden FROM entries`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	path    string
	entropy *rand.Rand
	now     func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// migrationsFS holds the schema migrations applied by Initialize.
var migrationsFS fs.FS = migrations.FS

// Initialize creates a new diary database at path. It fails with
// model.ErrAlreadyExists when a file is already there, unless opts.Force
// is set.
func Initialize(ctx context.Context, path string, opts InitOptions) (*SQLiteStore, error) {
	_, err := os.Stat(path)
	existed := err == nil
	switch {
	case existed && !opts.Force:
		return nil, fmt.Errorf("database %s: %w", path, model.ErrAlreadyExists)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, ioErr("stat db", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, ioErr("create db dir", err)
	}

	s, err := openDB(ctx, path)
	if err != nil {
		if !existed {
			removeDB(path)
		}
		return nil, err
	}

	if err := s.migrate(ctx); err != nil {
		s.db.Close()
		if !existed {
			removeDB(path)
		}
		return nil, ioErr("migrate", err)
	}

	return s, nil
}

// removeDB deletes a database file left behind by a failed Initialize,
// together with its WAL side files.
func removeDB(path string) {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		_ = os.Remove(p)
	}
}

// Open opens an existing diary database.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no database at %s, use `didi create`", model.ErrIO, path)
		}
		return nil, ioErr("stat db", err)
	}

	s, err := openDB(ctx, path)
	if err != nil {
		return nil, err
	}

	var n int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'entries'`).Scan(&n)
	if err != nil {
		s.db.Close()
		return nil, ioErr("check schema", err)
	}
	if n == 0 {
		s.db.Close()
		return nil, fmt.Errorf("%w: %s is not a diary database, use `didi create --force`", model.ErrIO, path)
	}

	return s, nil
}

func openDB(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(wal)&_txlock=immediate",
		path, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ioErr("open db", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ioErr("open db", err)
	}

	return &SQLiteStore{
		db:      db,
		path:    path,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	p, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrationsFS)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// Path returns the database location the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) newRef(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// nextCreatedAt returns the current time, nudged forward when needed so
// that creation times stay strictly increasing.
func (s *SQLiteStore) nextCreatedAt(ctx context.Context, tx querier) (time.Time, error) {
	now := s.now().UTC()

	var last sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT MAX(created_at) FROM entries`).Scan(&last); err != nil {
		return time.Time{}, err
	}
	if !last.Valid {
		return now, nil
	}
	prev, err := time.Parse(timeLayout, last.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", last.String, err)
	}
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, p InsertParams) (*model.Entry, error) {
	e, err := model.NewEntry(p.Title, p.Content, p.Keywords)
	if err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		createdAt, err := s.nextCreatedAt(ctx, tx)
		if err != nil {
			return err
		}
		e.CreatedAt = createdAt
		e.Ref = s.newRef(createdAt)
		e.Hash = fingerprint.Of(e)
		return insertEntry(ctx, tx, &e)
	})
	if err != nil {
		return nil, ioErr("insert entry", err)
	}

	return &e, nil
}

// insertEntry writes a fully materialized entry and sets its id.
func insertEntry(ctx context.Context, tx querier, e *model.Entry) error {
	keywords, err := json.Marshal(e.Keywords)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO entries (ref, title, content, keywords, created_at, hash, hidden)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Ref, e.Title, e.Content, string(keywords),
		e.CreatedAt.UTC().Format(timeLayout), e.Hash, e.Hidden)
	if err != nil {
		return err
	}

	e.ID, err = res.LastInsertId()
	return err
}

// entries yields every stored entry ordered by creation time.
func (s *SQLiteStore) entries(ctx context.Context) iter.Seq2[model.Entry, error] {
	return func(yield func(model.Entry, error) bool) {
		rows, err := s.db.QueryContext(ctx, selectEntries+` ORDER BY created_at, id`)
		if err != nil {
			yield(model.Entry{}, ioErr("list entries", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			e, err := scanEntry(rows)
			if err != nil {
				yield(model.Entry{}, ioErr("scan entry", err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.Entry{}, ioErr("list entries", err))
		}
	}
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) iter.Seq2[model.Entry, error] {
	return query.Filter(s.entries(ctx), query.Visible(p.IncludeHidden))
}

func (s *SQLiteStore) SetHidden(ctx context.Context, ids []int64, hidden bool) (BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return BatchResult{}, err
	}

	var res BatchResult
	for _, id := range uniqueIDs(ids) {
		err := s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := findByID(ctx, tx, id); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `UPDATE entries SET hidden = ? WHERE id = ?`, hidden, id)
			return err
		})
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				err = ioErr(fmt.Sprintf("update entry %d", id), err)
			}
			res.Failed = append(res.Failed, BatchFailure{ID: id, Err: err})
			continue
		}
		res.Succeeded = append(res.Succeeded, id)
	}

	return res, nil
}

func (s *SQLiteStore) FindByIDs(ctx context.Context, ids []int64) ([]model.Entry, []int64, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		selectEntries+` WHERE id IN (`+placeholders+`) ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, nil, ioErr("find entries", err)
	}
	defer rows.Close()

	found := map[int64]bool{}
	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, ioErr("scan entry", err)
		}
		found[e.ID] = true
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, ioErr("find entries", err)
	}

	var missing []int64
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	return entries, missing, nil
}

func findByID(ctx context.Context, q querier, id int64) (model.Entry, error) {
	e, err := scanEntry(q.QueryRowContext(ctx, selectEntries+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("entry %d: %w", id, model.ErrNotFound)
	}
	return e, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var keywords, createdAt string
	var hidden int

	err := row.Scan(&e.ID, &e.Ref, &e.Title, &e.Content, &keywords, &createdAt, &e.Hash, &hidden)
	if err != nil {
		return e, err
	}

	if err := json.Unmarshal([]byte(keywords), &e.Keywords); err != nil {
		return e, fmt.Errorf("entry %d keywords: %w", e.ID, err)
	}
	if e.Keywords == nil {
		e.Keywords = []string{}
	}
	e.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return e, fmt.Errorf("entry %d created_at: %w", e.ID, err)
	}
	e.Hidden = hidden != 0

	return e, nil
}

// uniqueIDs returns ids sorted ascending without duplicates.
func uniqueIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func ioErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, model.ErrIO, err)
}
