package store

import (
	"context"
	"database/sql"
	"os"
	"time"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string         `json:"db_path"`
	DBSizeBytes int64          `json:"db_size_bytes"`
	Total       int            `json:"total"`
	Visible     int            `json:"visible"`
	Hidden      int            `json:"hidden"`
	First       *time.Time     `json:"first,omitempty"`
	Last        *time.Time     `json:"last,omitempty"`
	Keywords    []KeywordCount `json:"keywords"`
}

// KeywordCount is the number of entries carrying a keyword.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// Stats returns database statistics. Hidden entries are counted too.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{DBPath: s.path}

	if info, err := os.Stat(s.path); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var first, last sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(hidden != 0), 0), MIN(created_at), MAX(created_at)
		FROM entries`).Scan(&st.Total, &st.Hidden, &first, &last)
	if err != nil {
		return nil, ioErr("stats", err)
	}
	st.Visible = st.Total - st.Hidden

	if st.First, err = parseNullTime(first); err != nil {
		return nil, ioErr("stats", err)
	}
	if st.Last, err = parseNullTime(last); err != nil {
		return nil, ioErr("stats", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT k.value, COUNT(*) AS cnt
		FROM entries, json_each(entries.keywords) AS k
		GROUP BY k.value ORDER BY cnt DESC, k.value`)
	if err != nil {
		return nil, ioErr("keyword stats", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kc KeywordCount
		if err := rows.Scan(&kc.Keyword, &kc.Count); err != nil {
			return nil, ioErr("keyword stats", err)
		}
		st.Keywords = append(st.Keywords, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, ioErr("keyword stats", err)
	}

	return st, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
