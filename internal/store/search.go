package store

import (
	"context"
	"iter"

	"github.com/rcliao/didi/internal/model"
	"github.com/rcliao/didi/internal/query"
)

// Search yields entries where any term is a substring of the title or of
// one of the keywords, ignoring case. Visibility follows List, and
// results keep creation order; there is no ranking.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) iter.Seq2[model.Entry, error] {
	return query.Filter(s.entries(ctx), query.And(
		query.Visible(p.IncludeHidden),
		query.MatchAny(p.Terms),
	))
}
