// Package query holds the predicates that decide which entries a listing or
// search returns.
package query

import (
	"iter"
	"strings"

	"github.com/rcliao/didi/internal/model"
)

// Predicate selects entries.
type Predicate func(model.Entry) bool

// And matches entries that satisfy every predicate.
func And(preds ...Predicate) Predicate {
	return func(e model.Entry) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Visible is the visibility rule shared by list and search: hidden entries
// pass only when includeHidden is set.
func Visible(includeHidden bool) Predicate {
	return func(e model.Entry) bool {
		return includeHidden || !e.Hidden
	}
}

// NormalizeTerms lowercases and trims search terms, dropping empty ones.
func NormalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// MatchAny matches an entry when any term is a case-insensitive substring
// of its title or of one of its keywords. No terms match nothing.
func MatchAny(terms []string) Predicate {
	terms = NormalizeTerms(terms)
	return func(e model.Entry) bool {
		title := strings.ToLower(e.Title)
		for _, t := range terms {
			if strings.Contains(title, t) || e.KeywordContains(t) {
				return true
			}
		}
		return false
	}
}

// Filter yields the entries of seq that satisfy p, in order. Errors from
// seq are passed through.
func Filter(seq iter.Seq2[model.Entry, error], p Predicate) iter.Seq2[model.Entry, error] {
	return func(yield func(model.Entry, error) bool) {
		for e, err := range seq {
			if err != nil {
				yield(model.Entry{}, err)
				return
			}
			if !p(e) {
				continue
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[model.Entry, error]) ([]model.Entry, error) {
	var entries []model.Entry
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
