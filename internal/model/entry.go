// Package model defines the diary entry type and the error kinds shared by
// every layer.
package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is a single diary record.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	Ref       string    `json:"ref" yaml:"ref"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"content"`
	Keywords  []string  `json:"keywords" yaml:"keywords"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Hash      string    `json:"hash" yaml:"hash"`
	Hidden    bool      `json:"hidden" yaml:"hidden"`
}

// NewEntry builds an unsaved entry. The title is trimmed and must not be
// empty; keywords are normalized; content is kept verbatim.
func NewEntry(title, content string, keywords []string) (Entry, error) {
	e := Entry{
		Title:    strings.TrimSpace(title),
		Content:  content,
		Keywords: NormalizeKeywords(keywords),
	}
	if err := e.Validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Validate reports whether the entry satisfies the record invariants that
// do not depend on the store.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	for _, k := range e.Keywords {
		if k == "" || k != strings.ToLower(k) || strings.ContainsAny(k, " \t\r\n") {
			return fmt.Errorf("%w: invalid keyword %q", ErrValidation, k)
		}
	}
	return nil
}

// KeywordContains reports whether term (already lowercase) is part of any
// of the entry's keywords.
func (e Entry) KeywordContains(term string) bool {
	for _, k := range e.Keywords {
		if strings.Contains(k, term) {
			return true
		}
	}
	return false
}

// NormalizeKeywords lowercases, trims, deduplicates and sorts keywords.
// Empty tokens are dropped. The result is never nil.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
