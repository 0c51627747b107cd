package query

import (
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/didi/internal/model"
)

func seqOf(entries ...model.Entry) iter.Seq2[model.Entry, error] {
	return func(yield func(model.Entry, error) bool) {
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func ids(entries []model.Entry) []int64 {
	var out []int64
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

var (
	rome   = model.Entry{ID: 1, Title: "Trip to Rome", Keywords: []string{"rome", "travel"}}
	work   = model.Entry{ID: 2, Title: "Standup notes", Keywords: []string{"work"}}
	hidden = model.Entry{ID: 3, Title: "Secret rome plans", Keywords: []string{"plans"}, Hidden: true}
)

func TestVisible(t *testing.T) {
	assert.True(t, Visible(false)(rome))
	assert.False(t, Visible(false)(hidden))
	assert.True(t, Visible(true)(hidden))
}

func TestMatchAny(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		entry model.Entry
		want  bool
	}{
		{"title substring", []string{"rom"}, rome, true},
		{"title case-insensitive", []string{"TRIP"}, rome, true},
		{"keyword exact", []string{"travel"}, rome, true},
		{"keyword case-insensitive", []string{"Travel"}, rome, true},
		{"keyword prefix", []string{"trav"}, rome, true},
		{"keyword substring without title hit", []string{"or"}, work, true},
		{"keyword prefix without title hit", []string{"wor"}, work, true},
		{"neither title nor keyword", []string{"paris"}, work, false},
		{"any term", []string{"nothing", "work"}, work, true},
		{"no terms", nil, rome, false},
		{"blank terms", []string{" ", ""}, rome, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAny(tt.terms)(tt.entry))
		})
	}
}

func TestFilter_SearchAndVisibility(t *testing.T) {
	seq := seqOf(rome, work, hidden)

	got, err := Collect(Filter(seq, And(Visible(false), MatchAny([]string{"rome"}))))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(got))

	got, err = Collect(Filter(seq, And(Visible(true), MatchAny([]string{"rome"}))))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(got))

	got, err = Collect(Filter(seq, Visible(true)))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(got))
}

func TestFilter_Restartable(t *testing.T) {
	filtered := Filter(seqOf(rome, work, hidden), Visible(false))
	first, err := Collect(filtered)
	require.NoError(t, err)
	second, err := Collect(filtered)
	require.NoError(t, err)
	assert.Equal(t, ids(first), ids(second))
}

func TestFilter_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	seq := func(yield func(model.Entry, error) bool) {
		if !yield(rome, nil) {
			return
		}
		yield(model.Entry{}, boom)
	}
	_, err := Collect(Filter(seq, Visible(true)))
	assert.ErrorIs(t, err, boom)
}

func TestFilter_EarlyBreak(t *testing.T) {
	n := 0
	for range Filter(seqOf(rome, work, hidden), Visible(true)) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
