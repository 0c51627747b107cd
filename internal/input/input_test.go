package input

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readContent(t *testing.T, lines ...string) string {
	t.Helper()
	got, err := ReadContent(bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")))
	require.NoError(t, err)
	return got
}

func TestReadContent_KeepsSingleBlankLine(t *testing.T) {
	assert.Equal(t, "line1\n\nline2", readContent(t, "line1", "", "line2", "", ""))
}

func TestReadContent(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"single line", []string{"hello", "", ""}, "hello"},
		{"confirmed empty", []string{"", ""}, ""},
		{"stops at first double blank", []string{"a", "", "", "b", "", ""}, "a"},
		{"leading blank kept", []string{"", "a", "", ""}, "\na"},
		{"whitespace kept", []string{"  indented", "\ttab ", "", ""}, "  indented\n\ttab "},
		{"several blocks", []string{"a", "", "b", "", "c", "", ""}, "a\n\nb\n\nc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readContent(t, tt.lines...))
		})
	}
}

func TestReadContent_CRLF(t *testing.T) {
	got, err := ReadContent(bufio.NewReader(strings.NewReader("a\r\n\r\nb\r\n\r\n\r\n")))
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb", got)
}

func TestReadContent_EOF(t *testing.T) {
	tests := map[string]string{
		"a\nb":     "a\nb",
		"a\nb\n":   "a\nb",
		"a\nb\n\n": "a\nb",
		"":         "",
	}
	for in, want := range tests {
		got, err := ReadContent(bufio.NewReader(strings.NewReader(in)))
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestReadContent_LeavesRestUnread(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("body\n\n\nkeywords here\n"))
	got, err := ReadContent(r)
	require.NoError(t, err)
	assert.Equal(t, "body", got)

	rest, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "keywords here\n", rest)
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"Travel rome", []string{"travel", "rome"}},
		{"  a\t\tb   c ", []string{"a", "b", "c"}},
		{"Go go GO golang", []string{"go", "golang"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseKeywords(tt.line), "line %q", tt.line)
	}
}

func TestCollector_Collect(t *testing.T) {
	in := "  Trip to Rome \nday one\n\nday two\n\n\nTravel ROME travel\n"
	var out bytes.Buffer

	d, err := NewCollector(strings.NewReader(in), &out).Collect()
	require.NoError(t, err)
	assert.Equal(t, "Trip to Rome", d.Title)
	assert.Equal(t, "day one\n\nday two", d.Content)
	assert.Equal(t, []string{"travel", "rome"}, d.Keywords)

	assert.Contains(t, out.String(), "Title: ")
	assert.Contains(t, out.String(), "Keywords: ")
}

func TestCollector_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	d, err := NewCollector(strings.NewReader(""), &out).Collect()
	require.NoError(t, err)
	assert.Equal(t, Draft{Keywords: []string{}}, d)
}
