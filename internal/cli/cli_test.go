package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/didi/internal/model"
)

type result struct {
	out, err string
	runErr   error
}

func run(t *testing.T, db, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("DIDI_LOG_LEVEL", "warn")

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", db}, args...))

	err := root.Execute()
	return result{out: out.String(), err: errOut.String(), runErr: err}
}

func newDB(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "diary.sqlite")
	r := run(t, db, "", "create")
	require.NoError(t, r.runErr)
	require.Contains(t, r.out, "Created database at")
	return db
}

func addEntry(t *testing.T, db, title, content, keywords string) {
	t.Helper()
	r := run(t, db, content, "add", "--title", title, "--keywords", keywords)
	require.NoError(t, r.runErr, r.err)
}

func TestCreate_Twice(t *testing.T) {
	db := newDB(t)

	r := run(t, db, "", "create")
	assert.ErrorIs(t, r.runErr, model.ErrAlreadyExists)

	r = run(t, db, "", "create", "--force")
	assert.NoError(t, r.runErr)
}

func TestAdd_Interactive(t *testing.T) {
	db := newDB(t)

	r := run(t, db, "Trip to Rome\nline1\n\nline2\n\n\nTravel rome\n", "add")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Welcome ")
	assert.Contains(t, r.out, "Title: ")
	assert.Contains(t, r.out, "Added Trip to Rome [1]!")

	r = run(t, db, "", "list", "-f", "json")
	require.NoError(t, r.runErr)
	var entries []model.Entry
	require.NoError(t, json.Unmarshal([]byte(r.out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "line1\n\nline2", entries[0].Content)
	assert.Equal(t, []string{"rome", "travel"}, entries[0].Keywords)
}

func TestAdd_EmptyTitle(t *testing.T) {
	db := newDB(t)
	r := run(t, db, "\n\n\n\n", "add")
	assert.ErrorIs(t, r.runErr, model.ErrValidation)
}

func TestAdd_MissingDatabase(t *testing.T) {
	r := run(t, filepath.Join(t.TempDir(), "none.sqlite"), "", "add", "--title", "x")
	assert.ErrorIs(t, r.runErr, model.ErrIO)
}

func TestListSearchHideScenario(t *testing.T) {
	db := newDB(t)
	addEntry(t, db, "Trip to Rome", "colosseum\n\n", "travel rome")
	addEntry(t, db, "Groceries", "milk\n\n", "errands")

	r := run(t, db, "", "list", "--id", "--keywords")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "[1]")
	assert.Contains(t, r.out, "Keywords: rome, travel")
	assert.Contains(t, r.out, "Found 2 entries.")

	r = run(t, db, "", "search", "rome")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Trip to Rome")
	assert.NotContains(t, r.out, "Groceries")
	assert.Contains(t, r.out, "Found 1 entry.")

	r = run(t, db, "", "hide", "1")
	require.NoError(t, r.runErr)
	assert.Equal(t, "Changed 1 entry.\n", r.out)

	r = run(t, db, "", "search", "rome")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Found 0 entries.")

	r = run(t, db, "", "search", "rome", "--hidden")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Trip to Rome")

	r = run(t, db, "", "list", "--nocontent", "--nodate")
	require.NoError(t, r.runErr)
	assert.NotContains(t, r.out, "Trip to Rome")
	assert.NotContains(t, r.out, "milk")

	r = run(t, db, "", "unhide", "1")
	require.NoError(t, r.runErr)

	r = run(t, db, "", "list")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Trip to Rome")
}

func TestHide_PartialFailure(t *testing.T) {
	db := newDB(t)
	addEntry(t, db, "a", "", "")

	r := run(t, db, "", "hide", "999", "1", "1")
	assert.ErrorIs(t, r.runErr, errReported)
	assert.Contains(t, r.err, "error: NotFound: entry 999: not found")
	assert.Equal(t, "Changed 1 entry.\n", r.out)
}

func TestHide_InvalidID(t *testing.T) {
	db := newDB(t)
	for _, arg := range []string{"abc", "0", "-3"} {
		r := run(t, db, "", "hide", "--", arg)
		assert.ErrorIs(t, r.runErr, model.ErrValidation, arg)
	}
}

func TestShow(t *testing.T) {
	db := newDB(t)
	addEntry(t, db, "first", "body\n\n", "")

	r := run(t, db, "", "show", "1", "--hash")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "first")
	assert.Regexp(t, `\[[0-9a-f]{64}\]`, r.out)

	r = run(t, db, "", "show", "1", "5")
	assert.ErrorIs(t, r.runErr, errReported)
	assert.Contains(t, r.err, "entry 5: not found")
}

func TestVerifyAndStats(t *testing.T) {
	db := newDB(t)
	addEntry(t, db, "first", "body\n\n", "k")

	r := run(t, db, "", "verify")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Checked 1 entries, 0 mismatched.")

	r = run(t, db, "", "stats", "-f", "json")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, `"total": 1`)

	r = run(t, db, "", "stats")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Entries")
}

func TestExportImport_YAML(t *testing.T) {
	src := newDB(t)
	addEntry(t, src, "first", "line1\n\nline2\n\n", "a b")
	addEntry(t, src, "second", "", "")
	require.NoError(t, run(t, src, "", "hide", "2").runErr)

	r := run(t, src, "", "export", "-f", "yaml")
	require.NoError(t, r.runErr)
	file := filepath.Join(t.TempDir(), "backup.yaml")
	require.NoError(t, os.WriteFile(file, []byte(r.out), 0o644))

	dst := newDB(t)
	r = run(t, dst, "", "import", file)
	require.NoError(t, r.runErr, r.err)
	assert.Equal(t, "Imported 2, skipped 0, failed 0.\n", r.out)

	r = run(t, dst, "", "import", file)
	require.NoError(t, r.runErr)
	assert.Equal(t, "Imported 0, skipped 2, failed 0.\n", r.out)

	r = run(t, dst, "", "list", "--hidden", "-f", "json")
	require.NoError(t, r.runErr)
	var entries []model.Entry
	require.NoError(t, json.Unmarshal([]byte(r.out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "line1\n\nline2", entries[0].Content)
	assert.True(t, entries[1].Hidden)

	require.NoError(t, run(t, dst, "", "verify").runErr)
}

func TestImport_JSONFromStdin(t *testing.T) {
	db := newDB(t)
	r := run(t, db, `[{"title":"from stdin","content":"x","keywords":["K"],"created_at":"2023-01-02T03:04:05Z"}]`, "import")
	require.NoError(t, r.runErr, r.err)
	assert.Contains(t, r.out, "Imported 1")

	r = run(t, db, "not json", "import")
	assert.ErrorIs(t, r.runErr, model.ErrValidation)
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"3", "1", "3"})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 3}, ids)

	_, err = parseIDs([]string{"1.5"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestPrintErr(t *testing.T) {
	var buf bytes.Buffer
	printErr(&buf, model.ErrNotFound)
	assert.Equal(t, "error: NotFound: not found\n", buf.String())
}

func TestUnknownFormat(t *testing.T) {
	db := newDB(t)
	for _, args := range [][]string{
		{"list", "-f", "xml"},
		{"search", "x", "-f", "xml"},
		{"verify", "-f", "xml"},
		{"stats", "-f", "xml"},
		{"export", "-f", "text"},
	} {
		r := run(t, db, "", args...)
		assert.ErrorIs(t, r.runErr, model.ErrValidation, args)
		assert.Empty(t, r.out, args)
	}
}

func TestVerify_JSONEmptyMismatches(t *testing.T) {
	db := newDB(t)
	addEntry(t, db, "first", "", "")

	r := run(t, db, "", "verify", "-f", "json")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, `"mismatched": []`)
}

func TestSearch_KeywordSubstring(t *testing.T) {
	db := newDB(t)
	addEntry(t, db, "Pasta recipe", "", "food italy")
	addEntry(t, db, "Standup", "", "work")

	r := run(t, db, "", "search", "ital")
	require.NoError(t, r.runErr)
	assert.Contains(t, r.out, "Pasta recipe")
	assert.NotContains(t, r.out, "Standup")
}
