package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persistx/schemata/format/document"
	"github.com/persistx/schemata/i18n"
)

const bookJSON = `{
  "id": "b1",
  "title": "The Martian Chronicles",
  "published": "1950-05-01T00:00:00Z",
  "pages": 222,
  "author": {"id": "a1", "name": "Ray Bradbury"}
}`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { i18n.SetLanguage("en") })

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDescribe(t *testing.T) {
	out, _, err := execute(t, "describe", "book")
	require.NoError(t, err)
	assert.Contains(t, out, "Book {\n")
	assert.Contains(t, out, "/author: --->library.Author\n")
	assert.Contains(t, out, "/subtitle: string? (string)\n")

	out, _, err = execute(t, "describe")
	require.NoError(t, err)
	assert.Contains(t, out, "Author {\n")
	assert.Contains(t, out, "/books: -->>library.Book\n")

	_, _, err = execute(t, "describe", "shelf")
	assert.ErrorContains(t, err, `unknown model "shelf"`)
}

func TestDecode_JSON(t *testing.T) {
	path := writeFile(t, "book.json", bookJSON)

	out, _, err := execute(t, "decode", "book", path)
	require.NoError(t, err)

	got, err := document.ParseJSON([]byte(out))
	require.NoError(t, err)
	want, err := document.ParseJSON([]byte(bookJSON))
	require.NoError(t, err)
	assert.True(t, got.Root().Equal(want.Root()), "canonical output differs: %s", out)
}

func TestDecode_ReportsEveryIssue(t *testing.T) {
	path := writeFile(t, "book.json", `{"id": "b#1", "title": "t", "published": "1950-05-01T00:00:00Z", "pages": "many", "author": {"id": "a1", "name": null}}`)

	out, stderr, err := execute(t, "decode", "book", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 invalid value(s)")
	assert.Empty(t, out)
	assert.Equal(t, "/author/name: type mismatch: expected string, got null\n"+
		"/id: invalid value: no #s allowed\n"+
		"/pages: type mismatch: expected int, got \"many\"\n", stderr)
}

func TestDecode_Japanese(t *testing.T) {
	path := writeFile(t, "author.yaml", "id: a1\n")

	_, stderr, err := execute(t, "decode", "author", path, "--lang", "ja")
	require.Error(t, err)
	assert.Equal(t, "/name: キーがありません\n", stderr)
}

func TestDecode_Record(t *testing.T) {
	path := writeFile(t, "book.env", "id=b1\ntitle=The Martian Chronicles\npublished=1950-05-01T00:00:00Z\npages=222\nauthor.id=a1\nauthor.name=Ray Bradbury\n")

	out, _, err := execute(t, "decode", "book", path)
	require.NoError(t, err)
	assert.Equal(t, "author.id=\"a1\"\n"+
		"author.name=\"Ray Bradbury\"\n"+
		"id=\"b1\"\n"+
		"pages=\"222\"\n"+
		"published=\"1950-05-01T00:00:00Z\"\n"+
		"title=\"The Martian Chronicles\"\n", out)
}

func TestDecode_Dump(t *testing.T) {
	path := writeFile(t, "book.json", bookJSON)

	out, _, err := execute(t, "decode", "book", path, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "(library.Book)")
	assert.Contains(t, out, `Title: (string) (len=22) "The Martian Chronicles"`)
}

func TestDecode_UnknownExtension(t *testing.T) {
	path := writeFile(t, "book.txt", bookJSON)

	_, _, err := execute(t, "decode", "book", path)
	assert.ErrorContains(t, err, "pass --format")

	_, _, err = execute(t, "decode", "book", path, "--format", "json")
	assert.NoError(t, err)
}

func TestConvert(t *testing.T) {
	path := writeFile(t, "book.json", bookJSON)

	out, _, err := execute(t, "convert", "book", path, "--to", "yaml")
	require.NoError(t, err)
	back, err := document.ParseYAML([]byte(out))
	require.NoError(t, err)
	want, err := document.ParseJSON([]byte(bookJSON))
	require.NoError(t, err)
	assert.True(t, back.Root().Equal(want.Root()), "yaml output differs: %s", out)

	out, _, err = execute(t, "convert", "book", path, "--to", "record")
	require.NoError(t, err)
	assert.Contains(t, out, "author.name=\"Ray Bradbury\"\n")

	_, _, err = execute(t, "convert", "book", path)
	assert.ErrorContains(t, err, "explicit --to")
}

func TestResolve(t *testing.T) {
	out, _, err := execute(t, "resolve", "book", "author.name")
	require.NoError(t, err)
	assert.Equal(t, "Book.author\t/author: --->library.Author\n"+
		"Author.name\t/name: string (string)\n", out)

	_, _, err = execute(t, "resolve", "book", "author.books.title")
	assert.ErrorContains(t, err, "no property chain")

	_, _, err = execute(t, "resolve", "book", "author..name")
	assert.ErrorContains(t, err, "invalid key path")
}

func TestCheck(t *testing.T) {
	out, _, err := execute(t, "check")
	require.NoError(t, err)
	assert.Equal(t, "ok: author, book\n", out)
}

func TestSchema(t *testing.T) {
	out, _, err := execute(t, "schema", "book")
	require.NoError(t, err)
	assert.Contains(t, out, `"$ref": "#/$defs/Book"`)
	assert.Contains(t, out, `"$ref": "#/$defs/Author"`)
	assert.Contains(t, out, `"format": "date-time"`)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "schemata.yaml", "format: json\nlang: ja\n")
	path := writeFile(t, "author.data", `{"id": "a1"}`)

	_, stderr, err := execute(t, "decode", "author", path, "--config", cfg)
	require.Error(t, err)
	assert.Equal(t, "/name: キーがありません\n", stderr)

	_, _, err = execute(t, "check", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := writeFile(t, "schemata.yaml", "lang: fr\n")
	_, _, err = execute(t, "check", "--config", bad)
	assert.ErrorContains(t, err, `unsupported language "fr"`)
}

func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv("SCHEMATA_FORMAT", "json")
	path := writeFile(t, "book.data", bookJSON)

	_, _, err := execute(t, "decode", "book", path)
	assert.NoError(t, err)
}

func TestVerboseLogging(t *testing.T) {
	path := writeFile(t, "book.json", bookJSON)

	_, stderr, err := execute(t, "decode", "book", path, "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "[schemata] decoding "+path+" as book (json)")
}
