package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blogcanvas/internal/domain/layout"
)

const validCard = `{
	"id": "card-1",
	"type": "recent_posts",
	"size": "wide",
	"position": {"x": 0, "y": 0, "z": 1},
	"config": {"limit": 20, "showExcerpt": true, "showDate": false},
	"visible": true,
	"createdAt": "2024-01-01T00:00:00Z",
	"updatedAt": "2024-01-01T00:00:00Z"
}`

func init() {
	color.NoColor = true
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "dashctl.db"))
	t.Setenv("MIGRATIONS_PATH", "../../../migrations")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateCard(t *testing.T) {
	out, err := run(t, "", "validate", "card", writeFile(t, "card.json", validCard))
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "Recent posts card")

	bad := strings.Replace(validCard, `"limit": 20`, `"limit": 21`, 1)
	out, err = run(t, "", "validate", "card", writeFile(t, "bad.json", bad))
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, out, "INVALID")
	assert.Contains(t, out, "config.limit [out_of_range]")
}

func TestValidateCard_Stdin(t *testing.T) {
	out, err := run(t, `{"type":"unknown"}`, "validate", "card", "-")
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, out, "type [enum_violation]")
}

func TestValidateLayout(t *testing.T) {
	doc := `{"id":"l1","cards":[` + validCard + `],"version":2,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`
	out, err := run(t, doc, "validate", "layout", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "1 cards, version 2")

	out, err = run(t, "{", "validate", "layout", "-")
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.Contains(t, out, "(root) [malformed]")
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := run(t, "", "validate", "card", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidDocument)
}

func TestTokenHash(t *testing.T) {
	out, err := run(t, "s3cret\n", "token", "hash")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	_, err = run(t, "\n", "token", "hash")
	assert.Error(t, err)
}

func TestTokenNew(t *testing.T) {
	out, err := run(t, "", "token", "new", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "token:       alice:")
	assert.Contains(t, out, "auth_tokens: alice:$2a$")

	_, err = run(t, "", "token", "new", "a:b")
	assert.Error(t, err)
}

func TestLayoutLifecycle(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "", "migrate", "up")
	require.NoError(t, err, out)
	assert.Contains(t, out, "schema is up to date")

	// applying twice is a no-op
	_, err = run(t, "", "migrate", "up")
	require.NoError(t, err)

	exported := filepath.Join(t.TempDir(), "alice.json")
	_, err = run(t, "", "layout", "export", "--user", "alice", "-o", exported)
	require.NoError(t, err)

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	l, err := layout.ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Version)
	require.Len(t, l.Cards, 4)

	l.Cards = l.Cards[:2]
	trimmed, err := l.MarshalJSON()
	require.NoError(t, err)

	out, err = run(t, string(trimmed), "layout", "import", "-u", "alice", "--if-version", "1", "-")
	require.NoError(t, err, out)
	assert.Contains(t, out, "imported 2 cards into alice, version 2")

	_, err = run(t, string(trimmed), "layout", "import", "-u", "alice", "--if-version", "1", "-")
	assert.ErrorIs(t, err, layout.ErrVersionConflict)

	out, err = run(t, "", "layout", "reset", "-u", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "reset alice, version 3")

	out, err = run(t, "", "layout", "delete", "-u", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted alice")

	_, err = run(t, "", "layout", "delete", "-u", "alice")
	assert.ErrorIs(t, err, layout.ErrNotFound)
}

func TestLayoutExport_Stdout(t *testing.T) {
	useSQLite(t)
	_, err := run(t, "", "migrate", "up")
	require.NoError(t, err)

	out, err := run(t, "", "layout", "export")
	require.NoError(t, err)
	l, err := layout.ParseJSON([]byte(out))
	require.NoError(t, err)
	assert.Nil(t, l.UserID)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, "dashctl.yaml", "storage_driver: sqlite\nsqlite_path: "+filepath.Join(dir, "from-file.db")+"\nmigrations_path: ../../../migrations\n")

	_, err := run(t, "", "--config", cfgFile, "migrate", "up")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "from-file.db"))

	_, err = run(t, "", "--storage-driver", "mongo", "migrate", "up")
	assert.Error(t, err)
}
