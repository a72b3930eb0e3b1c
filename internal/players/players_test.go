package players_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lborup/dinkhouse/internal/players"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoster(t *testing.T) {
	path := writeRoster(t, "Alice\nBob\nCharlie\n")
	names, err := players.NewRoster(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
}

func TestLoadSkipsBlankLinesAndTrimsWhitespace(t *testing.T) {
	path := writeRoster(t, "Alice\n\n  Bob  \n")
	names, err := players.NewRoster(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestLoadIgnoresExtraColumns(t *testing.T) {
	path := writeRoster(t, "Alice,3.5\nBob,4.0\n")
	names, err := players.NewRoster(path).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestLoadMissingFileReturnsEmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	names, err := players.NewRoster(path).Load()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)
}
