package storage_test

import (
	"context"
	"testing"

	"github.com/lborup/dinkhouse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocal(t *testing.T) *storage.Local {
	t.Helper()
	backend, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return backend
}

func TestLocalWriteAndRead(t *testing.T) {
	backend := setupLocal(t)
	ctx := context.Background()

	err := backend.Write(ctx, "matches/singles/2024-05-01-alice-vs-bob.yml", []byte("date: 2024-05-01"))
	require.NoError(t, err)

	data, err := backend.Read(ctx, "matches/singles/2024-05-01-alice-vs-bob.yml")
	require.NoError(t, err)
	assert.Equal(t, "date: 2024-05-01", string(data))
}

func TestLocalReadMissingKey(t *testing.T) {
	backend := setupLocal(t)

	_, err := backend.Read(context.Background(), "matches/singles/nope.yml")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalListFiltersByPrefix(t *testing.T) {
	backend := setupLocal(t)
	ctx := context.Background()

	require.NoError(t, backend.Write(ctx, "matches/singles/a.yml", []byte("a")))
	require.NoError(t, backend.Write(ctx, "matches/singles/b.yml", []byte("b")))
	require.NoError(t, backend.Write(ctx, "matches/doubles/c.yml", []byte("c")))
	require.NoError(t, backend.Write(ctx, "rankings.json", []byte("{}")))

	objects, err := backend.List(ctx, "matches/singles/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	keys := []string{objects[0].Key, objects[1].Key}
	assert.Contains(t, keys, "matches/singles/a.yml")
	assert.Contains(t, keys, "matches/singles/b.yml")
}

func TestLocalListEmptyPrefix(t *testing.T) {
	backend := setupLocal(t)

	objects, err := backend.List(context.Background(), "matches/")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestLocalCreateExclusive(t *testing.T) {
	backend := setupLocal(t)
	ctx := context.Background()

	err := backend.CreateExclusive(ctx, "rankings.lock", []byte("2024-05-01T10:00:00Z"))
	require.NoError(t, err)

	err = backend.CreateExclusive(ctx, "rankings.lock", []byte("2024-05-01T10:00:01Z"))
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	require.NoError(t, backend.Delete(ctx, "rankings.lock"))
	err = backend.CreateExclusive(ctx, "rankings.lock", []byte("2024-05-01T10:00:02Z"))
	assert.NoError(t, err, "exclusive create should succeed again after delete")
}

func TestLocalDeleteMissingKeyIsNoop(t *testing.T) {
	backend := setupLocal(t)
	assert.NoError(t, backend.Delete(context.Background(), "not-there"))
}

func TestLocalWriteReplacesExisting(t *testing.T) {
	backend := setupLocal(t)
	ctx := context.Background()

	require.NoError(t, backend.Write(ctx, "rankings.json", []byte("old")))
	require.NoError(t, backend.Write(ctx, "rankings.json", []byte("new")))

	data, err := backend.Read(ctx, "rankings.json")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
