package match_test

import (
	"context"
	"testing"
	"time"

	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreListSortsByEmbeddedDate(t *testing.T) {
	backend := storage.NewMock()
	now := time.Now()
	backend.Seed("matches/singles/2024-06-01-alice-vs-bob.yml", []byte("x"), now)
	backend.Seed("matches/singles/2023-01-15-bob-vs-cid.yml", []byte("x"), now)
	backend.Seed("matches/singles/2024-02-20-alice-vs-cid.yml", []byte("x"), now)

	store := match.NewStore(backend)
	handles, err := store.List(context.Background(), match.Singles)
	require.NoError(t, err)
	require.Len(t, handles, 3)
	assert.Equal(t, "matches/singles/2023-01-15-bob-vs-cid.yml", handles[0].Key)
	assert.Equal(t, "matches/singles/2024-02-20-alice-vs-cid.yml", handles[1].Key)
	assert.Equal(t, "matches/singles/2024-06-01-alice-vs-bob.yml", handles[2].Key)
}

func TestStoreListUndatedKeysSortFirst(t *testing.T) {
	backend := storage.NewMock()
	now := time.Now()
	backend.Seed("matches/singles/2022-03-03-early.yml", []byte("x"), now)
	backend.Seed("matches/singles/undated-match.yml", []byte("x"), now)

	store := match.NewStore(backend)
	handles, err := store.List(context.Background(), match.Singles)
	require.NoError(t, err)
	require.Len(t, handles, 2)
	assert.Equal(t, "matches/singles/undated-match.yml", handles[0].Key)
	assert.True(t, handles[0].Date.IsZero())
}

func TestStoreListDatesBareDateKeys(t *testing.T) {
	backend := storage.NewMock()
	now := time.Now()
	backend.Seed("matches/singles/2024-05-01.yml", []byte("x"), now)
	backend.Seed("matches/singles/2023-11-20.yaml", []byte("x"), now)

	store := match.NewStore(backend)
	handles, err := store.List(context.Background(), match.Singles)
	require.NoError(t, err)
	require.Len(t, handles, 2)
	assert.Equal(t, time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC), handles[0].Date)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), handles[1].Date)
}

func TestStoreListIgnoresOtherCategoriesAndExtensions(t *testing.T) {
	backend := storage.NewMock()
	now := time.Now()
	backend.Seed("matches/singles/2024-01-01-a.yml", []byte("x"), now)
	backend.Seed("matches/singles/2024-01-02-b.yaml", []byte("x"), now)
	backend.Seed("matches/singles/notes.txt", []byte("x"), now)
	backend.Seed("matches/doubles/2024-01-03-c.yml", []byte("x"), now)

	store := match.NewStore(backend)
	handles, err := store.List(context.Background(), match.Singles)
	require.NoError(t, err)
	assert.Len(t, handles, 2)
}

func TestStoreLoad(t *testing.T) {
	backend := storage.NewMock()
	backend.Seed("matches/singles/2024-05-01-alice-vs-bob.yml", []byte(`
date: 2024-05-01
players: [Alice, Bob]
winner: Alice
score:
  player1_games: 2
  player2_games: 1
`), time.Now())

	store := match.NewStore(backend)
	handles, err := store.List(context.Background(), match.Singles)
	require.NoError(t, err)
	require.Len(t, handles, 1)

	rec, err := store.Load(context.Background(), match.Singles, handles[0])
	require.NoError(t, err)
	assert.Equal(t, "Alice", rec.Winner)
}

func TestStoreLatestModTime(t *testing.T) {
	backend := storage.NewMock()
	older := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	backend.Seed("matches/singles/2024-05-01-a.yml", []byte("x"), older)
	backend.Seed("matches/doubles/2024-06-01-b.yml", []byte("x"), newer)

	store := match.NewStore(backend)
	latest, err := store.LatestModTime(context.Background())
	require.NoError(t, err)
	assert.True(t, latest.Equal(newer))
}

func TestStoreLatestModTimeNoRecords(t *testing.T) {
	store := match.NewStore(storage.NewMock())
	latest, err := store.LatestModTime(context.Background())
	require.NoError(t, err)
	assert.True(t, latest.IsZero())
}

func TestStoreSave(t *testing.T) {
	backend := storage.NewMock()
	store := match.NewStore(backend)

	key, err := store.Save(context.Background(), match.Doubles, "2024-07-04-doubles-abc123.yml", []byte("date: 2024-07-04"))
	require.NoError(t, err)
	assert.Equal(t, "matches/doubles/2024-07-04-doubles-abc123.yml", key)
	assert.True(t, backend.Exists(key))
}
