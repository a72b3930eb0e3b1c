package importer_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lborup/dinkhouse/internal/database"
	"github.com/lborup/dinkhouse/internal/importer"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singlesDoc = `
date: 2024-05-01
players: [Alice, Bob]
winner: Bob
score:
  player1_games: 1
  player2_games: 2
`

const doublesDoc = `
date: 2024-05-02
team1: [Bob, Ann]
team2: [Cid, Dee]
winner_team: 2
games:
  - team1_score: 9
    team2_score: 11
  - team1_score: 11
    team2_score: 13
`

func setup(t *testing.T) (*importer.Importer, *storage.Mock) {
	t.Helper()
	db, err := database.InitDB(filepath.Join(t.TempDir(), "league.db"), "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	backend := storage.NewMock()
	return importer.New(db, match.NewStore(backend)), backend
}

func TestImportsBothCategories(t *testing.T) {
	imp, backend := setup(t)
	backend.Seed("matches/singles/2024-05-01-alice-vs-bob.yml", []byte(singlesDoc), time.Now())
	backend.Seed("matches/doubles/2024-05-02-doubles.yml", []byte(doublesDoc), time.Now())

	summary, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Singles)
	assert.Equal(t, 1, summary.Doubles)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 5, summary.Players, "Bob plays in both categories and is created once")
}

func TestImportIsIdempotent(t *testing.T) {
	imp, backend := setup(t)
	backend.Seed("matches/singles/2024-05-01-a.yml", []byte(singlesDoc), time.Now())

	first, err := imp.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Singles)

	second, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Singles)
	assert.Equal(t, 1, second.Skipped)
}

func TestImportSkipsMalformedRecord(t *testing.T) {
	imp, backend := setup(t)
	backend.Seed("matches/singles/2024-05-01-bad.yml", []byte("players: [Alice]\n"), time.Now())
	backend.Seed("matches/singles/2024-05-02-good.yml", []byte(singlesDoc), time.Now())

	summary, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Singles)
	assert.Equal(t, 1, summary.Skipped)
}

func TestDoublesTeamsShareCanonicalIdentity(t *testing.T) {
	imp, backend := setup(t)
	backend.Seed("matches/doubles/2024-05-02-a.yml", []byte(doublesDoc), time.Now())
	reversed := `
date: 2024-05-03
team1: [Ann, Bob]
team2: [Dee, Cid]
winner_team: 1
games:
  - team1_score: 11
    team2_score: 5
`
	backend.Seed("matches/doubles/2024-05-03-b.yml", []byte(reversed), time.Now())

	summary, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Doubles)
	assert.Equal(t, 4, summary.Players, "reordered rosters resolve to the same players and teams")
}
