package snapshot_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lborup/dinkhouse/internal/rating"
	"github.com/lborup/dinkhouse/internal/snapshot"
	"github.com/lborup/dinkhouse/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkWriteAndRead(t *testing.T) {
	backend := storage.NewMock()
	sink := snapshot.NewSink(backend, "")

	doc := &snapshot.Document{
		GeneratedAt: "2024-05-01T10:00:00Z",
		Singles: []rating.Entry{
			{Rank: 1, Player: "Alice", Rating: 1216.0, Wins: 1, WinPct: 100.0, GamesWon: 11, GamesLost: 7, MatchesPlayed: 1},
		},
		DoublesTeams:      []rating.Entry{},
		DoublesIndividual: []rating.Entry{},
	}
	require.NoError(t, sink.Write(context.Background(), doc))

	data, err := sink.Read(context.Background())
	require.NoError(t, err)

	var got snapshot.Document
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "2024-05-01T10:00:00Z", got.GeneratedAt)
	require.Len(t, got.Singles, 1)
	assert.Equal(t, "Alice", got.Singles[0].Player)
	assert.Empty(t, got.Singles[0].Team)
}

func TestSinkEmptyListsAreNotNull(t *testing.T) {
	backend := storage.NewMock()
	sink := snapshot.NewSink(backend, "")

	doc := &snapshot.Document{
		GeneratedAt:       "2024-05-01T10:00:00Z",
		Singles:           []rating.Entry{},
		DoublesTeams:      []rating.Entry{},
		DoublesIndividual: []rating.Entry{},
	}
	require.NoError(t, sink.Write(context.Background(), doc))

	data, err := sink.Read(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
}

func TestSinkTeamEntryOmitsPlayerField(t *testing.T) {
	backend := storage.NewMock()
	sink := snapshot.NewSink(backend, "rankings.json")

	doc := &snapshot.Document{
		GeneratedAt:       "2024-05-01T10:00:00Z",
		Singles:           []rating.Entry{},
		DoublesTeams:      []rating.Entry{{Rank: 1, Team: "Ann & Bob", Rating: 1216.0}},
		DoublesIndividual: []rating.Entry{},
	}
	require.NoError(t, sink.Write(context.Background(), doc))

	data, err := sink.Read(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"team": "Ann & Bob"`)
	assert.NotContains(t, string(data), `\u0026`, "the team separator must stay literal")
	assert.NotContains(t, string(data), `"player"`)
}
