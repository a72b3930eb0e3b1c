package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lborup/dinkhouse/internal/config"
	"github.com/lborup/dinkhouse/internal/generator"
	"github.com/lborup/dinkhouse/internal/lock"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/metrics"
	"github.com/lborup/dinkhouse/internal/players"
	"github.com/lborup/dinkhouse/internal/pubsub"
	"github.com/lborup/dinkhouse/internal/snapshot"
	"github.com/lborup/dinkhouse/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestServer initializes a server over an in-memory backend.
func setupTestServer(t *testing.T) (*Server, *storage.Mock, *pubsub.Mock) {
	t.Helper()

	backend := storage.NewMock()
	store := match.NewStore(backend)
	sink := snapshot.NewSink(backend, "")

	rosterPath := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(rosterPath, []byte("Alice\nBob\n"), 0o644))
	roster := players.NewRoster(rosterPath)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	events := pubsub.NewMock()
	coordinator := generator.New(store, sink, lock.NewMock(), generator.NewMarker(backend, ""), metricsSvc, nil, events)

	server := NewServer(store, sink, roster, coordinator, metricsSvc, metricsHandler, config.Config{}, events)
	return server, backend, events
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _ := setupTestServer(t)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestRankingsHandlerWithoutSnapshot(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rankings.json", nil)
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRankingsHandlerServesSnapshot(t *testing.T) {
	server, backend, _ := setupTestServer(t)
	backend.Seed(snapshot.DefaultKey, []byte(`{"generated_at":"2024-05-01T00:00:00Z"}`), time.Now())

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/rankings.json", nil)
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "2024-05-01")
}

func TestListPlayersHandler(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/players", nil)
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var names []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &names))
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestSubmitMatchHandler(t *testing.T) {
	server, backend, events := setupTestServer(t)

	body := `{
		"type": "singles",
		"date": "2024-05-01",
		"players": ["Alice", "Bob"],
		"winner": "Alice",
		"games": [{"player1_score": 11, "player2_score": 7}]
	}`
	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/matches", strings.NewReader(body))
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Match recorded successfully!", resp["message"])
	assert.True(t, strings.HasPrefix(resp["filename"], "2024-05-01-Alice-vs-Bob-"))

	assert.True(t, backend.Exists(match.KeyPrefix+"singles/"+resp["filename"]))
	assert.True(t, backend.Exists(snapshot.DefaultKey), "submission triggers regeneration")

	require.Len(t, events.PublishCalls, 2)
	assert.Equal(t, pubsub.EventMatchRecorded, events.PublishCalls[0].Topic)
	assert.Equal(t, pubsub.EventRankingsGenerated, events.PublishCalls[1].Topic)
}

func TestSubmitMatchHandlerRejectsInvalidSubmission(t *testing.T) {
	server, backend, _ := setupTestServer(t)

	body := `{
		"type": "singles",
		"date": "2024-05-01",
		"players": ["Alice", "Bob"],
		"winner": "Charlie",
		"games": [{"player1_score": 11, "player2_score": 7}]
	}`
	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/matches", strings.NewReader(body))
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, backend.WriteCalls, "rejected submissions must not be stored")
}

func TestSubmitMatchHandlerRejectsUnknownType(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/matches", strings.NewReader(`{"type":"triples","date":"2024-05-01"}`))
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitMatchHandlerRequiresPost(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/matches", nil)
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestSubmitMatchHandlerDryRun(t *testing.T) {
	server, backend, _ := setupTestServer(t)

	body := `{
		"type": "doubles",
		"date": "2024-05-02",
		"team1": ["Bob", "Ann"],
		"team2": ["Cid", "Dee"],
		"winner_team": 1,
		"games": [{"team1_score": 11, "team2_score": 9}]
	}`
	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/matches?dry_run=true", strings.NewReader(body))
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, backend.WriteCalls, "dry run must not store anything")
}

func TestGenerateHandler(t *testing.T) {
	server, backend, _ := setupTestServer(t)
	backend.Seed("matches/singles/2024-05-01-a.yml", []byte("date: 2024-05-01\nplayers: [Alice, Bob]\nwinner: Alice\nscore:\n  player1_games: 2\n  player2_games: 1\n"), time.Now())

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/generate", nil)
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, string(generator.StatusCompleted), resp["status"])
	assert.True(t, backend.Exists(snapshot.DefaultKey))
}

func TestMetricsHandler(t *testing.T) {
	server, _, _ := setupTestServer(t)

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
