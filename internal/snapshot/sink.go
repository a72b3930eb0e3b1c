package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lborup/dinkhouse/internal/storage"
)

// Sink serializes the three ranked lists into one document and writes it to
// the active backend. The backend's Write is atomic, so a concurrent reader
// never sees a half-replaced snapshot.
type Sink struct {
	backend storage.Backend
	key     string
}

// NewSink creates a Sink writing to the given key.
func NewSink(backend storage.Backend, key string) *Sink {
	if key == "" {
		key = DefaultKey
	}
	return &Sink{backend: backend, key: key}
}

// Write persists the snapshot. A failure here is fatal for the run: the
// coordinator withholds the generation timestamp so the next run retries.
func (s *Sink) Write(ctx context.Context, doc *Document) error {
	// Team identifiers contain "&"; keep it literal instead of letting the
	// encoder HTML-escape it.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	data := buf.Bytes()
	if err := s.backend.Write(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	log.Info("Wrote rankings snapshot", "key", s.key,
		"singles", len(doc.Singles), "doubles_teams", len(doc.DoublesTeams), "doubles_individual", len(doc.DoublesIndividual))
	return nil
}

// Read returns the raw bytes of the current snapshot.
func (s *Sink) Read(ctx context.Context) ([]byte, error) {
	return s.backend.Read(ctx, s.key)
}
