package generator

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lborup/dinkhouse/internal/storage"
)

// DefaultMarkerKey is where the last-generation timestamp lives.
const DefaultMarkerKey = "rankings.generated"

// Marker persists the epoch time of the last successful generation. It is
// the scalar the staleness check compares against, and it is only advanced
// after the snapshot is durably written.
type Marker struct {
	backend storage.Backend
	key     string
}

// NewMarker creates a Marker at the given key.
func NewMarker(backend storage.Backend, key string) *Marker {
	if key == "" {
		key = DefaultMarkerKey
	}
	return &Marker{backend: backend, key: key}
}

// Last returns the persisted timestamp. The zero time means no generation
// has ever completed.
func (m *Marker) Last(ctx context.Context) (time.Time, error) {
	data, err := m.backend.Read(ctx, m.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read generation marker: %w", err)
	}
	epoch, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt generation marker %q: %w", string(data), err)
	}
	return time.Unix(epoch, 0), nil
}

// Set persists the given time as epoch seconds.
func (m *Marker) Set(ctx context.Context, t time.Time) error {
	data := []byte(strconv.FormatInt(t.Unix(), 10))
	if err := m.backend.Write(ctx, m.key, data); err != nil {
		return fmt.Errorf("failed to write generation marker: %w", err)
	}
	return nil
}
