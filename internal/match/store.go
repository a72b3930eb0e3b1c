package match

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/lborup/dinkhouse/internal/storage"
)

// KeyPrefix is the root of all match records in the backend.
const KeyPrefix = "matches/"

// Store enumerates and loads match records from the active backend. It does
// not care whether that backend is a local directory or an object store.
type Store struct {
	backend storage.Backend
}

// NewStore creates a Store over the given backend.
func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// List returns the records of one category in chronological order: by the
// date embedded in the key, then by key for a deterministic total order.
func (s *Store) List(ctx context.Context, category Category) ([]Handle, error) {
	objects, err := s.backend.List(ctx, KeyPrefix+string(category)+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", category, err)
	}

	handles := make([]Handle, 0, len(objects))
	for _, obj := range objects {
		base := path.Base(obj.Key)
		if !strings.HasSuffix(base, ".yml") && !strings.HasSuffix(base, ".yaml") {
			continue
		}
		handles = append(handles, Handle{Key: obj.Key, Date: dateFromKey(base), ModTime: obj.ModTime})
	}
	sort.Slice(handles, func(i, j int) bool {
		if !handles[i].Date.Equal(handles[j].Date) {
			return handles[i].Date.Before(handles[j].Date)
		}
		return handles[i].Key < handles[j].Key
	})
	return handles, nil
}

// Load fetches and parses one record.
func (s *Store) Load(ctx context.Context, category Category, h Handle) (*Record, error) {
	data, err := s.backend.Read(ctx, h.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", h.Key, err)
	}
	return Parse(data, category)
}

// Save writes a new match document under the category's prefix.
func (s *Store) Save(ctx context.Context, category Category, name string, data []byte) (string, error) {
	key := KeyPrefix + string(category) + "/" + name
	if err := s.backend.Write(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

// LatestModTime returns the newest modification time across every match
// record in every category. The zero time means no records exist.
func (s *Store) LatestModTime(ctx context.Context) (time.Time, error) {
	var latest time.Time
	for _, category := range Categories {
		handles, err := s.List(ctx, category)
		if err != nil {
			return time.Time{}, err
		}
		for _, h := range handles {
			if h.ModTime.After(latest) {
				latest = h.ModTime
			}
		}
	}
	return latest, nil
}

// dateFromKey parses the YYYY-MM-DD prefix of a record's base name, with
// the extension stripped so a bare date like 2024-05-01.yml still parses.
// Anything unparsable gets the zero time so it sorts first on every run.
func dateFromKey(base string) time.Time {
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".yml"), ".yaml")
	parts := strings.SplitN(base, "-", 4)
	if len(parts) < 3 {
		return time.Time{}
	}
	date, err := time.Parse("2006-01-02", strings.Join(parts[:3], "-"))
	if err != nil {
		return time.Time{}
	}
	return date
}
