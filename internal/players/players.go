// Package players loads the league roster from a CSV file. The file is one
// player name per line; extra columns are ignored. The roster is re-read on
// every call so edits show up without a restart.
package players

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Roster reads player names from a CSV file on disk.
type Roster struct {
	path string
}

// NewRoster creates a Roster backed by the given file path.
func NewRoster(path string) *Roster {
	return &Roster{path: path}
}

// Load returns all player names in file order. A missing file yields an
// empty roster, not an error.
func (r *Roster) Load() ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var names []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster file: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
