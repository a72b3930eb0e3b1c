package snapshot

import "github.com/lborup/dinkhouse/internal/rating"

// DefaultKey is where the rankings snapshot lives in the backend.
const DefaultKey = "rankings.json"

// Document is the single rankings snapshot consumed by readers. It is
// replaced wholesale on every generation run.
type Document struct {
	GeneratedAt       string         `json:"generated_at"`
	Singles           []rating.Entry `json:"singles"`
	DoublesTeams      []rating.Entry `json:"doubles_teams"`
	DoublesIndividual []rating.Entry `json:"doubles_individual"`
}
