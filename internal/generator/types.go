package generator

import (
	"github.com/lborup/dinkhouse/internal/match"
)

// Status is the terminal state of a generation run.
type Status string

const (
	// StatusCompleted means a new snapshot and timestamp were persisted.
	StatusCompleted Status = "completed"
	// StatusSkipped means no match was newer than the last successful run.
	StatusSkipped Status = "skipped"
)

// CategorySummary counts the records folded and skipped for one category.
type CategorySummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

// Result is what a finished run reports. Summaries is always populated so
// callers can surface the per-category counts even for a skipped run.
type Result struct {
	Status      Status                              `json:"status"`
	GeneratedAt string                              `json:"generated_at,omitempty"`
	Summaries   map[match.Category]*CategorySummary `json:"summaries"`
}
