package notifier

import "github.com/lborup/dinkhouse/internal/snapshot"

// Notifier defines a high-level interface for announcing league events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// SendRankingsUpdate announces a freshly generated snapshot.
	SendRankingsUpdate(doc *snapshot.Document, dryRun bool) error
}
