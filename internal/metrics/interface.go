package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncGenerationRuns()
	IncGenerationSkips()
	IncGenerationFailures()
	AddRecordsProcessed(category string, count int)
	AddRecordsSkipped(category string, count int)
	ObserveGenerationDuration(seconds float64)
	SetLastGenerationTime(epochSeconds float64)
	IncNotificationsSent()
	IncNotificationsFailed()
	SetStartupTime(seconds float64)
}
