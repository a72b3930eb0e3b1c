package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	GenerationRunsCount      int
	GenerationSkipsCount     int
	GenerationFailuresCount  int
	RecordsProcessedByCat    map[string]int
	RecordsSkippedByCat      map[string]int
	GenerationDurations      []float64
	LastGenerationTimeValue  float64
	NotificationsSentCount   int
	NotificationsFailedCount int
	StartupTimeValue         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		RecordsProcessedByCat: make(map[string]int),
		RecordsSkippedByCat:   make(map[string]int),
	}
}

func (m *Mock) IncGenerationRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationRunsCount++
}

func (m *Mock) IncGenerationSkips() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationSkipsCount++
}

func (m *Mock) IncGenerationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationFailuresCount++
}

func (m *Mock) AddRecordsProcessed(category string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsProcessedByCat[category] += count
}

func (m *Mock) AddRecordsSkipped(category string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordsSkippedByCat[category] += count
}

func (m *Mock) ObserveGenerationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerationDurations = append(m.GenerationDurations, seconds)
}

func (m *Mock) SetLastGenerationTime(epochSeconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastGenerationTimeValue = epochSeconds
}

func (m *Mock) IncNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsSentCount++
}

func (m *Mock) IncNotificationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotificationsFailedCount++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTimeValue = seconds
}
