package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lborup/dinkhouse/internal/lock"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/metrics"
	"github.com/lborup/dinkhouse/internal/notifier"
	"github.com/lborup/dinkhouse/internal/pubsub"
	"github.com/lborup/dinkhouse/internal/rating"
	"github.com/lborup/dinkhouse/internal/snapshot"
)

// Coordinator orchestrates one generation run: lock, staleness check, fold,
// snapshot write, timestamp. It never applies incremental updates; every
// run recomputes from the full match history with a fresh engine.
type Coordinator struct {
	store    *match.Store
	sink     *snapshot.Sink
	locker   lock.Locker
	marker   *Marker
	metrics  metrics.Metrics
	notifier notifier.Notifier // optional
	events   pubsub.Client     // optional
	clock    func() time.Time
}

// New creates a Coordinator. notifier and events may be nil when the
// corresponding integrations are not configured.
func New(store *match.Store, sink *snapshot.Sink, locker lock.Locker, marker *Marker, metricsSvc metrics.Metrics, notif notifier.Notifier, events pubsub.Client) *Coordinator {
	return &Coordinator{
		store:    store,
		sink:     sink,
		locker:   locker,
		marker:   marker,
		metrics:  metricsSvc,
		notifier: notif,
		events:   events,
		clock:    time.Now,
	}
}

// Run executes one generation. A lock timeout or a snapshot/timestamp write
// failure aborts the run with an error; per-record failures only skip the
// record. With dryRun set, nothing external is mutated beyond the lock.
func (c *Coordinator) Run(ctx context.Context, dryRun bool) (*Result, error) {
	start := c.clock()

	if err := c.locker.Acquire(ctx); err != nil {
		c.metrics.IncGenerationFailures()
		return nil, fmt.Errorf("generation aborted: %w", err)
	}
	defer func() {
		// The token has no expiry, so release must survive the request
		// context being cancelled mid-run.
		if err := c.locker.Release(context.WithoutCancel(ctx)); err != nil {
			log.Error("Failed to release generation lock", "error", err)
		}
	}()

	result := &Result{Summaries: make(map[match.Category]*CategorySummary)}
	for _, category := range match.Categories {
		result.Summaries[category] = &CategorySummary{}
	}

	stale, err := c.isStale(ctx)
	if err != nil {
		c.metrics.IncGenerationFailures()
		return nil, err
	}
	if !stale {
		result.Status = StatusSkipped
		c.metrics.IncGenerationSkips()
		c.logSummary(result)
		return result, nil
	}

	engine := rating.NewEngine()
	for _, category := range match.Categories {
		if err := c.foldCategory(ctx, engine, category, result.Summaries[category]); err != nil {
			c.metrics.IncGenerationFailures()
			return nil, err
		}
	}

	generatedAt := c.clock()
	doc := &snapshot.Document{
		GeneratedAt:       generatedAt.UTC().Format(time.RFC3339),
		Singles:           engine.SinglesRankings(),
		DoublesTeams:      engine.DoublesTeamRankings(),
		DoublesIndividual: engine.DoublesIndividualRankings(),
	}

	if dryRun {
		log.Info("[Dry Run] Would write snapshot and generation marker", "generated_at", doc.GeneratedAt)
	} else {
		if err := c.sink.Write(ctx, doc); err != nil {
			// The marker stays untouched so the next run retries in full.
			c.metrics.IncGenerationFailures()
			return nil, fmt.Errorf("generation aborted: %w", err)
		}
		if err := c.marker.Set(ctx, generatedAt); err != nil {
			c.metrics.IncGenerationFailures()
			return nil, fmt.Errorf("generation aborted: %w", err)
		}
	}

	result.Status = StatusCompleted
	result.GeneratedAt = doc.GeneratedAt

	c.metrics.IncGenerationRuns()
	c.metrics.ObserveGenerationDuration(c.clock().Sub(start).Seconds())
	c.metrics.SetLastGenerationTime(float64(generatedAt.Unix()))
	for category, summary := range result.Summaries {
		c.metrics.AddRecordsProcessed(string(category), summary.Processed)
		c.metrics.AddRecordsSkipped(string(category), summary.Skipped)
	}

	c.announce(doc, generatedAt, dryRun)
	c.logSummary(result)
	return result, nil
}

// isStale reports whether any match record is newer than the last
// successful generation. No records at all still counts as stale: the run
// proceeds and produces an empty snapshot.
func (c *Coordinator) isStale(ctx context.Context) (bool, error) {
	latest, err := c.store.LatestModTime(ctx)
	if err != nil {
		return false, fmt.Errorf("staleness check failed: %w", err)
	}
	if latest.IsZero() {
		return true, nil
	}
	last, err := c.marker.Last(ctx)
	if err != nil {
		return false, fmt.Errorf("staleness check failed: %w", err)
	}
	if latest.After(last) {
		return true, nil
	}
	log.Info("No new matches since last generation, skipping",
		"newest_match", latest.Format(time.RFC3339), "last_generation", last.Format(time.RFC3339))
	return false, nil
}

func (c *Coordinator) foldCategory(ctx context.Context, engine *rating.Engine, category match.Category, summary *CategorySummary) error {
	handles, err := c.store.List(ctx, category)
	if err != nil {
		return fmt.Errorf("failed to enumerate %s records: %w", category, err)
	}

	for _, h := range handles {
		rec, err := c.store.Load(ctx, category, h)
		if err != nil {
			log.Warn("Skipping match record", "key", h.Key, "error", err)
			summary.Skipped++
			continue
		}
		switch category {
		case match.Singles:
			engine.ProcessSingles(rec)
		case match.Doubles:
			engine.ProcessDoubles(rec)
		}
		summary.Processed++
	}
	return nil
}

// announce fans the completed snapshot out to the optional integrations.
// Failures here never fail the run; the snapshot is already durable.
func (c *Coordinator) announce(doc *snapshot.Document, generatedAt time.Time, dryRun bool) {
	if c.notifier != nil {
		if err := c.notifier.SendRankingsUpdate(doc, dryRun); err != nil {
			log.Error("Failed to send rankings notification", "error", err)
		}
	}
	if c.events != nil && !dryRun {
		event := pubsub.RankingsGenerated{
			GeneratedAt: generatedAt.Unix(),
			Singles:     len(doc.Singles),
			Teams:       len(doc.DoublesTeams),
			Individuals: len(doc.DoublesIndividual),
		}
		if err := c.events.Publish(pubsub.EventRankingsGenerated, event); err != nil {
			log.Error("Failed to publish rankings event", "error", err)
		}
	}
}

func (c *Coordinator) logSummary(result *Result) {
	for category, summary := range result.Summaries {
		log.Info("Generation summary", "status", result.Status, "category", category,
			"processed", summary.Processed, "skipped", summary.Skipped)
	}
}
