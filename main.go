package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lborup/dinkhouse/internal/config"
	"github.com/lborup/dinkhouse/internal/generator"
	server "github.com/lborup/dinkhouse/internal/http"
	"github.com/lborup/dinkhouse/internal/lock"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/metrics"
	"github.com/lborup/dinkhouse/internal/notifier"
	"github.com/lborup/dinkhouse/internal/notifier/slack"
	"github.com/lborup/dinkhouse/internal/players"
	"github.com/lborup/dinkhouse/internal/pubsub"
	"github.com/lborup/dinkhouse/internal/snapshot"
	"github.com/lborup/dinkhouse/internal/storage"
)

func newBackend(ctx context.Context, cfg config.Config) (storage.Backend, error) {
	if cfg.Storage.Backend == "gcs" {
		log.Info("Using GCS storage backend", "bucket", cfg.Storage.Bucket)
		return storage.NewGCS(ctx, cfg.Storage.Bucket)
	}
	log.Info("Using local storage backend", "dir", cfg.Storage.DataDir)
	return storage.NewLocal(cfg.Storage.DataDir)
}

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	ctx := context.Background()
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %s", err)
	}

	store := match.NewStore(backend)
	sink := snapshot.NewSink(backend, "")
	locker := lock.New(backend, "", cfg.Lock.Timeout, cfg.Lock.Poll)
	marker := generator.NewMarker(backend, "")
	roster := players.NewRoster(cfg.PlayersFile)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var notif notifier.Notifier
	if cfg.SlackEnabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack notifications disabled, no token or channel configured")
	}

	var events pubsub.Client
	if cfg.PubsubEnabled() {
		events = pubsub.New(cfg.ProjectID)
		defer events.Close()
	} else {
		log.Info("Pubsub events disabled, no project configured")
	}

	coordinator := generator.New(store, sink, locker, marker, metricsSvc, notif, events)

	s := server.NewServer(
		store,
		sink,
		roster,
		coordinator,
		metricsSvc,
		metricsHandler,
		cfg,
		events,
	)

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
