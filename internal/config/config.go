package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get an env var with a fallback default.
	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	getDuration := func(key string, fallback time.Duration) time.Duration {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Fatalf("Error: environment variable %s is not a valid duration: %v", key, err)
		}
		return d
	}

	cfg := Config{
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", "local"),
			DataDir: getEnv("DATA_DIR", "./data"),
			Bucket:  getEnv("GCS_BUCKET", ""),
		},
		Lock: LockConfig{
			Timeout: getDuration("LOCK_TIMEOUT", 30*time.Second),
			Poll:    getDuration("LOCK_POLL_INTERVAL", 500*time.Millisecond),
		},
		Port:          getEnv("PORT", "8080"),
		DBName:        getEnv("DB_NAME", "rankings.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		PlayersFile:   getEnv("PLAYERS_FILE", "players.csv"),
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
	}

	if cfg.Storage.Backend == "gcs" && cfg.Storage.Bucket == "" {
		log.Fatalf("Error: GCS_BUCKET must be set when STORAGE_BACKEND is gcs.")
	}
	return cfg
}
