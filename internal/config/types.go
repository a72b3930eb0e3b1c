package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Storage       StorageConfig
	Lock          LockConfig
	Port          string
	DBName        string
	MigrationsDir string
	PlayersFile   string
	Slack         SlackConfig
	ProjectID     string
}

// StorageConfig selects and parameterizes the record store backend.
type StorageConfig struct {
	Backend string // "local" or "gcs"
	DataDir string
	Bucket  string
}
type LockConfig struct {
	Timeout time.Duration
	Poll    time.Duration
}
type SlackConfig struct {
	Token     string
	ChannelID string
}

// SlackEnabled reports whether the Slack integration is configured.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// PubsubEnabled reports whether the pubsub integration is configured.
func (c Config) PubsubEnabled() bool {
	return c.ProjectID != ""
}
