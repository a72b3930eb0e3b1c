package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lborup/dinkhouse/internal/config"
	"github.com/lborup/dinkhouse/internal/database"
	"github.com/lborup/dinkhouse/internal/importer"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/storage"
	"github.com/spf13/cobra"
)

var dryRun bool

func init() {
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute rankings without persisting anything")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(rankingsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(importCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Fetch the current rankings snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rankings.json")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players")
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Trigger a rankings generation run",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/generate"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the YAML match history into the league database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		backend, err := storage.NewLocal(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("failed to open data directory: %w", err)
		}
		db, err := database.InitDB(cfg.DBName, "", "", cfg.MigrationsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		summary, err := importer.New(db, match.NewStore(backend)).Run(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d singles and %d doubles matches (%d skipped, %d players)\n",
			summary.Singles, summary.Doubles, summary.Skipped, summary.Players)
		return nil
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
