package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/storage"
	"gopkg.in/yaml.v3"
)

// Simplified config loading for the script
func loadConfig() string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	if dir, ok := os.LookupEnv("DATA_DIR"); ok {
		return dir
	}
	return "./data"
}

var seedPlayers = []string{
	"Seeder Player A",
	"Seeder Player B",
	"Seeder Player C",
	"Seeder Player D",
	"Seeder Player E",
	"Seeder Player F",
}

type game struct {
	Player1Score int `yaml:"player1_score,omitempty"`
	Player2Score int `yaml:"player2_score,omitempty"`
	Team1Score   int `yaml:"team1_score,omitempty"`
	Team2Score   int `yaml:"team2_score,omitempty"`
}

type matchDoc struct {
	Date       string   `yaml:"date"`
	Players    []string `yaml:"players,omitempty"`
	Winner     string   `yaml:"winner,omitempty"`
	Team1      []string `yaml:"team1,omitempty"`
	Team2      []string `yaml:"team2,omitempty"`
	WinnerTeam int      `yaml:"winner_team,omitempty"`
	Games      []game   `yaml:"games"`
}

func main() {
	log.Info("Starting match seeder...")
	dataDir := loadConfig()

	backend, err := storage.NewLocal(dataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %s", err)
	}
	store := match.NewStore(backend)
	ctx := context.Background()

	const numSingles = 40
	const numDoubles = 40

	log.Info("Preparing to write dummy match records...", "singles", numSingles, "doubles", numDoubles, "dir", dataDir)
	startTime := time.Now()

	for i := 0; i < numSingles; i++ {
		date := randomDate()
		p1, p2 := pickTwo()
		winner := p1
		loserScore := rand.Intn(10)
		doc := matchDoc{
			Date:    date,
			Players: []string{p1, p2},
			Winner:  winner,
			Games: []game{
				{Player1Score: 11, Player2Score: loserScore},
				{Player1Score: 11, Player2Score: rand.Intn(10)},
			},
		}
		name := fmt.Sprintf("%s-%s-vs-%s-%s.yml", date, slug(p1), slug(p2), uuid.NewString()[:8])
		if err := save(ctx, store, match.Singles, name, doc); err != nil {
			log.Fatalf("Failed to write singles record: %s", err)
		}
	}
	log.Info("Wrote singles records", "count", numSingles)

	for i := 0; i < numDoubles; i++ {
		date := randomDate()
		members := rand.Perm(len(seedPlayers))[:4]
		doc := matchDoc{
			Date:       date,
			Team1:      []string{seedPlayers[members[0]], seedPlayers[members[1]]},
			Team2:      []string{seedPlayers[members[2]], seedPlayers[members[3]]},
			WinnerTeam: 1 + rand.Intn(2),
			Games: []game{
				{Team1Score: 11, Team2Score: rand.Intn(10)},
				{Team1Score: rand.Intn(10), Team2Score: 11},
				{Team1Score: 11, Team2Score: rand.Intn(10)},
			},
		}
		name := fmt.Sprintf("%s-doubles-%s.yml", date, uuid.NewString()[:8])
		if err := save(ctx, store, match.Doubles, name, doc); err != nil {
			log.Fatalf("Failed to write doubles record: %s", err)
		}
	}
	log.Info("Wrote doubles records", "count", numDoubles)

	duration := time.Since(startTime)
	log.Info("Successfully seeded all dummy matches.", "duration", duration)
}

func save(ctx context.Context, store *match.Store, category match.Category, name string, doc matchDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = store.Save(ctx, category, name, data)
	return err
}

func randomDate() string {
	t := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
	return t.Format("2006-01-02")
}

func pickTwo() (string, string) {
	perm := rand.Perm(len(seedPlayers))
	return seedPlayers[perm[0]], seedPlayers[perm[1]]
}

func slug(name string) string {
	return strings.ReplaceAll(name, " ", "-")
}
