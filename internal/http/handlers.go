package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/lborup/dinkhouse/internal/match"
	"github.com/lborup/dinkhouse/internal/pubsub"
	"gopkg.in/yaml.v3"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// RankingsHandler serves the current rankings snapshot as written by the
// last generation run.
func (s *Server) RankingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.Sink.Read(r.Context())
		if err != nil {
			respondJSON(w, http.StatusNotFound, map[string]string{"error": "No rankings available"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := s.Roster.Load()
		if err != nil {
			log.Error("Failed to load roster", "error", err)
			http.Error(w, "Failed to load players", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, names)
	}
}

// matchSubmission is the JSON body of a match submission. It mirrors the
// stored YAML schema plus a type discriminator.
type matchSubmission struct {
	Type       string           `json:"type"`
	Date       string           `json:"date"`
	Players    []string         `json:"players,omitempty"`
	Winner     string           `json:"winner,omitempty"`
	Team1      []string         `json:"team1,omitempty"`
	Team2      []string         `json:"team2,omitempty"`
	WinnerTeam int              `json:"winner_team,omitempty"`
	Games      []gameSubmission `json:"games,omitempty"`
}

type gameSubmission struct {
	Player1Score int `json:"player1_score" yaml:"player1_score,omitempty"`
	Player2Score int `json:"player2_score" yaml:"player2_score,omitempty"`
	Team1Score   int `json:"team1_score" yaml:"team1_score,omitempty"`
	Team2Score   int `json:"team2_score" yaml:"team2_score,omitempty"`
}

// matchDocument is the YAML shape written to the record store.
type matchDocument struct {
	Date       string           `yaml:"date"`
	Players    []string         `yaml:"players,omitempty"`
	Winner     string           `yaml:"winner,omitempty"`
	Team1      []string         `yaml:"team1,omitempty"`
	Team2      []string         `yaml:"team2,omitempty"`
	WinnerTeam int              `yaml:"winner_team,omitempty"`
	Games      []gameSubmission `yaml:"games"`
}

// SubmitMatchHandler accepts a new match result, stores it as a YAML record
// and regenerates the rankings.
func (s *Server) SubmitMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		isDryRun := isDryRunFromContext(r)

		var sub matchSubmission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
			return
		}
		if sub.Type == "" || sub.Date == "" {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing match type or date"})
			return
		}
		category := match.Category(sub.Type)
		if category != match.Singles && category != match.Doubles {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid match type"})
			return
		}

		doc := matchDocument{
			Date:       sub.Date,
			Players:    sub.Players,
			Winner:     sub.Winner,
			Team1:      sub.Team1,
			Team2:      sub.Team2,
			WinnerTeam: sub.WinnerTeam,
			Games:      sub.Games,
		}
		data, err := yaml.Marshal(doc)
		if err != nil {
			log.Error("Failed to marshal match document", "error", err)
			http.Error(w, "Failed to save match", http.StatusInternalServerError)
			return
		}

		// Round-trip through the parser so an invalid submission is rejected
		// before it lands in the store.
		if _, err := match.Parse(data, category); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		filename := submissionFilename(sub, category)
		if isDryRun {
			log.Info("[Dry Run] Would save match record", "filename", filename)
			respondJSON(w, http.StatusOK, map[string]string{"message": "Match recorded successfully!", "filename": filename})
			return
		}

		key, err := s.Store.Save(r.Context(), category, filename, data)
		if err != nil {
			log.Error("Failed to save match record", "error", err)
			http.Error(w, "Failed to save match", http.StatusInternalServerError)
			return
		}
		log.Info("Saved match record", "key", key)

		if s.events != nil {
			event := pubsub.MatchRecorded{Key: key, Category: string(category), Date: sub.Date}
			if err := s.events.Publish(pubsub.EventMatchRecorded, event); err != nil {
				log.Error("Failed to publish match event", "error", err)
			}
		}

		if _, err := s.Coordinator.Run(r.Context(), false); err != nil {
			log.Error("Rankings regeneration failed after submission", "error", err)
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"message":  "Match saved but rankings update failed. Please check server logs.",
				"filename": filename,
			})
			return
		}

		respondJSON(w, http.StatusOK, map[string]string{"message": "Match recorded successfully!", "filename": filename})
	}
}

// GenerateHandler triggers a generation run on demand.
func (s *Server) GenerateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		result, err := s.Coordinator.Run(r.Context(), isDryRun)
		if err != nil {
			log.Error("Generation run failed", "error", err)
			http.Error(w, "Generation failed", http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"status":       result.Status,
			"generated_at": result.GeneratedAt,
		})
	}
}

// submissionFilename derives a unique record name: the date, a short
// descriptor and a random suffix so two submissions never collide.
func submissionFilename(sub matchSubmission, category match.Category) string {
	suffix := uuid.NewString()[:8]
	if category == match.Singles && len(sub.Players) == 2 {
		p1 := strings.ReplaceAll(sub.Players[0], " ", "-")
		p2 := strings.ReplaceAll(sub.Players[1], " ", "-")
		return fmt.Sprintf("%s-%s-vs-%s-%s.yml", sub.Date, p1, p2, suffix)
	}
	return fmt.Sprintf("%s-%s-%s.yml", sub.Date, category, suffix)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
