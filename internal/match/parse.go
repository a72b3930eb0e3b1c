package match

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// document mirrors the on-disk YAML schema. The score appears either as a
// per-game list (games) or as the legacy single total (score); both are
// normalized to totals per side so nothing downstream branches on schema.
type document struct {
	Date       string     `yaml:"date"`
	Players    []string   `yaml:"players"`
	Winner     string     `yaml:"winner"`
	Team1      []string   `yaml:"team1"`
	Team2      []string   `yaml:"team2"`
	WinnerTeam int        `yaml:"winner_team"`
	Games      []gameDoc  `yaml:"games"`
	Score      *legacyDoc `yaml:"score"`
}

type gameDoc struct {
	Player1Score int `yaml:"player1_score"`
	Player2Score int `yaml:"player2_score"`
	Team1Score   int `yaml:"team1_score"`
	Team2Score   int `yaml:"team2_score"`
}

type legacyDoc struct {
	Player1Games int `yaml:"player1_games"`
	Player2Games int `yaml:"player2_games"`
	Team1Games   int `yaml:"team1_games"`
	Team2Games   int `yaml:"team2_games"`
}

// Parse decodes one match document of the given category.
func Parse(data []byte, category Category) (*Record, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Reason: "invalid YAML", Err: err}
	}

	rec := &Record{Date: doc.Date, Category: category}

	switch category {
	case Singles:
		if len(doc.Players) != 2 {
			return nil, &ParseError{Reason: fmt.Sprintf("expected 2 players, got %d", len(doc.Players))}
		}
		if doc.Winner == "" {
			return nil, &ParseError{Reason: "missing winner"}
		}
		if doc.Winner != doc.Players[0] && doc.Winner != doc.Players[1] {
			return nil, &ValidationError{Reason: fmt.Sprintf("winner %q is not one of the players", doc.Winner)}
		}
		rec.Players = doc.Players
		rec.Winner = doc.Winner
		switch {
		case len(doc.Games) > 0:
			for _, g := range doc.Games {
				rec.Side1Games += g.Player1Score
				rec.Side2Games += g.Player2Score
			}
		case doc.Score != nil:
			rec.Side1Games = doc.Score.Player1Games
			rec.Side2Games = doc.Score.Player2Games
		default:
			return nil, &ParseError{Reason: "missing score in both schemas"}
		}

	case Doubles:
		if len(doc.Team1) == 0 || len(doc.Team2) == 0 {
			return nil, &ParseError{Reason: "missing team players"}
		}
		if doc.WinnerTeam != 1 && doc.WinnerTeam != 2 {
			return nil, &ValidationError{Reason: fmt.Sprintf("winner_team must be 1 or 2, got %d", doc.WinnerTeam)}
		}
		rec.Team1 = doc.Team1
		rec.Team2 = doc.Team2
		rec.WinnerTeam = doc.WinnerTeam
		switch {
		case len(doc.Games) > 0:
			for _, g := range doc.Games {
				rec.Side1Games += g.Team1Score
				rec.Side2Games += g.Team2Score
			}
		case doc.Score != nil:
			rec.Side1Games = doc.Score.Team1Games
			rec.Side2Games = doc.Score.Team2Games
		default:
			return nil, &ParseError{Reason: "missing score in both schemas"}
		}

	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unknown category %q", category)}
	}

	return rec, nil
}
