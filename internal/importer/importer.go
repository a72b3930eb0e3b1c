// Package importer copies the YAML match history into the relational league
// database. It exists for the transition off flat files: the YAML records
// stay the source of truth for rankings, the database serves ad-hoc queries.
package importer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lborup/dinkhouse/internal/match"
)

const (
	// LeagueName identifies the default league row matches are attached to.
	LeagueName  = "Pickleball League"
	leagueSport = "Pickleball"
)

// Summary reports what one import run did. Records already present in the
// database count as skipped, so re-running the importer is harmless.
type Summary struct {
	Singles int
	Doubles int
	Skipped int
	Players int
}

// Importer reads match records from the store and writes them to the
// database.
type Importer struct {
	db    *sql.DB
	store *match.Store

	playerIDs map[string]int64
	teamIDs   map[string]int64
	leagueID  int64
}

// New creates an Importer.
func New(db *sql.DB, store *match.Store) *Importer {
	return &Importer{
		db:        db,
		store:     store,
		playerIDs: make(map[string]int64),
		teamIDs:   make(map[string]int64),
	}
}

// Run imports every readable match record. Malformed records are skipped and
// logged, matching how ranking generation treats them.
func (i *Importer) Run(ctx context.Context) (*Summary, error) {
	if err := i.ensureLeague(ctx); err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, category := range match.Categories {
		handles, err := i.store.List(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("failed to enumerate %s records: %w", category, err)
		}
		for _, h := range handles {
			rec, err := i.store.Load(ctx, category, h)
			if err != nil {
				log.Warn("Skipping match record", "key", h.Key, "error", err)
				summary.Skipped++
				continue
			}
			inserted, err := i.importRecord(ctx, h.Key, rec)
			if err != nil {
				return nil, fmt.Errorf("failed to import %s: %w", h.Key, err)
			}
			if !inserted {
				summary.Skipped++
				continue
			}
			switch category {
			case match.Singles:
				summary.Singles++
			case match.Doubles:
				summary.Doubles++
			}
		}
	}
	summary.Players = len(i.playerIDs)
	log.Info("Import complete", "singles", summary.Singles, "doubles", summary.Doubles,
		"skipped", summary.Skipped, "players", summary.Players)
	return summary, nil
}

func (i *Importer) ensureLeague(ctx context.Context) error {
	err := i.db.QueryRowContext(ctx,
		"SELECT id FROM leagues WHERE name = ? AND sport = ?", LeagueName, leagueSport).Scan(&i.leagueID)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up league: %w", err)
	}
	res, err := i.db.ExecContext(ctx,
		"INSERT INTO leagues (name, sport, status) VALUES (?, ?, 'active')", LeagueName, leagueSport)
	if err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}
	i.leagueID, err = res.LastInsertId()
	return err
}

func (i *Importer) importRecord(ctx context.Context, key string, rec *match.Record) (bool, error) {
	switch rec.Category {
	case match.Singles:
		return i.importSingles(ctx, key, rec)
	case match.Doubles:
		return i.importDoubles(ctx, key, rec)
	}
	return false, fmt.Errorf("unknown category %q", rec.Category)
}

func (i *Importer) importSingles(ctx context.Context, key string, rec *match.Record) (bool, error) {
	p1, err := i.playerID(ctx, rec.Players[0])
	if err != nil {
		return false, err
	}
	p2, err := i.playerID(ctx, rec.Players[1])
	if err != nil {
		return false, err
	}
	winner, loser := p1, p2
	if rec.Winner == rec.Players[1] {
		winner, loser = p2, p1
	}

	res, err := i.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO matches (
			league_id, date, type, player1_id, player2_id,
			score_side1, score_side2, winner_id, loser_id, source_key
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.leagueID, rec.Date, string(match.Singles), p1, p2,
		rec.Side1Games, rec.Side2Games, winner, loser, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (i *Importer) importDoubles(ctx context.Context, key string, rec *match.Record) (bool, error) {
	t1, err := i.teamID(ctx, rec.Team1)
	if err != nil {
		return false, err
	}
	t2, err := i.teamID(ctx, rec.Team2)
	if err != nil {
		return false, err
	}
	winner, loser := t1, t2
	if rec.WinnerTeam == 2 {
		winner, loser = t2, t1
	}

	res, err := i.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO matches (
			league_id, date, type, team1_id, team2_id,
			score_side1, score_side2, winner_team_id, loser_team_id, source_key
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.leagueID, rec.Date, string(match.Doubles), t1, t2,
		rec.Side1Games, rec.Side2Games, winner, loser, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (i *Importer) playerID(ctx context.Context, name string) (int64, error) {
	if id, ok := i.playerIDs[name]; ok {
		return id, nil
	}
	var id int64
	err := i.db.QueryRowContext(ctx, "SELECT id FROM players WHERE name = ?", name).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := i.db.ExecContext(ctx, "INSERT INTO players (name) VALUES (?)", name)
		if err != nil {
			return 0, fmt.Errorf("failed to create player %q: %w", name, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, fmt.Errorf("failed to look up player %q: %w", name, err)
	}
	i.playerIDs[name] = id
	return id, nil
}

func (i *Importer) teamID(ctx context.Context, members []string) (int64, error) {
	name := match.TeamID(members)
	if id, ok := i.teamIDs[name]; ok {
		return id, nil
	}

	memberIDs := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := i.playerID(ctx, m)
		if err != nil {
			return 0, err
		}
		memberIDs = append(memberIDs, id)
	}
	var second any
	if len(memberIDs) > 1 {
		second = memberIDs[1]
	}

	var id int64
	err := i.db.QueryRowContext(ctx,
		"SELECT id FROM teams WHERE name = ? AND league_id = ?", name, i.leagueID).Scan(&id)
	if err == sql.ErrNoRows {
		res, err := i.db.ExecContext(ctx,
			"INSERT INTO teams (name, league_id, player1_id, player2_id) VALUES (?, ?, ?, ?)",
			name, i.leagueID, memberIDs[0], second)
		if err != nil {
			return 0, fmt.Errorf("failed to create team %q: %w", name, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, fmt.Errorf("failed to look up team %q: %w", name, err)
	}
	i.teamIDs[name] = id
	return id, nil
}
