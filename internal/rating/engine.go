package rating

import (
	"math"
	"sort"

	"github.com/lborup/dinkhouse/internal/match"
)

const (
	// KFactor controls rating volatility per match.
	KFactor = 32.0
	// DefaultRating is every entity's rating before its first match.
	DefaultRating = 1200.0
)

// Expected returns the expected score of a rated a against a rated b.
// Expected(a, b) + Expected(b, a) == 1 for all finite inputs.
func Expected(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (b-a)/400.0))
}

// updateElo applies one rating update to a winner/loser pair.
func updateElo(winner, loser float64) (float64, float64) {
	newWinner := winner + KFactor*(1-Expected(winner, loser))
	newLoser := loser + KFactor*(0-Expected(loser, winner))
	return newWinner, newLoser
}

// Engine folds chronologically ordered match records into the three rating
// pools. Each run owns a fresh Engine; no state survives a run boundary.
type Engine struct {
	singles           *pool
	doublesTeams      *pool
	doublesIndividual *pool
}

// NewEngine creates an Engine with empty pools.
func NewEngine() *Engine {
	return &Engine{
		singles:           newPool(),
		doublesTeams:      newPool(),
		doublesIndividual: newPool(),
	}
}

// ProcessSingles applies one singles match to the singles pool.
func (e *Engine) ProcessSingles(rec *match.Record) {
	player1, player2 := rec.Players[0], rec.Players[1]
	winner := rec.Winner
	loser := player1
	if winner == player1 {
		loser = player2
	}

	p := e.singles
	p.touch(player1)
	p.touch(player2)

	p.ratings[winner], p.ratings[loser] = updateElo(p.ratings[winner], p.ratings[loser])

	p.stats[winner].Wins++
	p.stats[loser].Losses++
	p.stats[player1].GamesWon += rec.Side1Games
	p.stats[player1].GamesLost += rec.Side2Games
	p.stats[player2].GamesWon += rec.Side2Games
	p.stats[player2].GamesLost += rec.Side1Games
	p.stats[player1].MatchesPlayed++
	p.stats[player2].MatchesPlayed++
}

// ProcessDoubles applies one doubles match to both doubles pools: one ELO
// update between the canonical team identifiers, and one update between the
// averaged side ratings whose delta is shared by every player on the side.
// The shared delta preserves the team-level zero sum; it is deliberately
// not an independent per-player ELO.
func (e *Engine) ProcessDoubles(rec *match.Record) {
	team1ID := match.TeamID(rec.Team1)
	team2ID := match.TeamID(rec.Team2)

	winnerID, loserID := team1ID, team2ID
	winnerPlayers, loserPlayers := rec.Team1, rec.Team2
	winnerGames, loserGames := rec.Side1Games, rec.Side2Games
	if rec.WinnerTeam == 2 {
		winnerID, loserID = team2ID, team1ID
		winnerPlayers, loserPlayers = rec.Team2, rec.Team1
		winnerGames, loserGames = rec.Side2Games, rec.Side1Games
	}

	teams := e.doublesTeams
	teams.touch(team1ID)
	teams.touch(team2ID)

	teams.ratings[winnerID], teams.ratings[loserID] = updateElo(teams.ratings[winnerID], teams.ratings[loserID])

	teams.stats[winnerID].Wins++
	teams.stats[loserID].Losses++
	teams.stats[team1ID].GamesWon += rec.Side1Games
	teams.stats[team1ID].GamesLost += rec.Side2Games
	teams.stats[team2ID].GamesWon += rec.Side2Games
	teams.stats[team2ID].GamesLost += rec.Side1Games
	teams.stats[team1ID].MatchesPlayed++
	teams.stats[team2ID].MatchesPlayed++

	indiv := e.doublesIndividual
	for _, player := range winnerPlayers {
		indiv.touch(player)
	}
	for _, player := range loserPlayers {
		indiv.touch(player)
	}

	avgWinner := averageRating(indiv, winnerPlayers)
	avgLoser := averageRating(indiv, loserPlayers)
	newWinnerAvg, newLoserAvg := updateElo(avgWinner, avgLoser)
	winnerDelta := newWinnerAvg - avgWinner
	loserDelta := newLoserAvg - avgLoser

	for _, player := range winnerPlayers {
		indiv.ratings[player] += winnerDelta
		indiv.stats[player].Wins++
		indiv.stats[player].GamesWon += winnerGames
		indiv.stats[player].GamesLost += loserGames
		indiv.stats[player].MatchesPlayed++
	}
	for _, player := range loserPlayers {
		indiv.ratings[player] += loserDelta
		indiv.stats[player].Losses++
		indiv.stats[player].GamesWon += loserGames
		indiv.stats[player].GamesLost += winnerGames
		indiv.stats[player].MatchesPlayed++
	}
}

func averageRating(p *pool, players []string) float64 {
	var sum float64
	for _, player := range players {
		sum += p.ratings[player]
	}
	return sum / float64(len(players))
}

// SinglesRankings returns the singles pool sorted and ranked.
func (e *Engine) SinglesRankings() []Entry {
	return e.singles.rankings(false)
}

// DoublesTeamRankings returns the doubles team pool sorted and ranked.
func (e *Engine) DoublesTeamRankings() []Entry {
	return e.doublesTeams.rankings(true)
}

// DoublesIndividualRankings returns the individual doubles pool sorted and ranked.
func (e *Engine) DoublesIndividualRankings() []Entry {
	return e.doublesIndividual.rankings(false)
}

// rankings builds the ranked list: ratings rounded to one decimal, sorted
// descending on the rounded value, ties keeping first-seen order, then
// assigned 1-based ranks.
func (p *pool) rankings(team bool) []Entry {
	entries := make([]Entry, 0, len(p.order))
	for _, id := range p.order {
		stats := p.stats[id]
		winPct := 0.0
		if stats.MatchesPlayed > 0 {
			winPct = float64(stats.Wins) / float64(stats.MatchesPlayed) * 100
		}
		entry := Entry{
			Rating:        round1(p.ratings[id]),
			Wins:          stats.Wins,
			Losses:        stats.Losses,
			WinPct:        round1(winPct),
			GamesWon:      stats.GamesWon,
			GamesLost:     stats.GamesLost,
			MatchesPlayed: stats.MatchesPlayed,
		}
		if team {
			entry.Team = id
		} else {
			entry.Player = id
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rating > entries[j].Rating
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
