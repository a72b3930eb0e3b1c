package rating

// Stats accumulates per-entity results across the fold. Win percentage is
// derived, never stored.
type Stats struct {
	Wins          int
	Losses        int
	GamesWon      int
	GamesLost     int
	MatchesPlayed int
}

// Entry is one row of a ranking list. Exactly one of Player or Team is set,
// depending on the pool.
type Entry struct {
	Rank          int     `json:"rank"`
	Player        string  `json:"player,omitempty"`
	Team          string  `json:"team,omitempty"`
	Rating        float64 `json:"rating"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPct        float64 `json:"win_pct"`
	GamesWon      int     `json:"games_won"`
	GamesLost     int     `json:"games_lost"`
	MatchesPlayed int     `json:"matches_played"`
}

// pool is one independent rating namespace. Entities keep their first-seen
// position in order, which is what breaks rating ties deterministically.
type pool struct {
	ratings map[string]float64
	stats   map[string]*Stats
	order   []string
}

func newPool() *pool {
	return &pool{
		ratings: make(map[string]float64),
		stats:   make(map[string]*Stats),
	}
}

// touch registers an entity at the default rating on first appearance.
func (p *pool) touch(id string) {
	if _, ok := p.ratings[id]; ok {
		return
	}
	p.ratings[id] = DefaultRating
	p.stats[id] = &Stats{}
	p.order = append(p.order, id)
}
