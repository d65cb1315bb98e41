// Package stats holds the season accumulators that fold per-game records
// into running player and team statistics.
package stats

import (
	"fmt"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/pkg/types"
)

// PlayerStats accumulates one player's statistics across the games of a
// single season with a single team. Totals and rates are never stored:
// every read folds the per-game map, so they can never drift from the
// underlying game data. O(games) per read is acceptable at season sizes
// of tens of games.
type PlayerStats struct {
	Season      int
	GamesPlayed int

	// GameStats holds one entry per recorded game, keyed by match id.
	GameStats map[string]*game.PlayerGameStats

	// Positions is the set of positions played during the season.
	Positions map[types.Position]struct{}
}

// NewPlayerStats creates an empty accumulator for a season. The season
// number must be positive.
func NewPlayerStats(season int) (*PlayerStats, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be positive, got %d", season)
	}
	return &PlayerStats{
		Season:    season,
		GameStats: make(map[string]*game.PlayerGameStats),
		Positions: make(map[types.Position]struct{}),
	}, nil
}

// AddGame records a game under its match id and counts it as played.
// Re-invocation with the same match id overwrites that entry but still
// increments GamesPlayed: ingestion is append-only and deduplication is
// the caller's responsibility.
func (s *PlayerStats) AddGame(matchID string, position types.Position, stats *game.PlayerGameStats) {
	s.GameStats[matchID] = stats
	s.GamesPlayed++
	if position != types.PositionUnknown {
		s.Positions[position] = struct{}{}
	}
}

// HasMatch reports whether a game is already recorded under the match id.
func (s *PlayerStats) HasMatch(matchID string) bool {
	_, ok := s.GameStats[matchID]
	return ok
}

func (s *PlayerStats) sum(get func(*game.PlayerGameStats) int) int {
	total := 0
	for _, g := range s.GameStats {
		total += get(g)
	}
	return total
}

// Goals returns total goals scored in the season.
func (s *PlayerStats) Goals() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.Goals.Int() })
}

// Assists returns total assists in the season.
func (s *PlayerStats) Assists() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.Assists.Int() })
}

// Points returns total points (goals + assists) in the season.
func (s *PlayerStats) Points() int {
	return s.Goals() + s.Assists()
}

// Shots returns total shots on goal in the season.
func (s *PlayerStats) Shots() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.Shots.Int() })
}

// Hits returns total hits delivered in the season.
func (s *PlayerStats) Hits() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.Hits.Int() })
}

// Takeaways returns total takeaways in the season.
func (s *PlayerStats) Takeaways() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.Takeaways.Int() })
}

// Giveaways returns total giveaways in the season.
func (s *PlayerStats) Giveaways() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.Giveaways.Int() })
}

// PenaltyMinutes returns total penalty minutes in the season.
func (s *PlayerStats) PenaltyMinutes() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.PenaltyMinutes.Int() })
}

// PlusMinus returns the season plus/minus.
func (s *PlayerStats) PlusMinus() int {
	return s.sum(func(g *game.PlayerGameStats) int { return g.PlusMinus.Int() })
}

// ShootingPercentage returns season goals over season shots (0-100),
// 0.0 with no shots.
func (s *PlayerStats) ShootingPercentage() float64 {
	shots := s.Shots()
	if shots == 0 {
		return 0.0
	}
	return round2(float64(s.Goals()) / float64(shots) * 100)
}

// PointsPerGame returns season points per game played, 0.0 with no games.
func (s *PlayerStats) PointsPerGame() float64 {
	if s.GamesPlayed == 0 {
		return 0.0
	}
	return round2(float64(s.Points()) / float64(s.GamesPlayed))
}

// TakeawayGiveawayRatio returns season takeaways over giveaways, 0.0
// with no giveaways.
func (s *PlayerStats) TakeawayGiveawayRatio() float64 {
	giveaways := s.Giveaways()
	if giveaways == 0 {
		return 0.0
	}
	return round2(float64(s.Takeaways()) / float64(giveaways))
}

// PositionsPlayed returns the positions recorded this season.
func (s *PlayerStats) PositionsPlayed() []types.Position {
	positions := make([]types.Position, 0, len(s.Positions))
	for _, p := range types.AllPositions {
		if _, ok := s.Positions[p]; ok {
			positions = append(positions, p)
		}
	}
	return positions
}
