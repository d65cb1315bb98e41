package stats

import (
	"fmt"
	"math"

	"github.com/puckline/proclubs-stats/internal/models/game"
)

// TeamStats accumulates one team's statistics across the matches of a
// season. Unlike PlayerStats, totals are maintained incrementally at
// write time: team ingestion happens once per match at a coarser grain
// than player-game ingestion, so the incremental form stays cheap and
// simple. Derived rates remain computed on read.
type TeamStats struct {
	Season        int
	MatchesPlayed int

	// Matches holds one club line per recorded match, keyed by match id.
	Matches map[string]*game.ClubGameStats

	Wins         int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	Shots        int
	ShotsAgainst int

	PowerplayGoals         int
	PowerplayOpportunities int
	// Shorthanded counters exist for reporting parity but are never fed
	// by AddMatch: the upstream club line carries no shorthanded data.
	PenaltyKillGoalsAgainst  int
	PenaltyKillOpportunities int

	TimeOnAttack int
}

// NewTeamStats creates an empty accumulator for a season. The season
// number must be positive.
func NewTeamStats(season int) (*TeamStats, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be positive, got %d", season)
	}
	return &TeamStats{
		Season:  season,
		Matches: make(map[string]*game.ClubGameStats),
	}, nil
}

// AddMatch records a club line under its match id and folds it into the
// running totals. A match is a win iff more goals were scored than
// conceded in that match; anything else, tied scores included, counts
// as a loss. Deduplication by match id is the caller's responsibility.
func (s *TeamStats) AddMatch(matchID string, stats *game.ClubGameStats) {
	s.Matches[matchID] = stats
	s.MatchesPlayed++

	if stats.Goals.Int() > stats.GoalsAgainst.Int() {
		s.Wins++
	} else {
		s.Losses++
	}

	s.GoalsFor += stats.Goals.Int()
	s.GoalsAgainst += stats.GoalsAgainst.Int()
	s.Shots += stats.Shots.Int()
	s.PowerplayGoals += stats.PowerplayGoals.Int()
	s.PowerplayOpportunities += stats.PowerplayOpportunities.Int()
	s.TimeOnAttack += stats.TimeOnAttack.Int()
}

// HasMatch reports whether a match is already recorded under the id.
func (s *TeamStats) HasMatch(matchID string) bool {
	_, ok := s.Matches[matchID]
	return ok
}

// Points returns season standings points (2 for a win, 0 for a loss).
func (s *TeamStats) Points() int {
	return s.Wins * 2
}

// WinPercentage returns wins over matches played (0-100), 0.0 with no
// matches.
func (s *TeamStats) WinPercentage() float64 {
	if s.MatchesPlayed == 0 {
		return 0.0
	}
	return round2(float64(s.Wins) / float64(s.MatchesPlayed) * 100)
}

// GoalsPerGame returns average goals scored per match, 0.0 with no
// matches.
func (s *TeamStats) GoalsPerGame() float64 {
	if s.MatchesPlayed == 0 {
		return 0.0
	}
	return round2(float64(s.GoalsFor) / float64(s.MatchesPlayed))
}

// GoalsAgainstPerGame returns average goals conceded per match.
func (s *TeamStats) GoalsAgainstPerGame() float64 {
	if s.MatchesPlayed == 0 {
		return 0.0
	}
	return round2(float64(s.GoalsAgainst) / float64(s.MatchesPlayed))
}

// GoalDifferential returns goals for minus goals against.
func (s *TeamStats) GoalDifferential() int {
	return s.GoalsFor - s.GoalsAgainst
}

// ShootingPercentage returns goals for over shots (0-100), 0.0 with no
// shots.
func (s *TeamStats) ShootingPercentage() float64 {
	if s.Shots == 0 {
		return 0.0
	}
	return round2(float64(s.GoalsFor) / float64(s.Shots) * 100)
}

// PowerplayPercentage returns powerplay conversions over opportunities
// (0-100), 0.0 with no opportunities.
func (s *TeamStats) PowerplayPercentage() float64 {
	if s.PowerplayOpportunities == 0 {
		return 0.0
	}
	return round2(float64(s.PowerplayGoals) / float64(s.PowerplayOpportunities) * 100)
}

// PenaltyKillPercentage returns the share of shorthanded situations
// survived (0-100). A team that has never been shorthanded has a
// perfect record by convention: 100.0, not 0.0.
func (s *TeamStats) PenaltyKillPercentage() float64 {
	if s.PenaltyKillOpportunities == 0 {
		return 100.0
	}
	prevented := s.PenaltyKillOpportunities - s.PenaltyKillGoalsAgainst
	return round2(float64(prevented) / float64(s.PenaltyKillOpportunities) * 100)
}

// TimeOnAttackPerGame returns average seconds on attack per match.
func (s *TeamStats) TimeOnAttackPerGame() float64 {
	if s.MatchesPlayed == 0 {
		return 0.0
	}
	return round2(float64(s.TimeOnAttack) / float64(s.MatchesPlayed))
}

// round2 rounds to the two decimal places every derived rate reports.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
