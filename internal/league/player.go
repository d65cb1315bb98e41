// Package league holds the long-lived domain entities (players, teams
// and the registry that owns them) layered over the per-game records
// and season accumulators.
package league

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/internal/stats"
	"github.com/puckline/proclubs-stats/pkg/types"
)

// ManagerInfo describes a player's management responsibilities.
type ManagerInfo struct {
	Role     types.ManagerRole
	IsActive bool
}

// LeaguePlayer is a league participant. All participants, managers
// included, are players first. The same human keeps an independent stat
// bucket per team played for, so moving teams never merges or discards
// history.
type LeaguePlayer struct {
	ID       uuid.UUID
	Name     string
	Position types.Position

	// EA Pro Clubs integration
	EAID   string
	EAName string

	Manager *ManagerInfo

	CurrentSeason int

	// TeamStats maps a league team id to this player's stats with that
	// team. Entries are never deleted; its keys are the teams ever
	// played for.
	TeamStats map[uuid.UUID]*stats.PlayerStats

	// CurrentTeam is uuid.Nil for a free agent.
	CurrentTeam uuid.UUID
}

// NewLeaguePlayer creates a player with a generated id. The season
// number must be positive.
func NewLeaguePlayer(name string, position types.Position, season int) (*LeaguePlayer, error) {
	if name == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}
	if season <= 0 {
		return nil, fmt.Errorf("season must be positive, got %d", season)
	}
	return &LeaguePlayer{
		ID:            uuid.New(),
		Name:          name,
		Position:      position,
		CurrentSeason: season,
		TeamStats:     make(map[uuid.UUID]*stats.PlayerStats),
	}, nil
}

// JoinTeam records the player joining a team, initializing an empty stat
// bucket on first contact with that team.
func (p *LeaguePlayer) JoinTeam(teamID uuid.UUID) {
	p.CurrentTeam = teamID
	p.ensureTeamStats(teamID)
}

// LeaveTeam clears the current team. The per-team stat buckets are kept;
// history survives leaving.
func (p *LeaguePlayer) LeaveTeam() {
	p.CurrentTeam = uuid.Nil
}

// AddGameStats records one game's line against the player's bucket for
// the given team, counting the player's currently assigned position in
// the season's position set. Stats land in that team's bucket even when
// it is not the current team. Ingestion is append-only: a repeated match
// id still increments the games-played counter, and dedup is the
// caller's concern.
func (p *LeaguePlayer) AddGameStats(teamID uuid.UUID, matchID string, gs *game.PlayerGameStats) {
	bucket := p.ensureTeamStats(teamID)
	bucket.AddGame(matchID, p.Position, gs)
}

// StatsWithTeam returns the player's bucket for a team, or nil if the
// player never played for it.
func (p *LeaguePlayer) StatsWithTeam(teamID uuid.UUID) *stats.PlayerStats {
	return p.TeamStats[teamID]
}

// TeamsPlayedFor returns the ids of every team the player has a stat
// bucket with, the current team included.
func (p *LeaguePlayer) TeamsPlayedFor() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.TeamStats))
	for id := range p.TeamStats {
		ids = append(ids, id)
	}
	return ids
}

// IsManager reports whether the player holds an active management role.
func (p *LeaguePlayer) IsManager() bool {
	return p.Manager != nil && p.Manager.IsActive
}

func (p *LeaguePlayer) ensureTeamStats(teamID uuid.UUID) *stats.PlayerStats {
	if bucket, ok := p.TeamStats[teamID]; ok {
		return bucket
	}
	bucket := &stats.PlayerStats{
		Season:    p.CurrentSeason,
		GameStats: make(map[string]*game.PlayerGameStats),
		Positions: make(map[types.Position]struct{}),
	}
	p.TeamStats[teamID] = bucket
	return bucket
}
