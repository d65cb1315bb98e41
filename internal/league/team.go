package league

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/internal/stats"
	"github.com/puckline/proclubs-stats/pkg/types"
)

// LeagueTeam is a franchise competing at one league level. It tracks a
// current roster, an all-time roster that only ever grows, a management
// group, and the team's season accumulator.
type LeagueTeam struct {
	ID           uuid.UUID
	OfficialName string
	LeagueLevel  types.LeagueLevel

	// EA Pro Clubs integration
	EAClubID   string
	EAClubName string

	Stats *stats.TeamStats

	// CurrentRoster holds players presently on the team. HistoricalPlayers
	// holds everyone who ever was; entries are never removed.
	CurrentRoster     map[uuid.UUID]*LeaguePlayer
	HistoricalPlayers map[uuid.UUID]*LeaguePlayer

	// Management maps player ids to their role on this team.
	Management map[uuid.UUID]types.ManagerRole
}

// NewLeagueTeam creates a team with a generated id and an empty season
// accumulator.
func NewLeagueTeam(name string, level types.LeagueLevel, season int) (*LeagueTeam, error) {
	if name == "" {
		return nil, fmt.Errorf("team name must not be empty")
	}
	teamStats, err := stats.NewTeamStats(season)
	if err != nil {
		return nil, err
	}
	return &LeagueTeam{
		ID:                uuid.New(),
		OfficialName:      name,
		LeagueLevel:       level,
		Stats:             teamStats,
		CurrentRoster:     make(map[uuid.UUID]*LeaguePlayer),
		HistoricalPlayers: make(map[uuid.UUID]*LeaguePlayer),
		Management:        make(map[uuid.UUID]types.ManagerRole),
	}, nil
}

// AddRosterPlayer puts a player on the current roster and the all-time
// roster, and initializes the player's stat bucket with this team on
// first contact. Adding a player already rostered is a no-op.
func (t *LeagueTeam) AddRosterPlayer(p *LeaguePlayer) {
	t.CurrentRoster[p.ID] = p
	t.HistoricalPlayers[p.ID] = p
	p.JoinTeam(t.ID)
}

// RemoveRosterPlayer takes a player off the current roster. A player
// holding a management role cannot be removed this way; the call is a
// silent no-op until the role is removed first. The all-time roster is
// untouched. An id the team has never seen is an error.
func (t *LeagueTeam) RemoveRosterPlayer(playerID uuid.UUID) error {
	if _, ok := t.HistoricalPlayers[playerID]; !ok {
		return fmt.Errorf("player %s has never been on team %s", playerID, t.OfficialName)
	}
	if _, isManager := t.Management[playerID]; isManager {
		return nil
	}
	if p, ok := t.CurrentRoster[playerID]; ok {
		delete(t.CurrentRoster, playerID)
		if p.CurrentTeam == t.ID {
			p.LeaveTeam()
		}
	}
	return nil
}

// AddManager rosters the player if needed and assigns a management role.
// Managers are players first; they appear on the roster like anyone else.
func (t *LeagueTeam) AddManager(p *LeaguePlayer, role types.ManagerRole) {
	t.AddRosterPlayer(p)
	t.Management[p.ID] = role
	p.Manager = &ManagerInfo{Role: role, IsActive: true}
}

// RemoveManager strips a player's management role, leaving them on the
// roster as a regular player. An id without a role is an error.
func (t *LeagueTeam) RemoveManager(playerID uuid.UUID) error {
	if _, ok := t.Management[playerID]; !ok {
		return fmt.Errorf("player %s is not a manager of team %s", playerID, t.OfficialName)
	}
	delete(t.Management, playerID)
	if p, ok := t.HistoricalPlayers[playerID]; ok && p.Manager != nil {
		p.Manager.IsActive = false
	}
	return nil
}

// ManagerRole returns the player's role on this team, if any.
func (t *LeagueTeam) ManagerRole(playerID uuid.UUID) (types.ManagerRole, bool) {
	role, ok := t.Management[playerID]
	return role, ok
}

// RecordMatch folds the team's own club line from a match into the
// season accumulator. A match whose clubs map does not contain this
// team's EA club id is not our match and is skipped; so is a match id
// already recorded. Returns whether the match was folded in.
func (t *LeagueTeam) RecordMatch(m *game.Match) bool {
	club, ok := m.Clubs[t.EAClubID]
	if !ok || club == nil {
		return false
	}
	if t.Stats.HasMatch(m.MatchID) {
		return false
	}
	t.Stats.AddMatch(m.MatchID, club)
	return true
}
