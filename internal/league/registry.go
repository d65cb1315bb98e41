package league

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/puckline/proclubs-stats/pkg/types"
)

// Registry owns every team and player in the league and provides the
// lookups the ingestion and API layers need. It is an explicit
// dependency handed to its consumers, never shared global state, and is
// safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	teams   map[uuid.UUID]*LeagueTeam
	players map[uuid.UUID]*LeaguePlayer

	teamsByEAClubID map[string]*LeagueTeam
	playersByEAID   map[string]*LeaguePlayer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		teams:           make(map[uuid.UUID]*LeagueTeam),
		players:         make(map[uuid.UUID]*LeaguePlayer),
		teamsByEAClubID: make(map[string]*LeagueTeam),
		playersByEAID:   make(map[string]*LeaguePlayer),
	}
}

// RegisterTeam adds a team to the registry. Registering an id or EA club
// id already known is an error.
func (r *Registry) RegisterTeam(t *LeagueTeam) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[t.ID]; ok {
		return fmt.Errorf("team %s already registered", t.ID)
	}
	if t.EAClubID != "" {
		if existing, ok := r.teamsByEAClubID[t.EAClubID]; ok {
			return fmt.Errorf("EA club id %s already registered to team %s", t.EAClubID, existing.OfficialName)
		}
	}

	r.teams[t.ID] = t
	if t.EAClubID != "" {
		r.teamsByEAClubID[t.EAClubID] = t
	}
	return nil
}

// RegisterPlayer adds a player to the registry. Registering an id or EA
// player id already known is an error.
func (r *Registry) RegisterPlayer(p *LeaguePlayer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[p.ID]; ok {
		return fmt.Errorf("player %s already registered", p.ID)
	}
	if p.EAID != "" {
		if existing, ok := r.playersByEAID[p.EAID]; ok {
			return fmt.Errorf("EA player id %s already registered to player %s", p.EAID, existing.Name)
		}
	}

	r.players[p.ID] = p
	if p.EAID != "" {
		r.playersByEAID[p.EAID] = p
	}
	return nil
}

// EnsurePlayer returns the player registered under the EA player id,
// creating and registering one on first sight. The name and position
// only seed a newly created player; an existing entry is returned as is.
func (r *Registry) EnsurePlayer(eaID, eaName string, position types.Position, season int) (*LeaguePlayer, error) {
	if eaID == "" {
		return nil, fmt.Errorf("EA player id must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.playersByEAID[eaID]; ok {
		return p, nil
	}

	name := eaName
	if name == "" {
		name = eaID
	}
	p, err := NewLeaguePlayer(name, position, season)
	if err != nil {
		return nil, err
	}
	p.EAID = eaID
	p.EAName = eaName

	r.players[p.ID] = p
	r.playersByEAID[eaID] = p
	return p, nil
}

// TeamByID returns the team registered under the id, or nil.
func (r *Registry) TeamByID(id uuid.UUID) *LeagueTeam {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.teams[id]
}

// PlayerByID returns the player registered under the id, or nil.
func (r *Registry) PlayerByID(id uuid.UUID) *LeaguePlayer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[id]
}

// TeamByEAClubID returns the team linked to the EA club id, or nil.
func (r *Registry) TeamByEAClubID(eaClubID string) *LeagueTeam {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.teamsByEAClubID[eaClubID]
}

// PlayerByEAID returns the player linked to the EA player id, or nil.
func (r *Registry) PlayerByEAID(eaID string) *LeaguePlayer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playersByEAID[eaID]
}

// Teams returns all registered teams.
func (r *Registry) Teams() []*LeagueTeam {
	r.mu.RLock()
	defer r.mu.RUnlock()
	teams := make([]*LeagueTeam, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	return teams
}

// Players returns all registered players.
func (r *Registry) Players() []*LeaguePlayer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := make([]*LeaguePlayer, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	return players
}
