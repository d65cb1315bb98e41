package league

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/pkg/types"
)

func newTestTeam(t *testing.T) *LeagueTeam {
	t.Helper()
	team, err := NewLeagueTeam("Test Franchise", types.LevelNHL, 1)
	require.NoError(t, err)
	team.EAClubID = "1000"
	return team
}

func newTestPlayer(t *testing.T) *LeaguePlayer {
	t.Helper()
	p, err := NewLeaguePlayer("Test Player", types.PositionCenter, 1)
	require.NoError(t, err)
	return p
}

func TestNewLeaguePlayerValidation(t *testing.T) {
	_, err := NewLeaguePlayer("", types.PositionCenter, 1)
	assert.Error(t, err)
	_, err = NewLeaguePlayer("Someone", types.PositionCenter, 0)
	assert.Error(t, err)
}

func TestPlayerTeamHistorySurvivesMoves(t *testing.T) {
	p := newTestPlayer(t)
	teamA, teamB := uuid.New(), uuid.New()

	p.JoinTeam(teamA)
	assert.Equal(t, teamA, p.CurrentTeam)
	p.AddGameStats(teamA, "m1", &game.PlayerGameStats{
		Goals: game.FlexInt{Value: 2, Present: true},
	})

	p.LeaveTeam()
	assert.Equal(t, uuid.Nil, p.CurrentTeam)

	p.JoinTeam(teamB)
	p.AddGameStats(teamB, "m2", &game.PlayerGameStats{
		Goals: game.FlexInt{Value: 1, Present: true},
	})

	// Both buckets remain, independently.
	require.NotNil(t, p.StatsWithTeam(teamA))
	require.NotNil(t, p.StatsWithTeam(teamB))
	assert.Equal(t, 2, p.StatsWithTeam(teamA).Goals())
	assert.Equal(t, 1, p.StatsWithTeam(teamB).Goals())
	assert.Len(t, p.TeamsPlayedFor(), 2)

	assert.Nil(t, p.StatsWithTeam(uuid.New()))
}

func TestRosterManagerProtection(t *testing.T) {
	team := newTestTeam(t)
	manager := newTestPlayer(t)
	skater := newTestPlayer(t)

	team.AddManager(manager, types.RoleGM)
	team.AddRosterPlayer(skater)

	require.True(t, manager.IsManager())
	role, ok := team.ManagerRole(manager.ID)
	require.True(t, ok)
	assert.Equal(t, types.RoleGM, role)

	// Removing a manager from the roster is silently refused.
	require.NoError(t, team.RemoveRosterPlayer(manager.ID))
	assert.Contains(t, team.CurrentRoster, manager.ID)

	// Unknown ids are an error.
	assert.Error(t, team.RemoveRosterPlayer(uuid.New()))

	// Regular players come off the roster but stay in history.
	require.NoError(t, team.RemoveRosterPlayer(skater.ID))
	assert.NotContains(t, team.CurrentRoster, skater.ID)
	assert.Contains(t, team.HistoricalPlayers, skater.ID)

	// Once the role is gone the former manager can be removed too.
	require.NoError(t, team.RemoveManager(manager.ID))
	assert.False(t, manager.IsManager())
	assert.Error(t, team.RemoveManager(manager.ID))
	require.NoError(t, team.RemoveRosterPlayer(manager.ID))
	assert.NotContains(t, team.CurrentRoster, manager.ID)
}

func TestTeamRecordMatch(t *testing.T) {
	team := newTestTeam(t)

	m := &game.Match{
		MatchID: "m1",
		Clubs: map[string]*game.ClubGameStats{
			"1000": {
				Goals:        game.FlexInt{Value: 3, Present: true},
				GoalsAgainst: game.FlexInt{Value: 1, Present: true},
			},
		},
	}

	assert.True(t, team.RecordMatch(m))
	assert.Equal(t, 1, team.Stats.MatchesPlayed)
	assert.Equal(t, 1, team.Stats.Wins)

	// Same match id is skipped on re-ingestion.
	assert.False(t, team.RecordMatch(m))
	assert.Equal(t, 1, team.Stats.MatchesPlayed)

	// A match without our club is not our match.
	other := &game.Match{
		MatchID: "m2",
		Clubs:   map[string]*game.ClubGameStats{"9999": {}},
	}
	assert.False(t, team.RecordMatch(other))
	assert.Equal(t, 1, team.Stats.MatchesPlayed)
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry()

	team := newTestTeam(t)
	require.NoError(t, r.RegisterTeam(team))
	assert.Error(t, r.RegisterTeam(team))

	other := newTestTeam(t)
	// Same EA club id on a fresh uuid is still a duplicate.
	assert.Error(t, r.RegisterTeam(other))

	p := newTestPlayer(t)
	p.EAID = "ea-1"
	require.NoError(t, r.RegisterPlayer(p))
	assert.Error(t, r.RegisterPlayer(p))

	assert.Same(t, team, r.TeamByID(team.ID))
	assert.Same(t, team, r.TeamByEAClubID("1000"))
	assert.Same(t, p, r.PlayerByID(p.ID))
	assert.Same(t, p, r.PlayerByEAID("ea-1"))
	assert.Nil(t, r.TeamByID(uuid.New()))
	assert.Nil(t, r.PlayerByEAID("nobody"))
}

func TestRegistryEnsurePlayer(t *testing.T) {
	r := NewRegistry()

	first, err := r.EnsurePlayer("ea-42", "Sniper", types.PositionRightWing, 1)
	require.NoError(t, err)
	assert.Equal(t, "Sniper", first.Name)
	assert.Equal(t, "ea-42", first.EAID)

	// Second sight of the same EA id returns the same player.
	second, err := r.EnsurePlayer("ea-42", "Renamed", types.PositionCenter, 1)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, "Sniper", second.Name)

	// Blank EA names fall back to the id.
	anon, err := r.EnsurePlayer("ea-43", "", types.PositionGoalie, 1)
	require.NoError(t, err)
	assert.Equal(t, "ea-43", anon.Name)

	_, err = r.EnsurePlayer("", "NoID", types.PositionCenter, 1)
	assert.Error(t, err)

	assert.Len(t, r.Players(), 2)
}
