package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puckline/proclubs-stats/internal/league"
	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/pkg/types"
)

type stubFetcher struct {
	matches []*game.Match
	err     error
	calls   int
}

func (s *stubFetcher) FetchMatches(ctx context.Context, clubID string, platform types.Platform, matchType types.MatchType) ([]*game.Match, error) {
	s.calls++
	return s.matches, s.err
}

func fi(v int) game.FlexInt { return game.FlexInt{Value: v, Present: true} }

func trackerMatch(matchID string, goals, against int) *game.Match {
	return &game.Match{
		MatchID: matchID,
		Clubs: map[string]*game.ClubGameStats{
			"1000": {TeamSide: fi(0), Goals: fi(goals), GoalsAgainst: fi(against)},
			"2000": {TeamSide: fi(1), Goals: fi(against), GoalsAgainst: fi(goals)},
		},
		Players: map[string]map[string]*game.PlayerGameStats{
			"1000": {
				"ea-p1": {PlayerName: "Sniper", Position: "center", Goals: fi(goals)},
				"ea-p2": {PlayerName: "Wall", Position: "goalie"},
			},
			"2000": {},
		},
		Aggregate: map[string]*game.AggregateStats{"1000": {}, "2000": {}},
	}
}

func newTestTracker(t *testing.T, fetcher MatchFetcher) (*StatsTracker, *league.Registry, *league.LeagueTeam) {
	t.Helper()
	registry := league.NewRegistry()

	team, err := league.NewLeagueTeam("Test Franchise", types.LevelNHL, 1)
	require.NoError(t, err)
	team.EAClubID = "1000"
	require.NoError(t, registry.RegisterTeam(team))

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tracker := NewStatsTracker(fetcher, nil, registry, types.PlatformCommonGen5, types.MatchTypePrivate, 0, logger)
	return tracker, registry, team
}

func TestSyncClub(t *testing.T) {
	fetcher := &stubFetcher{matches: []*game.Match{
		trackerMatch("m1", 4, 2),
		trackerMatch("m2", 1, 3),
	}}
	tracker, registry, team := newTestTracker(t, fetcher)

	result, err := tracker.SyncClub(context.Background(), "1000")
	require.NoError(t, err)

	assert.Equal(t, 2, result.MatchesFetched)
	assert.Equal(t, 2, result.MatchesRecorded)
	assert.Equal(t, 4, result.PlayersUpdated)

	assert.Equal(t, 2, team.Stats.MatchesPlayed)
	assert.Equal(t, 1, team.Stats.Wins)
	assert.Equal(t, 1, team.Stats.Losses)

	sniper := registry.PlayerByEAID("ea-p1")
	require.NotNil(t, sniper)
	assert.Equal(t, "Sniper", sniper.Name)
	bucket := sniper.StatsWithTeam(team.ID)
	require.NotNil(t, bucket)
	assert.Equal(t, 2, bucket.GamesPlayed)
	assert.Equal(t, 5, bucket.Goals())
	assert.Equal(t, []types.Position{types.PositionCenter}, bucket.PositionsPlayed())

	// Opposing club's roster is not ingested.
	assert.Len(t, registry.Players(), 2)
}

func TestSyncClubIdempotent(t *testing.T) {
	fetcher := &stubFetcher{matches: []*game.Match{trackerMatch("m1", 2, 1)}}
	tracker, registry, team := newTestTracker(t, fetcher)

	_, err := tracker.SyncClub(context.Background(), "1000")
	require.NoError(t, err)

	// Re-syncing the same history records nothing new.
	result, err := tracker.SyncClub(context.Background(), "1000")
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchesFetched)
	assert.Equal(t, 0, result.MatchesRecorded)
	assert.Equal(t, 0, result.PlayersUpdated)

	assert.Equal(t, 1, team.Stats.MatchesPlayed)
	bucket := registry.PlayerByEAID("ea-p1").StatsWithTeam(team.ID)
	assert.Equal(t, 1, bucket.GamesPlayed)
}

func TestSyncClubUnknownTeam(t *testing.T) {
	tracker, _, _ := newTestTracker(t, &stubFetcher{})
	_, err := tracker.SyncClub(context.Background(), "9999")
	assert.Error(t, err)
}

func TestSyncClubFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: fmt.Errorf("upstream down")}
	tracker, _, _ := newTestTracker(t, fetcher)
	_, err := tracker.SyncClub(context.Background(), "1000")
	assert.Error(t, err)
}

func TestSyncAllContinuesPastFailures(t *testing.T) {
	fetcher := &stubFetcher{matches: []*game.Match{trackerMatch("m1", 2, 1)}}
	tracker, _, _ := newTestTracker(t, fetcher)

	results := tracker.SyncAll(context.Background(), []string{"9999", "1000"})
	require.Len(t, results, 1)
	assert.Equal(t, "1000", results[0].ClubID)
}
