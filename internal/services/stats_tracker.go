package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/puckline/proclubs-stats/internal/league"
	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/internal/providers/eaapi"
	"github.com/puckline/proclubs-stats/pkg/types"
)

// MatchFetcher is the slice of the EA API client the tracker needs.
type MatchFetcher interface {
	FetchMatches(ctx context.Context, clubID string, platform types.Platform, matchType types.MatchType) ([]*game.Match, error)
}

var _ MatchFetcher = (*eaapi.Client)(nil)

// SyncResult reports what one club sync did.
type SyncResult struct {
	ClubID          string `json:"club_id"`
	MatchesFetched  int    `json:"matches_fetched"`
	MatchesRecorded int    `json:"matches_recorded"`
	PlayersUpdated  int    `json:"players_updated"`
}

// StatsTracker pulls a club's match history from the EA API and folds
// it into the league registry: the team's season accumulator plus a
// per-team stat bucket for every player appearing in the match. Matches
// already recorded against the team are skipped, so re-syncing the same
// history is idempotent.
type StatsTracker struct {
	fetcher   MatchFetcher
	cache     *CacheService
	registry  *league.Registry
	logger    *logrus.Logger
	platform  types.Platform
	matchType types.MatchType
	cacheTTL  time.Duration

	mu sync.Mutex
}

// NewStatsTracker wires the tracker. The cache may be nil, in which case
// every sync hits the EA API directly.
func NewStatsTracker(
	fetcher MatchFetcher,
	cache *CacheService,
	registry *league.Registry,
	platform types.Platform,
	matchType types.MatchType,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *StatsTracker {
	return &StatsTracker{
		fetcher:   fetcher,
		cache:     cache,
		registry:  registry,
		logger:    logger,
		platform:  platform,
		matchType: matchType,
		cacheTTL:  cacheTTL,
	}
}

// SyncClub fetches and ingests one club's match history. The club must
// be linked to a registered team via its EA club id.
func (t *StatsTracker) SyncClub(ctx context.Context, eaClubID string) (*SyncResult, error) {
	team := t.registry.TeamByEAClubID(eaClubID)
	if team == nil {
		return nil, fmt.Errorf("no registered team for EA club id %s", eaClubID)
	}

	matches, err := t.fetchMatches(ctx, eaClubID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	result := &SyncResult{ClubID: eaClubID, MatchesFetched: len(matches)}
	for _, m := range matches {
		if !team.RecordMatch(m) {
			continue
		}
		result.MatchesRecorded++
		result.PlayersUpdated += t.recordPlayers(team, m, eaClubID)
	}

	t.logger.WithFields(logrus.Fields{
		"component":        "stats_tracker",
		"club_id":          eaClubID,
		"matches_fetched":  result.MatchesFetched,
		"matches_recorded": result.MatchesRecorded,
		"players_updated":  result.PlayersUpdated,
	}).Info("Club sync complete")

	return result, nil
}

// SyncAll syncs every configured club, continuing past per-club
// failures.
func (t *StatsTracker) SyncAll(ctx context.Context, eaClubIDs []string) []*SyncResult {
	results := make([]*SyncResult, 0, len(eaClubIDs))
	for _, clubID := range eaClubIDs {
		res, err := t.SyncClub(ctx, clubID)
		if err != nil {
			t.logger.WithFields(logrus.Fields{
				"component": "stats_tracker",
				"club_id":   clubID,
				"error":     err.Error(),
			}).Error("Club sync failed")
			continue
		}
		results = append(results, res)
	}
	return results
}

// FetchClubMatches returns a club's recent match history, served from
// cache when fresh. It does not fold anything into the registry.
func (t *StatsTracker) FetchClubMatches(ctx context.Context, eaClubID string) ([]*game.Match, error) {
	return t.fetchMatches(ctx, eaClubID)
}

func (t *StatsTracker) fetchMatches(ctx context.Context, eaClubID string) ([]*game.Match, error) {
	cacheKey := MatchesCacheKey(eaClubID, string(t.platform), string(t.matchType))

	if t.cache != nil {
		var cached []*game.Match
		if err := t.cache.Get(ctx, cacheKey, &cached); err == nil {
			t.logger.WithFields(logrus.Fields{
				"component": "stats_tracker",
				"club_id":   eaClubID,
				"matches":   len(cached),
			}).Debug("Using cached match history")
			return cached, nil
		}
	}

	matches, err := t.fetcher.FetchMatches(ctx, eaClubID, t.platform, t.matchType)
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		if err := t.cache.Set(ctx, cacheKey, matches, t.cacheTTL); err != nil {
			t.logger.WithFields(logrus.Fields{
				"component": "stats_tracker",
				"club_id":   eaClubID,
				"error":     err.Error(),
			}).Warn("Failed to cache match history")
		}
	}

	return matches, nil
}

// recordPlayers folds every player line from the club's side of the
// match into that player's bucket with this team, creating league
// players on first sight of an EA id.
func (t *StatsTracker) recordPlayers(team *league.LeagueTeam, m *game.Match, eaClubID string) int {
	updated := 0
	for eaPlayerID, line := range m.GetClubPlayers(eaClubID) {
		if line == nil {
			continue
		}

		player, err := t.registry.EnsurePlayer(
			eaPlayerID,
			line.PlayerName,
			types.ParsePosition(line.Position),
			team.Stats.Season,
		)
		if err != nil {
			t.logger.WithFields(logrus.Fields{
				"component":    "stats_tracker",
				"ea_player_id": eaPlayerID,
				"match_id":     m.MatchID,
				"error":        err.Error(),
			}).Warn("Skipping player line")
			continue
		}

		if bucket := player.StatsWithTeam(team.ID); bucket != nil && bucket.HasMatch(m.MatchID) {
			continue
		}
		player.AddGameStats(team.ID, m.MatchID, line)
		updated++
	}
	return updated
}
