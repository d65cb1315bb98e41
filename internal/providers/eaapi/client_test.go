package eaapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/pkg/types"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// testMatch builds a match whose JSON form decodes cleanly, exercising
// the same wire path as a real EA response.
func testMatch(matchID string) *game.Match {
	fi := func(v int) game.FlexInt { return game.FlexInt{Value: v, Present: true} }
	return &game.Match{
		MatchID:   matchID,
		Timestamp: 1700000000,
		Clubs: map[string]*game.ClubGameStats{
			"1000": {TeamSide: fi(0), Goals: fi(3), GoalsAgainst: fi(1)},
			"2000": {TeamSide: fi(1), Goals: fi(1), GoalsAgainst: fi(3)},
		},
		Players: map[string]map[string]*game.PlayerGameStats{
			"1000": {},
			"2000": {},
		},
		Aggregate: map[string]*game.AggregateStats{
			"1000": {},
			"2000": {},
		},
	}
}

func TestFetchMatchesValidation(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 5, testLogger())
	ctx := context.Background()

	_, err := c.FetchMatches(ctx, "", types.PlatformCommonGen5, types.MatchTypePrivate)
	assert.Error(t, err)

	_, err = c.FetchMatches(ctx, "1000", types.Platform("dreamcast"), types.MatchTypePrivate)
	assert.Error(t, err)

	_, err = c.FetchMatches(ctx, "1000", types.PlatformCommonGen5, types.MatchType("gameType99"))
	assert.Error(t, err)

	// Nothing invalid ever reaches the wire.
	assert.Equal(t, 0, requests)
}

func TestFetchMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, matchesPath, r.URL.Path)
		assert.Equal(t, "1000", r.URL.Query().Get("clubIds"))
		assert.Equal(t, "common-gen5", r.URL.Query().Get("platform"))
		assert.Equal(t, "club_private", r.URL.Query().Get("matchType"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")

		good1, err := json.Marshal(testMatch("m1"))
		require.NoError(t, err)
		good2, err := json.Marshal(testMatch("m2"))
		require.NoError(t, err)
		bad := []byte(`{"matchId": ""}`)

		w.Header().Set("Content-Type", "application/json")
		body, err := json.Marshal([]json.RawMessage{good1, bad, good2})
		require.NoError(t, err)
		w.Write(body)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 5, testLogger())
	matches, err := c.FetchMatches(context.Background(), "1000", types.PlatformCommonGen5, types.MatchTypePrivate)
	require.NoError(t, err)

	// The malformed match is skipped, not fatal.
	require.Len(t, matches, 2)
	assert.Equal(t, "m1", matches[0].MatchID)
	assert.Equal(t, "m2", matches[1].MatchID)
	assert.Equal(t, "1000", matches[0].HomeClubID())
}

func TestFetchMatchesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 5, testLogger())
	_, err := c.FetchMatches(context.Background(), "1000", types.PlatformCommonGen5, types.MatchTypePrivate)
	assert.Error(t, err)
}

func TestFetchMatchesNonArrayBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 5, testLogger())
	matches, err := c.FetchMatches(context.Background(), "1000", types.PlatformCommonGen5, types.MatchTypePrivate)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
