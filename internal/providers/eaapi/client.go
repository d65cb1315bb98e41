// Package eaapi fetches Pro Clubs match history from EA's public NHL
// endpoint.
package eaapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/pkg/types"
)

// The EA endpoint rejects default Go user agents, so requests identify
// as a browser.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

const matchesPath = "/api/nhl/clubs/matches"

// Client talks to the EA Pro Clubs API. All outbound calls run through
// a circuit breaker so a flaky upstream cannot pile up timeouts.
type Client struct {
	httpClient *http.Client
	logger     *logrus.Logger
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a client against the given base URL.
func NewClient(baseURL string, timeout time.Duration, breakerThreshold int, logger *logrus.Logger) *Client {
	settings := gobreaker.Settings{
		Name:        "ea-proclubs-api",
		MaxRequests: uint32(breakerThreshold),
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "ea_api_client",
				"breaker":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		baseURL:    baseURL,
		breaker:    gobreaker.NewCircuitBreaker(settings),
	}
}

// FetchMatches returns a club's recent match history. The platform and
// match type are validated against the closed enumerations before any
// request is made. Matches that fail to parse are skipped with a warning
// rather than failing the whole response.
func (c *Client) FetchMatches(ctx context.Context, clubID string, platform types.Platform, matchType types.MatchType) ([]*game.Match, error) {
	if clubID == "" {
		return nil, fmt.Errorf("club id must not be empty")
	}
	if !platform.Valid() {
		return nil, fmt.Errorf("invalid platform %q", platform)
	}
	if !matchType.Valid() {
		return nil, fmt.Errorf("invalid match type %q", matchType)
	}

	reqURL := c.matchesURL(clubID, platform, matchType)

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, reqURL)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching matches for club %s: %w", clubID, err)
	}

	return c.parseMatches(body.([]byte), clubID), nil
}

func (c *Client) matchesURL(clubID string, platform types.Platform, matchType types.MatchType) string {
	q := url.Values{}
	q.Set("clubIds", clubID)
	q.Set("platform", string(platform))
	q.Set("matchType", string(matchType))
	return c.baseURL + matchesPath + "?" + q.Encode()
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from EA API", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseMatches decodes the response array one match at a time so a
// single malformed record cannot poison an otherwise good batch.
func (c *Client) parseMatches(body []byte, clubID string) []*game.Match {
	var rawMatches []json.RawMessage
	if err := json.Unmarshal(body, &rawMatches); err != nil {
		c.logger.WithFields(logrus.Fields{
			"component": "ea_api_client",
			"club_id":   clubID,
			"error":     err.Error(),
		}).Warn("EA API response is not a match array")
		return nil
	}

	matches := make([]*game.Match, 0, len(rawMatches))
	for i, raw := range rawMatches {
		var m game.Match
		if err := json.Unmarshal(raw, &m); err != nil {
			c.logger.WithFields(logrus.Fields{
				"component": "ea_api_client",
				"club_id":   clubID,
				"index":     i,
				"error":     err.Error(),
			}).Warn("Skipping unparseable match")
			continue
		}
		matches = append(matches, &m)
	}

	c.logger.WithFields(logrus.Fields{
		"component": "ea_api_client",
		"club_id":   clubID,
		"received":  len(rawMatches),
		"parsed":    len(matches),
	}).Debug("Fetched match history")

	return matches
}
