package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/puckline/proclubs-stats/internal/analytics"
	"github.com/puckline/proclubs-stats/internal/models/game"
	"github.com/puckline/proclubs-stats/internal/services"
)

// AnalyticsHandler serves per-match analytics computed over a club's
// fetched match history.
type AnalyticsHandler struct {
	tracker *services.StatsTracker
	logger  *logrus.Logger
}

// NewAnalyticsHandler creates the handler.
func NewAnalyticsHandler(tracker *services.StatsTracker, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: tracker, logger: logger}
}

// ListMatches returns the club's recent matches with full analytics for
// each.
func (h *AnalyticsHandler) ListMatches(c *gin.Context) {
	clubID := c.Param("clubId")

	matches, err := h.tracker.FetchClubMatches(c.Request.Context(), clubID)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"component": "analytics_handler",
			"club_id":   clubID,
			"error":     err.Error(),
		}).Error("Failed to fetch club matches")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch match history"})
		return
	}

	metrics := make([]*analytics.MatchMetrics, 0, len(matches))
	for _, m := range matches {
		metrics = append(metrics, analytics.NewMatchAnalytics(m).AllMetrics())
	}
	c.JSON(http.StatusOK, gin.H{"club_id": clubID, "matches": metrics})
}

// GetMatchAnalytics returns the full metric set for one match.
func (h *AnalyticsHandler) GetMatchAnalytics(c *gin.Context) {
	clubID := c.Param("clubId")
	matchID := c.Param("matchId")

	m, ok := h.findMatch(c, clubID, matchID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.NewMatchAnalytics(m).AllMetrics())
}

// GetMatchSummary returns the club's single-game summary for one match.
func (h *AnalyticsHandler) GetMatchSummary(c *gin.Context) {
	clubID := c.Param("clubId")
	matchID := c.Param("matchId")

	m, ok := h.findMatch(c, clubID, matchID)
	if !ok {
		return
	}

	summary := analytics.BuildTeamGameSummary(m, clubID)
	if summary == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "club did not take part in this match"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) findMatch(c *gin.Context, clubID, matchID string) (*game.Match, bool) {
	matches, err := h.tracker.FetchClubMatches(c.Request.Context(), clubID)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"component": "analytics_handler",
			"club_id":   clubID,
			"error":     err.Error(),
		}).Error("Failed to fetch club matches")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch match history"})
		return nil, false
	}

	for _, m := range matches {
		if m.MatchID == matchID {
			return m, true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "match not found in recent history"})
	return nil, false
}
