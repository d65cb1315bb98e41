package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/puckline/proclubs-stats/internal/services"
)

// SyncHandler triggers on-demand ingestion runs.
type SyncHandler struct {
	tracker *services.StatsTracker
	clubIDs []string
	logger  *logrus.Logger
}

// NewSyncHandler creates the handler. clubIDs are the EA club ids synced
// by a full run.
func NewSyncHandler(tracker *services.StatsTracker, clubIDs []string, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{tracker: tracker, clubIDs: clubIDs, logger: logger}
}

// SyncAll ingests match history for every configured club.
func (h *SyncHandler) SyncAll(c *gin.Context) {
	results := h.tracker.SyncAll(c.Request.Context(), h.clubIDs)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SyncClub ingests match history for one club.
func (h *SyncHandler) SyncClub(c *gin.Context) {
	clubID := c.Param("clubId")

	result, err := h.tracker.SyncClub(c.Request.Context(), clubID)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"component": "sync_handler",
			"club_id":   clubID,
			"error":     err.Error(),
		}).Error("Club sync failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
