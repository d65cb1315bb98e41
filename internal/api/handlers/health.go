package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/puckline/proclubs-stats/internal/services"
)

// HealthHandler reports service liveness and dependency health.
type HealthHandler struct {
	redisClient *redis.Client
	scheduler   *services.SyncScheduler
	startedAt   time.Time
}

// NewHealthHandler creates the handler. The redis client may be nil when
// caching is disabled.
func NewHealthHandler(redisClient *redis.Client, scheduler *services.SyncScheduler) *HealthHandler {
	return &HealthHandler{
		redisClient: redisClient,
		scheduler:   scheduler,
		startedAt:   time.Now(),
	}
}

// GetHealth reports overall service health.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := "healthy"
	checks := gin.H{}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			status = "degraded"
			checks["redis"] = "unreachable"
		} else {
			checks["redis"] = "ok"
		}
	}

	if h.scheduler != nil {
		lastRun, runCount, running := h.scheduler.Status()
		scheduler := gin.H{"running": running, "run_count": runCount}
		if !lastRun.IsZero() {
			scheduler["last_run"] = lastRun.UTC().Format(time.RFC3339)
		}
		checks["scheduler"] = scheduler
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status": status,
		"uptime": time.Since(h.startedAt).String(),
		"checks": checks,
	})
}
