package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chakrahealing/admin_api/internal/utils"
)

var startTime = time.Now()

// DBPinger is satisfied by *sqlx.DB.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// CachePinger is satisfied by *cache.RedisClient.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides health endpoint.
type HealthHandler struct {
	db    DBPinger
	cache CachePinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, cache CachePinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// GetHealth responds with database and Redis status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "disconnected"
	}
	cacheStatus := "connected"
	if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "disconnected"
	}

	status, code := "healthy", 200
	if dbStatus != "connected" || cacheStatus != "connected" {
		status, code = "degraded", 503
	}

	utils.Success(c, code, "Service is "+status, gin.H{
		"status":   status,
		"version":  "1.0.0",
		"uptime":   int(time.Since(startTime).Seconds()),
		"database": dbStatus,
		"redis":    cacheStatus,
	})
}
