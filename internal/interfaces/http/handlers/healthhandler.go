package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/version"
)

const healthProbeTimeout = 2 * time.Second

// HealthResponse reports each backing store as "ok", "down" or "disabled".
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	Version  string `json:"version"`
}

type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger logger.Interface
}

// NewHealthHandler takes a nil redis client when Redis is not configured.
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client, logger logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, logger: logger}
}

// HealthCheck godoc
// @Summary Liveness and dependency status
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse "Database or Redis unreachable"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok", Redis: "disabled", Version: version.Version}

	if err := h.pingDatabase(ctx); err != nil {
		h.logger.Warnw("health check: database unreachable", "error", err)
		resp.Database = "down"
		resp.Status = "degraded"
	}

	if h.redis != nil {
		resp.Redis = "ok"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warnw("health check: redis unreachable", "error", err)
			resp.Redis = "down"
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) pingDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Version handles GET /version
func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": version.String()})
}
