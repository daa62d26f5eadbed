package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /health
type HealthHandler struct {
	BaseHandler
	storage   string
	db        Pinger
	startTime time.Time
	logger    *zap.Logger
}

// NewHealthHandler creates a health handler. db may be nil for the memory driver.
func NewHealthHandler(storage string, db Pinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		storage:   storage,
		db:        db,
		startTime: time.Now(),
		logger:    logger,
	}
}

// HealthResponse is the body of a health check
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Uptime  string `json:"uptime"`
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("storage", h.storage), zap.Error(err))
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Database is unreachable")
			return
		}
	}

	h.Success(c, HealthResponse{
		Status:  "healthy",
		Storage: h.storage,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}
