package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/mveges/grocery/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func newHealthEngine(h *handler.HealthHandler) *gin.Engine {
	engine := gin.New()
	engine.GET("/health", h.Check)
	return engine
}

func TestHealthHandler_Check(t *testing.T) {
	t.Run("memory storage without pinger", func(t *testing.T) {
		engine := newHealthEngine(handler.NewHealthHandler("memory", nil, nil))

		w, resp := perform(t, engine, http.MethodGet, "/health", "", "")

		require.Equal(t, http.StatusOK, w.Code)
		health := decodeData[handler.HealthResponse](t, resp)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "memory", health.Storage)
		assert.NotEmpty(t, health.Uptime)
	})

	t.Run("database reachable", func(t *testing.T) {
		engine := newHealthEngine(handler.NewHealthHandler("sqlite", stubPinger{}, zap.NewNop()))

		w, _ := perform(t, engine, http.MethodGet, "/health", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("database unreachable", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		engine := newHealthEngine(handler.NewHealthHandler("postgres", stubPinger{err: errors.New("dial tcp: refused")}, zap.New(core)))

		w, resp := perform(t, engine, http.MethodGet, "/health", "", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeUnavailable, resp.Error.Code)
		assert.Equal(t, "Database is unreachable", resp.Error.Message)
		require.Equal(t, 1, logs.FilterMessage("health check failed").Len())
	})
}
