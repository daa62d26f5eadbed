package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedEngine(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r := gin.New()
	r.Use(RequestID(), Tracing(TracingConfig{ServiceName: "grocery", Enabled: true, TracerProvider: tp}), SpanAttributes())
	r.GET("/products/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
	return r, sr
}

func TestTracing(t *testing.T) {
	t.Run("records a span with the request id", func(t *testing.T) {
		r, sr := tracedEngine(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products/PRD-0001", nil)
		req.Header.Set(RequestIDHeader, "req-7")
		r.ServeHTTP(w, req)

		spans := sr.Ended()
		require.Len(t, spans, 1)
		assert.Contains(t, spans[0].Name(), "/products/:id")

		var requestID string
		for _, a := range spans[0].Attributes() {
			if a.Key == "request_id" {
				requestID = a.Value.AsString()
			}
		}
		assert.Equal(t, "req-7", requestID)
		assert.NotEqual(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("client errors mark the span", func(t *testing.T) {
		r, sr := tracedEngine(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/missing", nil))

		require.Len(t, sr.Ended(), 1)
		assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
	})

	t.Run("disabled tracing is a pass-through", func(t *testing.T) {
		r := gin.New()
		r.Use(Tracing(TracingConfig{Enabled: false}), SpanAttributes())
		r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
