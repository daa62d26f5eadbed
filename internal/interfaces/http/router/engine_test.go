package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mveges/grocery/internal/application/activity"
	catalogapp "github.com/mveges/grocery/internal/application/catalog"
	partnerapp "github.com/mveges/grocery/internal/application/partner"
	storeapp "github.com/mveges/grocery/internal/application/store"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared/valueobject"
	"github.com/mveges/grocery/internal/domain/store"
	"github.com/mveges/grocery/internal/infrastructure/cache"
	"github.com/mveges/grocery/internal/infrastructure/event"
	"github.com/mveges/grocery/internal/infrastructure/idgen"
	"github.com/mveges/grocery/internal/infrastructure/persistence"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/mveges/grocery/internal/interfaces/http/handler"
	"github.com/mveges/grocery/internal/interfaces/http/middleware"
	"github.com/mveges/grocery/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

type testServer struct {
	engine   *gin.Engine
	tracer   *sdktrace.TracerProvider
	spans    *tracetest.SpanRecorder
	metrics  *sdkmetric.ManualReader
	activity *activity.Log
}

func newTestServer(t *testing.T, opts router.Options) *testServer {
	t.Helper()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	customers := persistence.NewMemoryCustomerRepository()
	products := persistence.NewMemoryProductRepository()
	discounts := partner.DefaultMembershipDiscounts()

	bus := event.NewInMemoryEventBus(zap.NewNop())
	log := activity.NewLog(activity.DefaultCapacity)
	activityHandler := activity.NewHandler(log)
	bus.Subscribe(activityHandler, activityHandler.EventTypes()...)

	customerService := partnerapp.NewCustomerService(customers, idgen.NewSequence("CUS", 4, 0), discounts)
	customerService.SetEventPublisher(bus)
	productService := catalogapp.NewProductService(products, idgen.NewSequence("PRD", 4, 0), valueobject.KES)
	productService.SetEventPublisher(bus)

	opts.ServiceName = "grocery-test"
	opts.TracingEnabled = true
	opts.TracerProvider = tp
	opts.Meter = mp.Meter("test")
	if opts.CORS.AllowMethods == nil {
		opts.CORS = middleware.DefaultCORSConfig()
	}

	engine, err := router.NewEngine(opts, router.Handlers{
		Health:   handler.NewHealthHandler("memory", nil, nil),
		Customer: handler.NewCustomerHandler(customerService),
		Product:  handler.NewProductHandler(productService),
		Store:    handler.NewStoreHandler(storeapp.NewService(store.DefaultSettings(), discounts, customers, products), log),
	})
	require.NoError(t, err)

	return &testServer{engine: engine, tracer: tp, spans: spans, metrics: reader, activity: log}
}

func (s *testServer) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

const customerBody = `{"name":"Amina Njeri","email":"amina@example.com","age":"28","membership":"premium"}`

func TestNewEngine_Routes(t *testing.T) {
	srv := newTestServer(t, router.Options{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodPost, "/api/v1/customers", customerBody, http.StatusCreated},
		{http.MethodGet, "/api/v1/customers", "", http.StatusOK},
		{http.MethodGet, "/api/v1/customers/CUS-0001", "", http.StatusOK},
		{http.MethodPost, "/api/v1/products", `{"name":"Kale","price":"30","quantity":"12","category":"Vegetables"}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/products", "", http.StatusOK},
		{http.MethodGet, "/api/v1/products/PRD-0001", "", http.StatusOK},
		{http.MethodGet, "/api/v1/store", "", http.StatusOK},
		{http.MethodGet, "/api/v1/activity", "", http.StatusOK},
		{http.MethodGet, "/api/v1/orders", "", http.StatusNotFound},
		{http.MethodDelete, "/api/v1/products/PRD-0001", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := srv.do(tt.method, tt.path, tt.body, nil)

			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		})
	}

	assert.Equal(t, 2, srv.activity.Len())
}

func TestNewEngine_UnknownRouteIsJSON(t *testing.T) {
	srv := newTestServer(t, router.Options{})

	w := srv.do(http.MethodGet, "/api/v1/nothing", "", nil)

	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestNewEngine_IdempotencyKey(t *testing.T) {
	idemStore := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idemStore.Close() })
	srv := newTestServer(t, router.Options{IdempotencyStore: idemStore, IdempotencyTTL: time.Minute})
	headers := map[string]string{middleware.IdempotencyKeyHeader: "form-7f3a"}

	first := srv.do(http.MethodPost, "/api/v1/customers", customerBody, headers)
	second := srv.do(http.MethodPost, "/api/v1/customers", customerBody, headers)

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, dto.ErrCodeDuplicateRequest, decode(t, second).Error.Code)

	list := decode(t, srv.do(http.MethodGet, "/api/v1/customers", "", nil))
	assert.Equal(t, int64(1), list.Meta.Total)
}

func TestNewEngine_IdempotencyKeyReleasedOnValidationFailure(t *testing.T) {
	idemStore := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idemStore.Close() })
	srv := newTestServer(t, router.Options{IdempotencyStore: idemStore})
	headers := map[string]string{middleware.IdempotencyKeyHeader: "form-retry"}

	rejected := srv.do(http.MethodPost, "/api/v1/customers", `{"name":"Amina","email":"nope","age":"28","membership":"premium"}`, headers)
	accepted := srv.do(http.MethodPost, "/api/v1/customers", customerBody, headers)

	assert.Equal(t, http.StatusBadRequest, rejected.Code)
	assert.Equal(t, http.StatusCreated, accepted.Code)
}

func TestNewEngine_BodyLimit(t *testing.T) {
	srv := newTestServer(t, router.Options{MaxBodySize: 64})

	body := `{"name":"` + strings.Repeat("a", 200) + `","email":"a@example.com","age":"30","membership":"basic"}`
	w := srv.do(http.MethodPost, "/api/v1/customers", body, nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, decode(t, w).Error.Code)
}

func TestNewEngine_CORSPreflight(t *testing.T) {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = []string{"http://shop.local"}
	srv := newTestServer(t, router.Options{CORS: cors})

	w := srv.do(http.MethodOptions, "/api/v1/customers", "", map[string]string{
		"Origin":                        "http://shop.local",
		"Access-Control-Request-Method": http.MethodPost,
	})

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewEngine_TracesAndMetrics(t *testing.T) {
	srv := newTestServer(t, router.Options{})
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(srv.tracer)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	w := srv.do(http.MethodPost, "/api/v1/customers", customerBody, map[string]string{
		middleware.RequestIDHeader: "req-abc",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var serverSpan sdktrace.ReadOnlySpan
	var serviceSpan bool
	for _, span := range srv.spans.Ended() {
		for _, kv := range span.Attributes() {
			if kv.Key == attribute.Key(middleware.RequestIDKey) && kv.Value.AsString() == "req-abc" {
				serverSpan = span
			}
		}
		if span.Name() == "customer.register" {
			serviceSpan = true
		}
	}
	require.NotNil(t, serverSpan, "expected the request span to carry the request id")
	assert.True(t, serviceSpan, "expected a child span for the registration")

	var rm metricdata.ResourceMetrics
	require.NoError(t, srv.metrics.Collect(context.Background(), &rm))
	var requests int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok && m.Name == "http_server_request_total" {
				for _, dp := range sum.DataPoints {
					requests += dp.Value
				}
			}
		}
	}
	assert.Equal(t, int64(1), requests)
}
