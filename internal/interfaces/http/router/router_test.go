package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("store", "/store")
	group.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "open")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/store", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "open", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("products", "/products")
		assert.Equal(t, "products", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("routes and methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("products", "/products").
			GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) }).
			POST("", func(c *gin.Context) { c.Status(http.StatusCreated) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/products/PRD-0001", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "PRD-0001", w.Body.String())

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/products", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()
		var order []string
		g := NewDomainGroup("customers", "/customers").
			Use(func(c *gin.Context) { order = append(order, "middleware") }).
			GET("", func(c *gin.Context) {
				order = append(order, "handler")
				c.Status(http.StatusOK)
			})
		g.RegisterRoutes(engine.Group("/api/v1"))

		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil))

		assert.Equal(t, []string{"middleware", "handler"}, order)
	})
}
