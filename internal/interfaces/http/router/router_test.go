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

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRouterSetup_RegistersDomainGroups(t *testing.T) {
	engine := gin.New()

	items := NewDomainGroup("catalog", "/catalog")
	items.GET("/items", okHandler).
		POST("/items", okHandler).
		PUT("/items/:id", okHandler).
		DELETE("/items/:id", okHandler)

	r := NewRouter(engine)
	r.Register(items)
	r.Setup()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/v1/catalog/items", http.StatusOK},
		{http.MethodPost, "/api/v1/catalog/items", http.StatusOK},
		{http.MethodPut, "/api/v1/catalog/items/42", http.StatusOK},
		{http.MethodDelete, "/api/v1/catalog/items/42", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog/missing", http.StatusNotFound},
		{http.MethodGet, "/catalog/items", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, tt.status, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()

	g := NewDomainGroup("system", "/system")
	g.GET("/ping", okHandler)

	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(g)
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/system/ping", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterUse_AppliesMiddlewareToAPIRoutes(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", okHandler)

	g := NewDomainGroup("system", "/system")
	g.GET("/ping", okHandler)

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	r.Register(g)
	r.Setup()

	t.Run("api routes pass through middleware", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("engine-level routes are unaffected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
