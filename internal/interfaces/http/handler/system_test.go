package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSystemHandlerPing(t *testing.T) {
	h := NewSystemHandler(nil, "resto", "test")

	router := gin.New()
	router.GET("/ping", h.Ping)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestSystemHandlerInfo(t *testing.T) {
	h := NewSystemHandler(nil, "resto", "test")

	router := gin.New()
	router.GET("/info", h.Info)

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"resto"`)
	assert.Contains(t, rec.Body.String(), `"env":"test"`)
}
