package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type validationTestPayload struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Unit     string `json:"unit" binding:"required,max=20"`
}

func TestHandleValidationError_ReportsJSONFieldNames(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var payload validationTestPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	body := `{"quantity": -5, "unit": "kg"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Field names come from json tags, not Go field names
	assert.Contains(t, rec.Body.String(), `"name"`)
	assert.Contains(t, rec.Body.String(), `"quantity"`)
	assert.NotContains(t, rec.Body.String(), "Quantity")
	assert.Contains(t, rec.Body.String(), "ERR_VALIDATION")
}

func TestHandleValidationError_ValidPayloadPasses(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var payload validationTestPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	body := `{"name": "Flour", "quantity": 3, "unit": "kg"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidationMessages(t *testing.T) {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var payload validationTestPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	body := `{"name": "Flour", "quantity": -1, "unit": "a-unit-name-way-over-twenty-chars"}`
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Must be greater than 0")
	assert.Contains(t, rec.Body.String(), "Must be at most 20 characters")
}
