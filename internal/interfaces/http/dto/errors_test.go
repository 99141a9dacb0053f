package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{"not found maps to 404", ErrCodeNotFound, http.StatusNotFound},
		{"insufficient stock maps to 422", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"missing conversion maps to 422", ErrCodeMissingConversion, http.StatusUnprocessableEntity},
		{"not trackable maps to 422", ErrCodeNotTrackable, http.StatusUnprocessableEntity},
		{"concurrency conflict maps to 409", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"unauthorized maps to 401", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"bad request maps to 400", ErrCodeBadRequest, http.StatusBadRequest},
		{"unknown code maps to 500", "ERR_NO_SUCH_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps domain codes to API codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode("INSUFFICIENT_STOCK"))
		assert.Equal(t, ErrCodeMissingConversion, NormalizeErrorCode("MISSING_UNIT_CONVERSION"))
		assert.Equal(t, ErrCodeNotTrackable, NormalizeErrorCode("NOT_TRACKABLE"))
	})

	t.Run("unmapped codes become business rule violations", func(t *testing.T) {
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("INVALID_QUANTITY"))
		assert.Equal(t, ErrCodeBusinessRule, NormalizeErrorCode("LEDGER_MISMATCH"))
	})
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
