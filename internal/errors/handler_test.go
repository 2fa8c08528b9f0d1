package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewJSONHandler(io.Discard, nil)), false)
}

func TestErrorHandler_ErrorToProblem(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/views", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"api validation", ErrValidation("region", "too long"), http.StatusBadRequest, TypeValidation},
		{"missing column", NewMissingColumnError("regiao_geografica", nil), http.StatusServiceUnavailable, TypeSchemaMismatch},
		{"missing source", NewMissingSourceError("x.xlsx", nil), http.StatusServiceUnavailable, TypeSourceMissing},
		{"empty set", fmt.Errorf("view: %w", NewEmptySetError("no records")), http.StatusNotFound, TypeViewSkipped},
		{"not found", NewNotFoundError("chart"), http.StatusNotFound, TypeNotFound},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError, TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, "/api/views", p.Instance)
		})
	}
}

func TestErrorHandler_HandleError_WritesProblemJSON(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/charts/regions.png", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, NewMissingColumnError("regiao_geografica", []string{"ano"}))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeSchemaMismatch, body["type"])
	assert.Equal(t, "MISSING_COLUMN", body["error_code"])
	assert.Equal(t, "regiao_geografica", body["column"])
	assert.Contains(t, body, "trace_id")
}

func TestErrorHandler_HandleErrorNil(t *testing.T) {
	h := newTestHandler()
	w := httptest.NewRecorder()
	h.HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorHandler_NotFoundAndMethod(t *testing.T) {
	h := newTestHandler()

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/views", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "DELETE")
}
