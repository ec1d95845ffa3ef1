package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	HealthCheck("development")(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Backend is running", body["status"])
	assert.Equal(t, "development", body["environment"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRespondErrorHidesDetailInProduction(t *testing.T) {
	orig := Development
	defer func() { Development = orig }()

	Development = false
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusInternalServerError, "Server error", errors.New("pg: connection refused"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Server error", body["message"])
	assert.NotContains(t, body, "error")

	Development = true
	rec = httptest.NewRecorder()
	respondError(rec, http.StatusInternalServerError, "Server error", errors.New("pg: connection refused"))

	body = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pg: connection refused", body["error"])
}
