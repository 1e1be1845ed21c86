package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	err := &ConfigurationError{Err: errBoom}

	assert.Equal(t, "configuration error: boom", err.Error())
	require.ErrorIs(t, err, errBoom)
	assert.True(t, IsConfigurationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsConnectionError(err))
}

func TestConnectionError(t *testing.T) {
	t.Parallel()

	err := &ConnectionError{Method: "GET", URL: "https://h/api/guest", Err: errBoom}

	assert.Equal(t, "GET https://h/api/guest: connection error: boom", err.Error())
	require.ErrorIs(t, err, errBoom)
	assert.True(t, IsConnectionError(err))
	assert.False(t, IsConfigurationError(err))

	_, ok := AsAPIError(err)
	assert.False(t, ok)
}

func TestAPIError_StatusHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status       int
		notFound     bool
		unauthorized bool
		forbidden    bool
	}{
		{status: http.StatusNotFound, notFound: true},
		{status: http.StatusUnauthorized, unauthorized: true},
		{status: http.StatusForbidden, forbidden: true},
		{status: http.StatusBadRequest},
		{status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			err := fmt.Errorf("call: %w", &APIError{StatusCode: tt.status, Message: "failed"})

			assert.Equal(t, tt.notFound, IsNotFound(err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(err))
			assert.Equal(t, tt.forbidden, IsForbidden(err))

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}

	assert.False(t, IsNotFound(errBoom))
	assert.False(t, IsNotFound(nil))
}

func TestErrorDetail_JSON(t *testing.T) {
	t.Parallel()

	detail := &ErrorDetail{
		Host: "h",
		Path: "/api/guest",
		Request: RequestDetail{
			Method: "POST",
			URL:    "https://h/api/guest",
			Body:   map[string]any{"username": "demo"},
		},
		Response: ResponseDetail{
			StatusCode: 400,
			RawBody:    `{"error":"validation"}`,
			Headers:    http.Header{"Content-Type": {"application/json"}},
			Body:       map[string]any{"error": "validation"},
		},
	}

	data, err := json.Marshal(detail)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	request := decoded["request"].(map[string]any)
	assert.NotContains(t, request, "query")
	assert.NotContains(t, request, "id")
	assert.Equal(t, map[string]any{"username": "demo"}, request["body"])

	response := decoded["response"].(map[string]any)
	assert.InDelta(t, 400, response["status_code"], 0)
	assert.Equal(t, map[string]any{"error": "validation"}, response["body"])
}
