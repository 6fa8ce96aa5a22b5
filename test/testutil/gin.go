// Package testutil holds HTTP helpers shared by the API test suites.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Polling bounds for assertions on background work. Outbox jobs and side
// effects finish after the response is written.
const (
	WaitTimeout = 5 * time.Second
	WaitTick    = 25 * time.Millisecond
)

// APIResponse is the decoded envelope for endpoints returning an object.
type APIResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
	Error   string                 `json:"error"`
}

// MakeRequest sends an anonymous request through h.
func MakeRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return MakeAuthRequest(t, h, method, path, "", body)
}

// MakeAuthRequest sends a request through h as the holder of token. The
// Authorization header is omitted when token is empty.
func MakeAuthRequest(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return MakeHeaderRequest(t, h, method, path, token, nil, body)
}

// MakeHeaderRequest is MakeAuthRequest with extra request headers.
func MakeHeaderRequest(t *testing.T, h http.Handler, method, path, token string, headers map[string]string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, encode(t, body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func encode(t *testing.T, body interface{}) io.Reader {
	if body == nil {
		return http.NoBody
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// ParseResponse decodes the recorded body into target.
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

func ParseAPIResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	ParseResponse(t, w, &resp)
	return resp
}
