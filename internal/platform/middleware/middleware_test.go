// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/taskboard/internal/platform/apperr"
	"github.com/taibuivan/taskboard/internal/platform/ctxutil"
	"github.com/taibuivan/taskboard/internal/platform/middleware"
	"github.com/taibuivan/taskboard/internal/platform/sec"
)

// # Test Doubles

type stubVerifier struct {
	tokens map[string]string
}

func (verifier stubVerifier) Verify(token string) (string, error) {
	if userID, ok := verifier.tokens[token]; ok {
		return userID, nil
	}
	return "", sec.ErrTokenSignature
}

type stubResolver struct {
	identities map[string]*sec.Identity
	err        error
}

func (resolver stubResolver) ResolveIdentity(_ context.Context, userID string) (*sec.Identity, error) {
	if resolver.err != nil {
		return nil, resolver.err
	}
	if identity, ok := resolver.identities[userID]; ok {
		return identity, nil
	}
	return nil, apperr.NotFound("User")
}

func newGate(resolverErr error) (http.Handler, *int) {
	calls := 0
	verifier := stubVerifier{tokens: map[string]string{"good": "u1", "orphan": "gone"}}
	resolver := stubResolver{
		identities: map[string]*sec.Identity{"u1": {UserID: "u1", Email: "a@b.co", Username: "a"}},
		err:        resolverErr,
	}

	handler := middleware.Authenticate(verifier, resolver)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls++
		identity := ctxutil.GetIdentity(request.Context())
		_ = json.NewEncoder(writer).Encode(identity)
	}))
	return handler, &calls
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body.Error
}

// # Authentication Gate

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		resolverErr error
		wantStatus  int
		wantError   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "No token provided"},
		{name: "bare prefix", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "No token provided"},
		{name: "bad token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantError: "Please authenticate"},
		{name: "deleted user", header: "Bearer orphan", wantStatus: http.StatusUnauthorized, wantError: "User not found"},
		{name: "lookup failure", header: "Bearer good", resolverErr: errors.New("db down"), wantStatus: http.StatusUnauthorized, wantError: "Please authenticate"},
		{name: "with prefix", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "raw token", header: "good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, calls := newGate(tt.resolverErr)

			request := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, tt.wantError, decodeError(t, recorder))
				assert.Zero(t, *calls, "handler must not run")
				return
			}

			var identity sec.Identity
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &identity))
			assert.Equal(t, "u1", identity.UserID)
			assert.Equal(t, "good", identity.Token)
		})
	}
}

// # Request Tracing

func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("propagated", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Request-ID", "abc-123")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))
	})
}

// # Activity Logging

func TestStructuredLogger_RecordsCaller(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	gate, _ := newGate(nil)
	handler := middleware.StructuredLogger(logger)(gate)

	request := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	request.Header.Set("Authorization", "Bearer good")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "http_request_finished", entry["msg"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

// # Reliability & Safety

func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Server error", decodeError(t, recorder))
}

// # Rate Limiting

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 2, true)
	handler := limiter.Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Real-IP", ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	// Other clients keep their own budget
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)

	// So do other limiter instances
	other := middleware.NewRateLimiter(1, 2, true).Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Real-IP", "10.0.0.1")
	recorder := httptest.NewRecorder()
	other.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRateLimiter_IgnoresProxyHeadersByDefault(t *testing.T) {
	handler := middleware.NewRateLimiter(1, 2, false).Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	send := func(spoofed string) int {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "192.0.2.1:4321"
		request.Header.Set("X-Real-IP", spoofed)
		request.Header.Set("X-Forwarded-For", spoofed)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	// Rotating the headers does not buy a fresh budget
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.3"))
}

// # Cross-Origin Resource Sharing

func TestCORS(t *testing.T) {
	handler := middleware.CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	request.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestClientIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(request, true))

	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.ClientIP(request, true))
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(request, false))

	request.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", middleware.ClientIP(request, true))
	assert.Equal(t, "192.0.2.1", middleware.ClientIP(request, false))
}
