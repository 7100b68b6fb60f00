// Package testutil provides common helpers for client tests that talk to
// fake backends.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// NewBackend starts an httptest server around a chi router built by
// configure, and tears it down with the test.
func NewBackend(t *testing.T, configure func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	configure(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// WriteDetail writes the service's error envelope.
func WriteDetail(t *testing.T, w http.ResponseWriter, status int, detail string) {
	t.Helper()
	WriteJSON(t, w, status, map[string]string{"detail": detail})
}

// ReadJSON decodes the request body into T.
func ReadJSON[T any](t *testing.T, r *http.Request) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
	return v
}

// BearerOf extracts the bearer token from a request, empty when the
// Authorization header is absent.
func BearerOf(r *http.Request) string {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
