// Package auth implements the optional static API-key check. This is a
// boundary concern, not an auth system: one key from the environment, one
// header, constant-time comparison.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

type APIKeyMiddleware struct {
	keyHash    [sha256.Size]byte
	headerName string
	enabled    bool
}

// NewAPIKeyMiddleware builds the middleware. With an empty key the
// middleware passes every request through, leaving the API open.
func NewAPIKeyMiddleware(key, headerName string) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		keyHash:    sha256.Sum256([]byte(key)),
		headerName: headerName,
		enabled:    key != "",
	}
}

func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		presented := sha256.Sum256([]byte(r.Header.Get(m.headerName)))
		if subtle.ConstantTimeCompare(presented[:], m.keyHash[:]) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid API key"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
