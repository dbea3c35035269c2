package api

import (
	"crypto/subtle"
	"net/http"
)

// apiKeyHeader carries the shared secret on guarded routes.
const apiKeyHeader = "X-API-Key"

// requireAPIKey rejects requests whose X-API-Key header does not match the
// configured shared secret. Comparison is constant-time.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			s.writeError(w, http.StatusForbidden, "Could not validate API credentials.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
