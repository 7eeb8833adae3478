package mw

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/adbrdt/folio/internal/logger"
)

// RequireSecret gates write routes behind the shared admin secret: the
// Authorization header must carry exactly "Bearer <secret>". The comparison
// is verbatim; this is a single global password, not an auth system.
func RequireSecret(secret string, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token != secret {
				log.Warn("unauthorized write attempt",
					logger.String("method", r.Method),
					logger.String("path", r.URL.Path),
					logger.String("remote_ip", r.RemoteAddr))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
