package middleware

import (
	"net/http"

	"github.com/vaibhavgoel0230/crux-analyzer/config"

	"github.com/gorilla/mux"
)

// NewCORS builds the cross-origin middleware from configuration. Origins on
// the allowed list are echoed back with credentials enabled; debug mode
// allows any origin. Preflight requests are answered here and never reach
// the handlers.
func NewCORS(cfg config.CORSConfig, debug bool) mux.MiddlewareFunc {
	allowed := cfg.Origins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (debug || originAllowed(allowed, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		if a == origin {
			return true
		}
	}
	return false
}
