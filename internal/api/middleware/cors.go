package middleware

import (
	"net/http"
	"os"
	"strings"
)

// corsMaxAge is how long browsers may cache a preflight answer, in seconds.
const corsMaxAge = "300"

// allowedOriginSet parses ALLOWED_ORIGINS (comma-separated) into a lookup
// set. An unset or "*" value allows any origin, which is only appropriate
// for local development.
func allowedOriginSet() (map[string]struct{}, bool) {
	raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if raw == "" || raw == "*" {
		return nil, true
	}

	set := make(map[string]struct{})
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			set[origin] = struct{}{}
		}
	}
	return set, false
}

// CORSMiddleware answers cross-origin requests from the configured web
// origins. It sits outermost in the middleware chain so cached and error
// responses carry the same headers as fresh ones.
func CORSMiddleware(next http.Handler) http.Handler {
	allowed, wildcard := allowedOriginSet()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		switch {
		case origin == "":
			// same-origin or non-browser client
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		default:
			if _, ok := allowed[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
