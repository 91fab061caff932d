package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS lets the configured origins call the API with the session cookie.
// A "*" entry opens the API to every origin and turns credentials off.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(origins))
	wildcard := false
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed = append(allowed, strings.TrimSuffix(o, "/"))
	}
	if wildcard {
		allowed = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Trace-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Trace-ID"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}
