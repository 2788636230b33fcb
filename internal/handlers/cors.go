package handlers

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300 // seconds

// withCORS allows a single origin with credentials, the way the frontend dev server needs it.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	})(next)
}
