package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local dev
	"https://admin.mercata.dev",
	"https://vendors.mercata.dev",
}

// CORS returns middleware that applies the API's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-Actor-User-Id", "X-Actor-Role", "X-Vendor-Store-Id", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Mercata-Env"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
