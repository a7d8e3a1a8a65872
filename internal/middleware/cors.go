package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows the storefront origin to call the API with the auth cookie.
func CORS(frontendOrigin string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{frontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler
}
