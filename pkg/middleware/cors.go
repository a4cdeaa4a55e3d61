package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser clients from allowedOrigins to send credentials. In
// debug mode every origin is accepted.
func CORS(allowedOrigins []string, debug bool) func(http.Handler) http.Handler {
	origins := allowedOrigins
	if debug {
		origins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}
