package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP only when the
// service sits behind a proxy that sets them. Otherwise the headers are
// client-controlled and the socket address is kept, so per-IP limits hold.
func RealIP(trustProxy bool) func(http.Handler) http.Handler {
	if trustProxy {
		return chimw.RealIP
	}
	return func(next http.Handler) http.Handler { return next }
}
