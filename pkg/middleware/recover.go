package middleware

import (
	"errors"
	"net/http"

	"starter-kit/pkg/metrics"
	"starter-kit/pkg/utils"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Recover turns a handler panic into a 500 envelope. http.ErrAbortHandler
// is re-raised so net/http can drop the connection quietly.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				route := routePattern(r)
				metrics.PanicsTotal.WithLabelValues(route).Inc()
				logger.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("route", route),
					zap.String("method", r.Method),
					zap.String("request_id", chimw.GetReqID(r.Context())),
					zap.Stack("stack"),
				)

				utils.ResponseInternalError(w, "Something went wrong")
			}()
			next.ServeHTTP(w, r)
		})
	}
}
