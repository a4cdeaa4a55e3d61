package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"starter-kit/internal/session"
	"starter-kit/pkg/utils"

	"go.uber.org/zap"
)

// TokenResolver turns a raw client token into a session token.
type TokenResolver interface {
	Resolve(ctx context.Context, raw string) (*session.Token, error)
}

// ExtractToken reads the session token from "Authorization: Bearer <token>"
// or, failing that, from the named cookie.
func ExtractToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Session attaches the caller's identity to the request context when a valid
// token is present. Requests without one pass through anonymously; use
// RequireAuth to reject them.
func Session(resolver TokenResolver, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ExtractToken(r, cookieName)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetTokenContext(r.Context(), raw)

			token, err := resolver.Resolve(ctx, raw)
			switch {
			case errors.Is(err, session.ErrInvalidToken):
				logger.Debug("Session token rejected", zap.Error(err), zap.String("path", r.URL.Path))
			case err != nil:
				logger.Error("Failed to resolve session token", zap.Error(err))
				utils.ResponseServiceUnavailable(w, "Session store unavailable", nil)
				return
			default:
				projected := session.ProjectSession(*token)
				ctx = utils.SetUserContext(ctx, projected.User.ID, projected.User.Role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no authenticated subject.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows only callers whose session token carries role. The role
// is the one minted at sign-in; the user store is not consulted.
func RequireRole(role string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if current, _ := utils.GetRoleFromContext(r.Context()); current != role {
				logger.Warn("Role check failed",
					zap.String("user_id", userID.String()),
					zap.String("required", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
