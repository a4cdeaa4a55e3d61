package adaptor

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"starter-kit/internal/dto/request"
	"starter-kit/internal/session"
	"starter-kit/internal/usecase"
	"starter-kit/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgRegisterFailed     = "Something went wrong while creating a new user"
	msgInvalidCredentials = "Invalid Credentials"
	msgSomethingWrong     = "Something went wrong"
)

type AuthHandler struct {
	service usecase.AuthService
	cookie  utils.SessionConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, cookie utils.SessionConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		cookie:  cookie,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register", msgRegisterFailed)
		return
	}

	utils.ResponseCreated(w, resp.Message, nil)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Login(withClient(r), &req)
	if err != nil {
		h.handleServiceError(w, err, "login", msgSomethingWrong)
		return
	}

	h.setSessionCookie(w, resp.Token, resp.ExpiresAt)
	utils.ResponseSuccess(w, "Successfully Logged in", resp)
}

// Session handles GET /api/auth/session. Anonymous callers get a successful
// response without data.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	raw, _ := utils.GetTokenFromContext(r.Context())

	s, err := h.service.Session(r.Context(), raw)
	if errors.Is(err, usecase.ErrUnauthenticated) {
		utils.ResponseSuccess(w, "No active session", nil)
		return
	}
	if err != nil {
		h.handleServiceError(w, err, "get session", msgSomethingWrong)
		return
	}

	utils.ResponseSuccess(w, "Session retrieved", s)
}

// Refresh handles POST /api/auth/session/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	raw, _ := utils.GetTokenFromContext(r.Context())

	resp, err := h.service.Refresh(withClient(r), raw)
	if err != nil {
		h.handleServiceError(w, err, "refresh session", msgSomethingWrong)
		return
	}

	h.setSessionCookie(w, resp.Token, resp.ExpiresAt)
	utils.ResponseSuccess(w, "Session refreshed", resp)
}

// SignOut handles POST /api/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	raw, _ := utils.GetTokenFromContext(r.Context())

	if err := h.service.SignOut(r.Context(), raw); err != nil {
		h.handleServiceError(w, err, "sign out", msgSomethingWrong)
		return
	}

	h.clearSessionCookie(w)
	utils.ResponseSuccess(w, "Signed out", nil)
}

// SignOutAll handles POST /api/auth/signout/all
func (h *AuthHandler) SignOutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.SignOutAll(r.Context(), userID.String()); err != nil {
		h.handleServiceError(w, err, "sign out everywhere", msgSomethingWrong)
		return
	}

	h.clearSessionCookie(w)
	utils.ResponseSuccess(w, "Signed out of all sessions", nil)
}

// Roles handles GET /api/auth/roles
func (h *AuthHandler) Roles(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Roles retrieved", h.service.RoleOptions())
}

// withClient records the caller's device on the context so server-side
// sessions can store it.
func withClient(r *http.Request) context.Context {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return session.WithClient(r.Context(), session.Client{
		UserAgent: r.UserAgent(),
		IPAddress: ip,
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// handleServiceError maps service errors to responses. Clients only ever
// see the generic messages; detail goes to the log.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation, fallback string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, msgInvalidCredentials)

	case errors.Is(err, usecase.ErrDuplicateUser):
		utils.ResponseConflict(w, "User already exists")

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Authentication required")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, fallback)
	}
}
