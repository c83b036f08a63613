package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"numcheck/internal/access/models"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/platform/httputil"
	"numcheck/pkg/requestcontext"
)

// Service authenticates operators and records their sessions.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// Handler serves the operator login and logout endpoints.
type Handler struct {
	access Service
	logger *slog.Logger
}

// New creates an access Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{access: svc, logger: logger}
}

// Register registers the access routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type LogoutRequest struct {
	SessionID string `json:"sessionId"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	session, err := h.access.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.logFailure(ctx, "login failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		Success:   true,
		Message:   "Login successful.",
		SessionID: session.ID.String(),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[LogoutRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.access.Logout(ctx, req.SessionID); err != nil {
		h.logFailure(ctx, "logout failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LogoutResponse{
		Success: true,
		Message: "Logout successful.",
	})
}

func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.InfoContext(ctx, msg, "request_id", requestID, "error", err)
}
