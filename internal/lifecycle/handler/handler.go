package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"numcheck/internal/lifecycle"
	dErrors "numcheck/pkg/domain-errors"
	"numcheck/pkg/platform/httputil"
	"numcheck/pkg/platform/sentinel"
	"numcheck/pkg/requestcontext"
)

// Service exposes the session lifecycle to operators.
type Service interface {
	Snapshot() lifecycle.Snapshot
	Connect(ctx context.Context) error
}

// Handler serves the session status and reconnect endpoints.
type Handler struct {
	lifecycle Service
	logger    *slog.Logger
}

// New creates a lifecycle Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{lifecycle: svc, logger: logger}
}

// Register registers the session routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/session/status", h.handleStatus)
	r.Post("/session/connect", h.handleConnect)
}

// StatusResponse reports the current session state.
type StatusResponse struct {
	Ready                bool      `json:"ready"`
	State                string    `json:"state"`
	PairingCode          string    `json:"pairing_code,omitempty"`
	LastDisconnectReason string    `json:"last_disconnect_reason,omitempty"`
	LastFailureReason    string    `json:"last_failure_reason,omitempty"`
	Since                time.Time `json:"since"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.lifecycle.Snapshot()
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Ready:                snap.Ready(),
		State:                snap.State.String(),
		PairingCode:          snap.Challenge,
		LastDisconnectReason: snap.LastDisconnectReason,
		LastFailureReason:    snap.LastFailureReason,
		Since:                snap.Since,
	})
}

func (h *Handler) handleConnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := h.lifecycle.Connect(ctx); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			h.logger.InfoContext(ctx, "connect requested while session active",
				"request_id", requestID,
				"state", h.lifecycle.Snapshot().State.String(),
			)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeConflict, "Session is already connecting or connected."))
			return
		}
		h.logger.ErrorContext(ctx, "failed to start session connection",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "Could not start a session connection."))
		return
	}

	h.logger.InfoContext(ctx, "session connection started by operator", "request_id", requestID)
	httputil.WriteJSON(w, http.StatusAccepted, map[string]any{
		"success": true,
		"message": "Connection attempt started.",
	})
}
