package auth

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/auth/session"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/pkg/logger"
)

type SessionManager interface {
	Create(ctx context.Context, w http.ResponseWriter, userID string) (*session.Session, error)
	Load(ctx context.Context, r *http.Request) (*session.Session, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Sessions SessionManager
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI, sessions SessionManager) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
		Sessions:    sessions,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	u, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if _, err := h.Sessions.Create(r.Context(), w, u.ID); err != nil {
		h.Logger.Error("Login: failed to create session", "user_id", u.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, Response{User: u.Summary()})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	u, err := h.Service.Register(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if _, err := h.Sessions.Create(r.Context(), w, u.ID); err != nil {
		h.Logger.Error("Register: failed to create session", "user_id", u.ID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, Response{User: u.Summary()})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), w, r); err != nil {
		h.Logger.Error("Logout: failed to destroy session", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Service.CurrentUser(r.Context(), internal.UserIDFromContext(r.Context()))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// RequireAuthenticated resolves the session cookie to an active user and
// stores its id and role in the request context.
func (h *Handler) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Sessions.Load(r.Context(), r)
		if err != nil {
			if !stderrors.Is(err, session.ErrNoSession) {
				h.Logger.Error("auth middleware: failed to load session", "error", err)
				h.HandleServiceError(w, err)
				return
			}
			h.WriteAppError(w, internal.ErrUnauthorized)
			return
		}

		u, err := h.Service.CurrentUser(r.Context(), sess.UserID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithUser(r.Context(), u.ID, string(u.Role))
		ctx = logger.With(ctx, "user_id", u.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
