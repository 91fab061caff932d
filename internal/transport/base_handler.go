package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"github.com/go-chi/chi"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

func (h *BaseHandler) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	status, body := appErr.ToHTTPResponse()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", appErr.Message, "cause", appErr.Cause)
	} else {
		h.Logger.Debug("http error", "status", status, "code", appErr.Code, "message", appErr.GetDetailedMessage())
	}
	h.WriteJSON(w, status, body)
}

// HandleServiceError maps a service error to a response. Anything that is not
// an AppError is logged and answered with a generic 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		// appErr may be a shared package-level value; never write to it
		if status := appErr.StatusCode; status == 0 || status >= http.StatusInternalServerError {
			h.Logger.Error("internal error", "error", err)
			h.WriteAppError(w, internal.NewInternalError("internal server error", nil))
			return
		}
		h.WriteAppError(w, appErr)
		return
	}
	h.Logger.Error("unhandled service error", "error", err)
	h.WriteAppError(w, internal.NewInternalError("internal server error", nil))
}

// DecodeJSON reads a JSON body into dst. An empty body decodes to the zero
// value so that `PUT {}` and an empty PUT behave the same.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) *internal.AppError {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return internal.NewValidationError("invalid request body", internal.ErrCodeInvalidBody).WithCause(err)
	}
	return nil
}

// PathParam returns a chi URL parameter.
func (h *BaseHandler) PathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
