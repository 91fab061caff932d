package activity

import (
	"context"
	"net/http"

	"github.com/frahmantamala/parc-info/internal/transport"
)

type ServiceAPI interface {
	Recent(ctx context.Context, limit int) ([]*Activity, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit, appErr := ParseLimit(r.URL.Query().Get("limit"))
	if appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	activities, err := h.Service.Recent(r.Context(), limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, activities)
}
