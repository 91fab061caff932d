package alert

import (
	"context"
	"net/http"

	"github.com/frahmantamala/parc-info/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*Alert, error)
	List(ctx context.Context, filter Filter) ([]*Alert, error)
	Create(ctx context.Context, dto CreateAlertDTO) (*Alert, error)
	Update(ctx context.Context, id string, dto UpdateAlertDTO) (*Alert, error)
	Delete(ctx context.Context, id string) error
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

// List supports ?type=, ?status= and ?priority= filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	alerts, err := h.Service.List(r.Context(), Filter{
		Type:     q.Get("type"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, alerts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.GetByID(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateAlertDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	a, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateAlertDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	a, err := h.Service.Update(r.Context(), h.PathParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.PathParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.NoContent(w)
}
