package equipment

import (
	"context"
	"net/http"

	"github.com/frahmantamala/parc-info/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context) ([]*Equipment, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Equipment, error)
	History(ctx context.Context, id string) ([]*History, error)
	Create(ctx context.Context, dto CreateEquipmentDTO) (*Equipment, error)
	Update(ctx context.Context, id string, dto UpdateEquipmentDTO) (*Equipment, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

// ListByEmployee serves GET /api/employees/{id}/equipment.
func (h *Handler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListByEmployee(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetByID(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.History(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEquipmentDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateEquipmentDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	e, err := h.Service.Update(r.Context(), h.PathParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.PathParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.NoContent(w)
}
