package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/parc-info/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error)
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
	employees, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.GetByID(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
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
	var dto UpdateEmployeeDTO
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
