package license

import (
	"context"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*License, error)
	List(ctx context.Context) ([]*License, error)
	Expiring(ctx context.Context, days int) ([]*License, error)
	Create(ctx context.Context, dto CreateLicenseDTO) (*License, error)
	Update(ctx context.Context, id string, dto UpdateLicenseDTO) (*License, error)
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
	licenses, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, licenses)
}

// Expiring serves GET /api/licenses/expiring/{days}.
func (h *Handler) Expiring(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(h.PathParam(r, "days"))
	if err != nil {
		h.WriteAppError(w, errors.NewValidationFieldError("days", "days must be an integer", errors.ErrCodeValidationFailed))
		return
	}
	licenses, err := h.Service.Expiring(r.Context(), days)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, licenses)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.Service.GetByID(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateLicenseDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	l, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateLicenseDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	l, err := h.Service.Update(r.Context(), h.PathParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.PathParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.NoContent(w)
}
