package maintenance

import (
	"context"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context) ([]*Schedule, error)
	Upcoming(ctx context.Context, days, limit int) ([]*Schedule, error)
	Create(ctx context.Context, dto CreateScheduleDTO) (*Schedule, error)
	Update(ctx context.Context, id string, dto UpdateScheduleDTO) (*Schedule, error)
	Delete(ctx context.Context, id string) error

	Technicians(ctx context.Context, id string) ([]*TechnicianAssignment, error)
	AssignTechnician(ctx context.Context, id, technicianID string) (*TechnicianAssignment, error)
	RemoveTechnician(ctx context.Context, id, technicianID string) error
	Equipment(ctx context.Context, id string) ([]*EquipmentLink, error)
	AddEquipment(ctx context.Context, id, equipmentID string) (*EquipmentLink, error)
	RemoveEquipment(ctx context.Context, id, equipmentID string) error
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
	schedules, err := h.Service.List(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, schedules)
}

// Upcoming serves GET /api/maintenance/upcoming/{days}.
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(h.PathParam(r, "days"))
	if err != nil {
		h.WriteAppError(w, errors.NewValidationFieldError("days", "days must be an integer", errors.ErrCodeValidationFailed))
		return
	}
	schedules, err := h.Service.Upcoming(r.Context(), days, 0)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, schedules)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.GetByID(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateScheduleDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	s, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateScheduleDTO
	if appErr := h.DecodeJSON(r, &dto); appErr != nil {
		h.WriteAppError(w, appErr)
		return
	}

	s, err := h.Service.Update(r.Context(), h.PathParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), h.PathParam(r, "id")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.NoContent(w)
}

func (h *Handler) Technicians(w http.ResponseWriter, r *http.Request) {
	links, err := h.Service.Technicians(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, links)
}

func (h *Handler) AssignTechnician(w http.ResponseWriter, r *http.Request) {
	link, err := h.Service.AssignTechnician(r.Context(), h.PathParam(r, "id"), h.PathParam(r, "technicianId"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, link)
}

func (h *Handler) RemoveTechnician(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveTechnician(r.Context(), h.PathParam(r, "id"), h.PathParam(r, "technicianId")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.NoContent(w)
}

func (h *Handler) Equipment(w http.ResponseWriter, r *http.Request) {
	links, err := h.Service.Equipment(r.Context(), h.PathParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, links)
}

func (h *Handler) AddEquipment(w http.ResponseWriter, r *http.Request) {
	link, err := h.Service.AddEquipment(r.Context(), h.PathParam(r, "id"), h.PathParam(r, "equipmentId"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, link)
}

func (h *Handler) RemoveEquipment(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.RemoveEquipment(r.Context(), h.PathParam(r, "id"), h.PathParam(r, "equipmentId")); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.NoContent(w)
}
