package maintenance

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
)

const (
	TypePreventive = "preventive"
	TypeCorrective = "corrective"
	TypeUpdate     = "mise_a_jour"

	StatusPlanned    = "planifie"
	StatusInProgress = "en_cours"
	StatusDone       = "termine"
	StatusCancelled  = "annule"
)

var (
	Types    = []string{TypePreventive, TypeCorrective, TypeUpdate}
	Statuses = []string{StatusPlanned, StatusInProgress, StatusDone, StatusCancelled}
)

// Schedule dates are calendar days and travel as YYYY-MM-DD.
type Schedule struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Status      string    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedBy   *string   `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TechnicianAssignment struct {
	MaintenanceID string    `json:"maintenanceId"`
	TechnicianID  string    `json:"technicianId"`
	AssignedAt    time.Time `json:"assignedAt"`
}

type EquipmentLink struct {
	MaintenanceID string `json:"maintenanceId"`
	EquipmentID   string `json:"equipmentId"`
}

var (
	ErrScheduleNotFound = errors.NewNotFoundError("Maintenance schedule not found", errors.ErrCodeMaintenanceNotFound)
	ErrLinkNotFound     = errors.NewNotFoundError("Link not found", errors.ErrCodeLinkNotFound)
)

func ErrDuplicateLink(what string) *errors.AppError {
	return errors.NewConflictError(what+" is already linked to this maintenance", errors.ErrCodeDuplicateLink)
}

func ErrEndBeforeStart() *errors.AppError {
	return errors.NewValidationFieldError("endDate", "endDate must be on or after startDate", errors.ErrCodeInvalidDateRange)
}

func FromDataModel(s *maintenanceDatamodel.Schedule) *Schedule {
	return &Schedule{
		ID:          s.ID,
		Type:        s.Type,
		Title:       s.Title,
		Description: s.Description,
		StartDate:   s.StartDate.UTC().Format(validation.DateLayout),
		EndDate:     s.EndDate.UTC().Format(validation.DateLayout),
		Status:      s.Status,
		Notes:       s.Notes,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func TechnicianFromDataModel(t *maintenanceDatamodel.Technician) *TechnicianAssignment {
	return &TechnicianAssignment{
		MaintenanceID: t.MaintenanceID,
		TechnicianID:  t.TechnicianID,
		AssignedAt:    t.AssignedAt,
	}
}

func EquipmentFromDataModel(e *maintenanceDatamodel.Equipment) *EquipmentLink {
	return &EquipmentLink{
		MaintenanceID: e.MaintenanceID,
		EquipmentID:   e.EquipmentID,
	}
}
