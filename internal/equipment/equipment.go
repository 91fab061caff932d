package equipment

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
)

const (
	TypeComputer   = "ordinateur"
	TypeServer     = "serveur"
	TypePeripheral = "périphérique"

	StatusInService   = "en service"
	StatusMaintenance = "en maintenance"
	StatusRetired     = "hors service"
)

var (
	Types    = []string{TypeComputer, TypeServer, TypePeripheral}
	Statuses = []string{StatusInService, StatusMaintenance, StatusRetired}
)

type Equipment struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Model        string    `json:"model"`
	SerialNumber string    `json:"serialNumber"`
	PurchaseDate time.Time `json:"purchaseDate"`
	Status       string    `json:"status"`
	AssignedTo   *string   `json:"assignedTo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Label is how equipment is named in exports and notifications.
func (e *Equipment) Label() string {
	return e.Model + " (" + e.SerialNumber + ")"
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type History struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipmentId"`
	UpdatedBy   string    `json:"updatedBy"`
	Changes     string    `json:"changes"`
	CreatedAt   time.Time `json:"createdAt"`
}

var ErrEquipmentNotFound = errors.NewNotFoundError("Equipment not found", errors.ErrCodeEquipmentNotFound)

func ErrDuplicateSerial() *errors.AppError {
	return errors.NewConflictError("equipment with this serial number already exists", errors.ErrCodeDuplicateSerial)
}

func ErrAssigneeNotFound() *errors.AppError {
	return errors.NewValidationFieldError("assignedTo", "assigned employee does not exist", errors.ErrCodeEmployeeNotFound)
}

func ToDataModel(e *Equipment) *equipmentDatamodel.Equipment {
	return &equipmentDatamodel.Equipment{
		ID:           e.ID,
		Type:         e.Type,
		Model:        e.Model,
		SerialNumber: e.SerialNumber,
		PurchaseDate: e.PurchaseDate,
		Status:       e.Status,
		AssignedTo:   e.AssignedTo,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func FromDataModel(e *equipmentDatamodel.Equipment) *Equipment {
	return &Equipment{
		ID:           e.ID,
		Type:         e.Type,
		Model:        e.Model,
		SerialNumber: e.SerialNumber,
		PurchaseDate: e.PurchaseDate,
		Status:       e.Status,
		AssignedTo:   e.AssignedTo,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func HistoryFromDataModel(h *equipmentDatamodel.History) *History {
	return &History{
		ID:          h.ID,
		EquipmentID: h.EquipmentID,
		UpdatedBy:   h.UpdatedBy,
		Changes:     h.Changes,
		CreatedAt:   h.CreatedAt,
	}
}
