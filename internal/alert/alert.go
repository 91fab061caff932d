package alert

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	alertDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/alert"
	"github.com/frahmantamala/parc-info/internal/core/entity"
)

const (
	TypeLicense     = "licence"
	TypeSecurity    = "securite"
	TypeMaintenance = "maintenance"
	TypeSystem      = "systeme"

	PriorityHigh   = "haute"
	PriorityMedium = "moyenne"
	PriorityLow    = "basse"

	StatusNew        = "nouvelle"
	StatusInProgress = "en_cours"
	StatusResolved   = "resolue"
)

var (
	Types      = []string{TypeLicense, TypeSecurity, TypeMaintenance, TypeSystem}
	Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}
	Statuses   = []string{StatusNew, StatusInProgress, StatusResolved}
)

type Alert struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	CreatedBy   *string     `json:"createdBy"`
	AssignedTo  *string     `json:"assignedTo"`
	Entity      *entity.Ref `json:"entity"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Filter struct {
	Type     string
	Status   string
	Priority string
}

var ErrAlertNotFound = errors.NewNotFoundError("Alert not found", errors.ErrCodeAlertNotFound)

func ToDataModel(a *Alert) *alertDatamodel.Alert {
	entityType, entityID := entity.Columns(a.Entity)
	return &alertDatamodel.Alert{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Priority:    a.Priority,
		Status:      a.Status,
		CreatedBy:   a.CreatedBy,
		AssignedTo:  a.AssignedTo,
		EntityID:    entityID,
		EntityType:  entityType,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDataModel drops a malformed entity pair rather than failing the read.
func FromDataModel(a *alertDatamodel.Alert) *Alert {
	ref, _ := entity.FromColumns(a.EntityType, a.EntityID)
	return &Alert{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Priority:    a.Priority,
		Status:      a.Status,
		CreatedBy:   a.CreatedBy,
		AssignedTo:  a.AssignedTo,
		Entity:      ref,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
