package activity

import (
	"time"

	activityDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/activity"
	"github.com/frahmantamala/parc-info/internal/core/entity"
)

const (
	TypeEquipmentAdded   = "equipment_added"
	TypeEquipmentUpdated = "equipment_updated"

	StatusNew      = "Nouveau"
	StatusModified = "Modifié"
)

type Activity struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Entity      entity.Ref `json:"entity"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// EquipmentAdded is the audit entry written when a piece of equipment is
// registered.
func EquipmentAdded(equipmentID, model, equipmentType string) *Activity {
	return &Activity{
		Type:        TypeEquipmentAdded,
		Title:       model + " ajouté",
		Description: "Nouvel équipement de type " + equipmentType,
		Status:      StatusNew,
		Entity:      entity.Ref{Kind: entity.KindEquipment, ID: equipmentID},
	}
}

func EquipmentUpdated(equipmentID, model string) *Activity {
	return &Activity{
		Type:        TypeEquipmentUpdated,
		Title:       model + " mis à jour",
		Description: "Spécifications modifiées",
		Status:      StatusModified,
		Entity:      entity.Ref{Kind: entity.KindEquipment, ID: equipmentID},
	}
}

func ToDataModel(a *Activity) *activityDatamodel.Activity {
	return &activityDatamodel.Activity{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Status:      a.Status,
		EntityID:    a.Entity.ID,
		EntityType:  string(a.Entity.Kind),
		CreatedAt:   a.CreatedAt,
	}
}

func FromDataModel(a *activityDatamodel.Activity) *Activity {
	return &Activity{
		ID:          a.ID,
		Type:        a.Type,
		Title:       a.Title,
		Description: a.Description,
		Status:      a.Status,
		Entity:      entity.Ref{Kind: entity.Kind(a.EntityType), ID: a.EntityID},
		CreatedAt:   a.CreatedAt,
	}
}
