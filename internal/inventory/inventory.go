package inventory

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
)

const (
	ConditionWorking   = "fonctionnel"
	ConditionDefective = "défectueux"
)

var Conditions = []string{ConditionWorking, ConditionDefective}

type Item struct {
	ID          string    `json:"id"`
	EquipmentID string    `json:"equipmentId"`
	AssignedTo  *string   `json:"assignedTo"`
	Location    string    `json:"location"`
	LastChecked time.Time `json:"lastChecked"`
	Condition   string    `json:"condition"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var ErrItemNotFound = errors.NewNotFoundError("Inventory item not found", errors.ErrCodeInventoryNotFound)

func ToDataModel(i *Item) *inventoryDatamodel.Item {
	return &inventoryDatamodel.Item{
		ID:          i.ID,
		EquipmentID: i.EquipmentID,
		AssignedTo:  i.AssignedTo,
		Location:    i.Location,
		LastChecked: i.LastChecked,
		Condition:   i.Condition,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromDataModel(i *inventoryDatamodel.Item) *Item {
	return &Item{
		ID:          i.ID,
		EquipmentID: i.EquipmentID,
		AssignedTo:  i.AssignedTo,
		Location:    i.Location,
		LastChecked: i.LastChecked,
		Condition:   i.Condition,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
