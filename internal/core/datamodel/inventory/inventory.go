package inventory

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

type Item struct {
	ID          string    `gorm:"primaryKey;size:36"`
	EquipmentID string    `gorm:"column:equipment_id;size:36;not null;index"`
	AssignedTo  *string   `gorm:"column:assigned_to;size:36"`
	Location    string    `gorm:"column:location;not null"`
	LastChecked time.Time `gorm:"column:last_checked;not null"`
	Condition   string    `gorm:"column:condition;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Equipment *equipmentDatamodel.Equipment `gorm:"foreignKey:EquipmentID"`
	Assignee  *employeeDatamodel.Employee   `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
}

func (Item) TableName() string {
	return "inventory"
}

func (i *Item) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&i.ID)
	return nil
}
