package equipment

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

type Equipment struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Type         string    `gorm:"column:type;not null"`
	Model        string    `gorm:"column:model;not null"`
	SerialNumber string    `gorm:"column:serial_number;uniqueIndex;not null"`
	PurchaseDate time.Time `gorm:"column:purchase_date;not null"`
	Status       string    `gorm:"column:status;not null;index"`
	AssignedTo   *string   `gorm:"column:assigned_to;size:36;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Assignee *employeeDatamodel.Employee `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
}

func (Equipment) TableName() string {
	return "equipment"
}

func (e *Equipment) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&e.ID)
	return nil
}

// History is an append-only record of a change applied to a piece of equipment.
type History struct {
	ID          string    `gorm:"primaryKey;size:36"`
	EquipmentID string    `gorm:"column:equipment_id;size:36;not null;index"`
	UpdatedBy   string    `gorm:"column:updated_by;size:36;not null"`
	Changes     string    `gorm:"column:changes;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Equipment *Equipment              `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
	Author    *userDatamodel.User     `gorm:"foreignKey:UpdatedBy"`
}

func (History) TableName() string {
	return "equipment_history"
}

func (h *History) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&h.ID)
	return nil
}
