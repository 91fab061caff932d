package maintenance

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Schedule struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Type        string    `gorm:"column:type;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	StartDate   time.Time `gorm:"column:start_date;type:date;not null;index"`
	EndDate     time.Time `gorm:"column:end_date;type:date;not null"`
	Status      string    `gorm:"column:status;not null"`
	Notes       *string   `gorm:"column:notes"`
	CreatedBy   *string   `gorm:"column:created_by;size:36"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Creator *userDatamodel.User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
}

func (Schedule) TableName() string {
	return "maintenance_schedules"
}

func (s *Schedule) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&s.ID)
	return nil
}

type Technician struct {
	ID            string    `gorm:"primaryKey;size:36"`
	MaintenanceID string    `gorm:"column:maintenance_id;size:36;not null;uniqueIndex:ux_maintenance_technician"`
	TechnicianID  string    `gorm:"column:technician_id;size:36;not null;uniqueIndex:ux_maintenance_technician"`
	AssignedAt    time.Time `gorm:"column:assigned_at;autoCreateTime"`

	// links are removed by the service before their schedule
	Schedule *Schedule           `gorm:"foreignKey:MaintenanceID"`
	User     *userDatamodel.User `gorm:"foreignKey:TechnicianID;constraint:OnDelete:CASCADE"`
}

func (Technician) TableName() string {
	return "maintenance_technicians"
}

func (t *Technician) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&t.ID)
	return nil
}

type Equipment struct {
	ID            string `gorm:"primaryKey;size:36"`
	MaintenanceID string `gorm:"column:maintenance_id;size:36;not null;uniqueIndex:ux_maintenance_equipment"`
	EquipmentID   string `gorm:"column:equipment_id;size:36;not null;uniqueIndex:ux_maintenance_equipment"`

	Schedule *Schedule                     `gorm:"foreignKey:MaintenanceID"`
	Item     *equipmentDatamodel.Equipment `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
}

func (Equipment) TableName() string {
	return "maintenance_equipment"
}

func (e *Equipment) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&e.ID)
	return nil
}
