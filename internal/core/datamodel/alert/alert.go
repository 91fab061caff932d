package alert

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Alert struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Type        string    `gorm:"column:type;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Priority    string    `gorm:"column:priority;not null"`
	Status      string    `gorm:"column:status;not null;index"`
	CreatedBy   *string   `gorm:"column:created_by;size:36"`
	AssignedTo  *string   `gorm:"column:assigned_to;size:36"`
	EntityID    *string   `gorm:"column:entity_id;size:36"`
	EntityType  *string   `gorm:"column:entity_type"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Creator  *userDatamodel.User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	Assignee *userDatamodel.User `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
}

func (Alert) TableName() string {
	return "alerts"
}

func (a *Alert) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&a.ID)
	return nil
}
