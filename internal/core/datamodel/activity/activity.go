package activity

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	"gorm.io/gorm"
)

type Activity struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Type        string    `gorm:"column:type;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	Status      string    `gorm:"column:status;not null"`
	EntityID    string    `gorm:"column:entity_id;size:36;not null"`
	EntityType  string    `gorm:"column:entity_type;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index"`
}

func (Activity) TableName() string {
	return "activities"
}

func (a *Activity) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&a.ID)
	return nil
}
