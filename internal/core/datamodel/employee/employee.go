package employee

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	"gorm.io/gorm"
)

type Employee struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Name       string    `gorm:"column:name;not null"`
	Email      string    `gorm:"column:email;uniqueIndex;not null"`
	Department string    `gorm:"column:department;not null"`
	Position   string    `gorm:"column:position;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&e.ID)
	return nil
}
