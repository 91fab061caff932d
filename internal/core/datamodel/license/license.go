package license

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	"gorm.io/gorm"
)

type License struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"column:name;not null"`
	Vendor       string    `gorm:"column:vendor;not null"`
	Type         string    `gorm:"column:type;not null"`
	LicenseKey   *string   `gorm:"column:license_key"`
	MaxUsers     *int      `gorm:"column:max_users"`
	CurrentUsers int       `gorm:"column:current_users;not null"`
	Cost         *int64    `gorm:"column:cost"` // cents
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (License) TableName() string {
	return "licenses"
}

func (l *License) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&l.ID)
	return nil
}
