package ticket

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Ticket struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	CreatedBy   string    `gorm:"column:created_by;size:36;not null;index"`
	AssignedTo  *string   `gorm:"column:assigned_to;size:36;index"`
	Status      string    `gorm:"column:status;not null;index"`
	Priority    string    `gorm:"column:priority;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Creator  *userDatamodel.User `gorm:"foreignKey:CreatedBy"`
	Assignee *userDatamodel.User `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
}

func (Ticket) TableName() string {
	return "tickets"
}

func (t *Ticket) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&t.ID)
	return nil
}
