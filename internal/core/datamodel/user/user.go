package user

import (
	"time"

	"github.com/frahmantamala/parc-info/internal/core/datamodel"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	FirstName    *string   `gorm:"column:first_name"`
	LastName     *string   `gorm:"column:last_name"`
	Role         string    `gorm:"column:role;not null"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	datamodel.EnsureID(&u.ID)
	return nil
}
