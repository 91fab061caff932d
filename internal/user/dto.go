package user

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Role      string  `json:"role" validate:"omitempty,oneof=admin technicien utilisateur"`
	IsActive  *bool   `json:"isActive"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

// UpdateUserDTO is a partial update: nil fields are left untouched.
type UpdateUserDTO struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin technicien utilisateur"`
	IsActive  *bool   `json:"isActive"`
}

func (d UpdateUserDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}
