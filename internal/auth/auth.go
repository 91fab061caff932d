package auth

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
	"github.com/frahmantamala/parc-info/internal/user"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (d LoginDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

type RegisterDTO struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

func (d RegisterDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

// Response is the body of login and register.
type Response struct {
	User user.Summary `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
