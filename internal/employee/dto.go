package employee

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required,max=100"`
	Position   string `json:"position" validate:"required,max=100"`
}

func (d CreateEmployeeDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

type UpdateEmployeeDTO struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

func (d UpdateEmployeeDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).NotBlank().MaxLength(200)
	v.Field("email", d.Email).NotBlank().Email()
	v.Field("department", d.Department).NotBlank().MaxLength(100)
	v.Field("position", d.Position).NotBlank().MaxLength(100)
	return v.Validate()
}
