package license

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

type CreateLicenseDTO struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Vendor       string  `json:"vendor" validate:"required,max=200"`
	Type         string  `json:"type" validate:"required,max=100"`
	LicenseKey   *string `json:"licenseKey"`
	MaxUsers     *int    `json:"maxUsers" validate:"omitnil,min=0"`
	CurrentUsers int     `json:"currentUsers" validate:"min=0"`
	Cost         *int64  `json:"cost" validate:"omitnil,min=0"`
}

func (d CreateLicenseDTO) Validate() *errors.AppError {
	return validation.Struct(d)
}

type UpdateLicenseDTO struct {
	Name         *string                `json:"name"`
	Vendor       *string                `json:"vendor"`
	Type         *string                `json:"type"`
	LicenseKey   nullable.Value[string] `json:"licenseKey"`
	MaxUsers     nullable.Value[int]    `json:"maxUsers"`
	CurrentUsers *int                   `json:"currentUsers"`
	Cost         nullable.Value[int64]  `json:"cost"`
}

func (d UpdateLicenseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).NotBlank().MaxLength(200)
	v.Field("vendor", d.Vendor).NotBlank().MaxLength(200)
	v.Field("type", d.Type).NotBlank().MaxLength(100)
	v.Field("maxUsers", d.MaxUsers.Ptr).MinInt(0, errors.ErrCodeValidationFailed)
	v.Field("currentUsers", d.CurrentUsers).MinInt(0, errors.ErrCodeValidationFailed)
	v.Field("cost", d.Cost.Ptr).MinInt(0, errors.ErrCodeValidationFailed)
	return v.Validate()
}
