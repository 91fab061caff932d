package equipment

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

type CreateEquipmentDTO struct {
	Type         string  `json:"type" validate:"required"`
	Model        string  `json:"model" validate:"required,max=200"`
	SerialNumber string  `json:"serialNumber" validate:"required,max=100"`
	PurchaseDate string  `json:"purchaseDate" validate:"required"`
	Status       string  `json:"status"`
	AssignedTo   *string `json:"assignedTo"`
}

func (d CreateEquipmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).OneOf(Types...)
	v.Field("purchaseDate", d.PurchaseDate).Custom(validation.DateTime())
	v.Field("status", d.Status).OneOf(Statuses...)
	return validation.Merge(validation.Struct(d), v.Validate())
}

type UpdateEquipmentDTO struct {
	Type         *string                `json:"type"`
	Model        *string                `json:"model"`
	SerialNumber *string                `json:"serialNumber"`
	PurchaseDate *string                `json:"purchaseDate"`
	Status       *string                `json:"status"`
	AssignedTo   nullable.Value[string] `json:"assignedTo"`
}

func (d UpdateEquipmentDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).NotBlank().OneOf(Types...)
	v.Field("model", d.Model).NotBlank().MaxLength(200)
	v.Field("serialNumber", d.SerialNumber).NotBlank().MaxLength(100)
	v.Field("purchaseDate", d.PurchaseDate).NotBlank().Custom(validation.DateTime())
	v.Field("status", d.Status).NotBlank().OneOf(Statuses...)
	return v.Validate()
}
