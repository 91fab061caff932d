package inventory

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

type CreateItemDTO struct {
	EquipmentID string  `json:"equipmentId" validate:"required"`
	AssignedTo  *string `json:"assignedTo"`
	Location    string  `json:"location" validate:"required,max=200"`
	LastChecked string  `json:"lastChecked"`
	Condition   string  `json:"condition"`
}

func (d CreateItemDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("lastChecked", d.LastChecked).Custom(validation.DateTime())
	v.Field("condition", d.Condition).OneOf(Conditions...)
	return validation.Merge(validation.Struct(d), v.Validate())
}

type UpdateItemDTO struct {
	EquipmentID *string                `json:"equipmentId"`
	AssignedTo  nullable.Value[string] `json:"assignedTo"`
	Location    *string                `json:"location"`
	LastChecked *string                `json:"lastChecked"`
	Condition   *string                `json:"condition"`
}

func (d UpdateItemDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("equipmentId", d.EquipmentID).NotBlank()
	v.Field("location", d.Location).NotBlank().MaxLength(200)
	v.Field("lastChecked", d.LastChecked).NotBlank().Custom(validation.DateTime())
	v.Field("condition", d.Condition).NotBlank().OneOf(Conditions...)
	return v.Validate()
}
