package alert

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
	"github.com/frahmantamala/parc-info/internal/core/entity"
)

type CreateAlertDTO struct {
	Type        string      `json:"type" validate:"required"`
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"required"`
	Priority    string      `json:"priority" validate:"required"`
	Status      string      `json:"status"`
	AssignedTo  *string     `json:"assignedTo"`
	Entity      *entity.Ref `json:"entity"`
}

func (d CreateAlertDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).OneOf(Types...)
	v.Field("priority", d.Priority).OneOf(Priorities...)
	v.Field("status", d.Status).OneOf(Statuses...)
	v.Field("entity", d.Entity).Custom(validRef)
	return validation.Merge(validation.Struct(d), v.Validate())
}

type UpdateAlertDTO struct {
	Type        *string                    `json:"type"`
	Title       *string                    `json:"title"`
	Description *string                    `json:"description"`
	Priority    *string                    `json:"priority"`
	Status      *string                    `json:"status"`
	AssignedTo  nullable.Value[string]     `json:"assignedTo"`
	Entity      nullable.Value[entity.Ref] `json:"entity"`
}

func (d UpdateAlertDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).NotBlank().OneOf(Types...)
	v.Field("title", d.Title).NotBlank().MaxLength(200)
	v.Field("description", d.Description).NotBlank()
	v.Field("priority", d.Priority).NotBlank().OneOf(Priorities...)
	v.Field("status", d.Status).NotBlank().OneOf(Statuses...)
	v.Field("entity", d.Entity.Ptr).Custom(validRef)
	return v.Validate()
}

func validRef(value interface{}) *errors.AppError {
	ref, ok := value.(*entity.Ref)
	if !ok || ref == nil {
		return nil
	}
	if err := ref.Validate(); err != nil {
		return errors.NewValidationError(err.Error(), errors.ErrCodeInvalidEnum)
	}
	return nil
}

// Validate rejects filter values that can never match.
func (f Filter) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", f.Type).OneOf(Types...)
	v.Field("status", f.Status).OneOf(Statuses...)
	v.Field("priority", f.Priority).OneOf(Priorities...)
	return v.Validate()
}
