package ticket

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

// CreateTicketDTO leaves CreatedBy optional; the service falls back to the
// caller.
type CreateTicketDTO struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	CreatedBy   *string `json:"createdBy"`
	AssignedTo  *string `json:"assignedTo"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

func (d CreateTicketDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", d.Status).OneOf(Statuses...)
	v.Field("priority", d.Priority).OneOf(Priorities...)
	return validation.Merge(validation.Struct(d), v.Validate())
}

type UpdateTicketDTO struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	AssignedTo  nullable.Value[string] `json:"assignedTo"`
	Status      *string                `json:"status"`
	Priority    *string                `json:"priority"`
}

func (d UpdateTicketDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("title", d.Title).NotBlank().MaxLength(200)
	v.Field("description", d.Description).NotBlank()
	v.Field("status", d.Status).NotBlank().OneOf(Statuses...)
	v.Field("priority", d.Priority).NotBlank().OneOf(Priorities...)
	return v.Validate()
}
