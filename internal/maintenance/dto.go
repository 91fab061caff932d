package maintenance

import (
	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
)

// CreateScheduleDTO has no status: new schedules always start as planned.
type CreateScheduleDTO struct {
	Type        string  `json:"type" validate:"required"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	Notes       *string `json:"notes"`
}

func (d CreateScheduleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).OneOf(Types...)
	v.Field("startDate", d.StartDate).Date()
	v.Field("endDate", d.EndDate).Date()
	if verr := validation.Merge(validation.Struct(d), v.Validate()); verr != nil {
		return verr
	}
	return checkRange(d.StartDate, d.EndDate)
}

type UpdateScheduleDTO struct {
	Type        *string                `json:"type"`
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	StartDate   *string                `json:"startDate"`
	EndDate     *string                `json:"endDate"`
	Status      *string                `json:"status"`
	Notes       nullable.Value[string] `json:"notes"`
}

// Validate checks each field on its own; the merged date range is checked by
// the service once the stored dates are known.
func (d UpdateScheduleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).NotBlank().OneOf(Types...)
	v.Field("title", d.Title).NotBlank().MaxLength(200)
	v.Field("description", d.Description).NotBlank()
	v.Field("startDate", d.StartDate).NotBlank().Date()
	v.Field("endDate", d.EndDate).NotBlank().Date()
	v.Field("status", d.Status).NotBlank().OneOf(Statuses...)
	return v.Validate()
}

// checkRange expects two valid YYYY-MM-DD strings.
func checkRange(start, end string) *errors.AppError {
	if end < start {
		return ErrEndBeforeStart()
	}
	return nil
}
