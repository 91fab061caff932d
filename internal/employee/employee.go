package employee

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
)

type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Position   string    `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

var ErrEmployeeNotFound = errors.NewNotFoundError("Employee not found", errors.ErrCodeEmployeeNotFound)

func ErrDuplicateEmail() *errors.AppError {
	return errors.NewConflictError("an employee with this email already exists", errors.ErrCodeDuplicateEmail)
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
