package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/parc-info/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	"github.com/frahmantamala/parc-info/internal/employee"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) first(ctx context.Context, query string, arg interface{}) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return database.Conn(ctx, r.db).Create(e).Error
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	return database.Conn(ctx, r.db).Save(e).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
}
