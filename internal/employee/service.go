package employee

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/parc-info/internal"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, e *employeeDatamodel.Employee) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "employee_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get employee", err)
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return FromDataModel(e), nil
}

// Exists is used by the services that reference employees.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, errors.NewInternalError("failed to get employee", err)
	}
	return e != nil, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	e, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, errors.NewInternalError("failed to get employee", err)
	}
	if e == nil {
		return nil, ErrEmployeeNotFound
	}
	return FromDataModel(e), nil
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, errors.NewInternalError("failed to list employees", err)
	}
	out := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	email := dto.Email
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail()
	}

	row := &employeeDatamodel.Employee{
		Name:       strings.TrimSpace(dto.Name),
		Email:      email,
		Department: strings.TrimSpace(dto.Department),
		Position:   strings.TrimSpace(dto.Position),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail()
		}
		s.logger.Error("failed to create employee", "error", err)
		return nil, errors.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", row.ID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	if dto.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*dto.Email))
		dto.Email = &email
	}
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get employee", err)
	}
	if row == nil {
		return nil, ErrEmployeeNotFound
	}

	if dto.Email != nil {
		email := *dto.Email
		if email != row.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, errors.NewInternalError("failed to check email", err)
			}
			if other != nil {
				return nil, ErrDuplicateEmail()
			}
			row.Email = email
		}
	}
	if dto.Name != nil {
		row.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Department != nil {
		row.Department = strings.TrimSpace(*dto.Department)
	}
	if dto.Position != nil {
		row.Position = strings.TrimSpace(*dto.Position)
	}

	if err := s.repo.Update(ctx, row); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail()
		}
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update employee", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to get employee", err)
	}
	if row == nil {
		return ErrEmployeeNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete employee", "employee_id", id, "error", err)
		return errors.NewInternalError("failed to delete employee", err)
	}
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
