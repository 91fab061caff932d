package user

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/parc-info/internal"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int64, error)
}

type Service struct {
	repo       RepositoryAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return FromDataModel(u), nil
}

// Exists is used by the services that reference users (tickets, maintenance).
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, errors.NewInternalError("failed to get user", err)
	}
	return u != nil, nil
}

// FindByEmail returns nil without error when no user has the email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.logger.Error("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if u == nil {
		return nil, nil
	}
	return FromDataModel(u), nil
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	dto.Email = normalizeEmail(dto.Email)
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

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	role := RoleUser
	if dto.Role != "" {
		role = Role(dto.Role)
	}
	active := true
	if dto.IsActive != nil {
		active = *dto.IsActive
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Role:         role,
		IsActive:     active,
	}
	row := ToDataModel(u)
	if err := s.repo.Create(ctx, row); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail()
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", row.ID, "role", row.Role)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateUserDTO) (*User, error) {
	if dto.Email != nil {
		email := normalizeEmail(*dto.Email)
		dto.Email = &email
	}
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user", err)
	}
	if row == nil {
		return nil, ErrUserNotFound
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
	if dto.Password != nil {
		hash, err := s.HashPassword(*dto.Password)
		if err != nil {
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		row.PasswordHash = hash
	}
	if dto.FirstName != nil {
		row.FirstName = dto.FirstName
	}
	if dto.LastName != nil {
		row.LastName = dto.LastName
	}
	if dto.Role != nil {
		row.Role = *dto.Role
	}
	if dto.IsActive != nil {
		row.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, row); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail()
		}
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update user", err)
	}
	return FromDataModel(row), nil
}

// Deactivate disables the account; users are never hard deleted so their
// tickets and history keep a valid author.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	inactive := false
	_, err := s.Update(ctx, id, UpdateUserDTO{IsActive: &inactive})
	if err == nil {
		s.logger.Info("user deactivated", "user_id", id)
	}
	return err
}

// Delete removes the account row. It fails with USER_IN_USE while tickets or
// equipment history still point at the user.
func (s *Service) Delete(ctx context.Context, id string) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to get user", err)
	}
	if row == nil {
		return ErrUserNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUserInUse().WithCause(err)
		}
		s.logger.Error("failed to delete user", "user_id", id, "error", err)
		return errors.NewInternalError("failed to delete user", err)
	}
	return nil
}

func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}
