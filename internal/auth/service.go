package auth

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceAPI is the part of user.Service that authentication needs.
type UserServiceAPI interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	Create(ctx context.Context, dto user.CreateUserDTO) (*user.User, error)
}

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*user.User, error)
	Register(ctx context.Context, dto RegisterDTO) (*user.User, error)
	CurrentUser(ctx context.Context, userID string) (*user.User, error)
}

type Service struct {
	users  UserServiceAPI
	logger *slog.Logger
	// compared against when the email is unknown so both paths cost a bcrypt run
	dummyHash []byte
}

func NewService(users UserServiceAPI, logger *slog.Logger) *Service {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("parc-info-dummy-password"), bcrypt.MinCost)
	return &Service{
		users:     users,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Login checks the credentials. Unknown email, wrong password and inactive
// account all produce the same error.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*user.User, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	u, err := s.users.FindByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(dto.Password))
		s.logger.Info("login rejected: unknown email")
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Info("login rejected: wrong password", "user_id", u.ID)
		return nil, errors.ErrInvalidCredentials
	}
	if !u.IsActive {
		s.logger.Info("login rejected: inactive account", "user_id", u.ID)
		return nil, errors.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Register creates a plain user account. The caller opens the session.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*user.User, error) {
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	u, err := s.users.Create(ctx, user.CreateUserDTO{
		Email:     dto.Email,
		Password:  dto.Password,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      string(user.RoleUser),
	})
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeDuplicateEmail {
			return nil, errors.NewValidationFieldError("email", "a user with this email already exists", errors.ErrCodeDuplicateEmail)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID string) (*user.User, error) {
	if userID == "" {
		return nil, errors.ErrUnauthorized
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUserNotFound {
			return nil, errors.ErrUnauthorized
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, errors.ErrUnauthorized
	}
	return u, nil
}
