package user

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technicien"
	RoleUser       Role = "utilisateur"
)

var Roles = []string{string(RoleAdmin), string(RoleTechnician), string(RoleUser)}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the redacted view returned by the auth endpoints.
type Summary struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (u *User) Summary() Summary {
	return Summary{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// DisplayName is the full name when known, the email otherwise.
func (u *User) DisplayName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) == 0 {
		return u.Email
	}
	return strings.Join(parts, " ")
}

var ErrUserNotFound = errors.NewNotFoundError("User not found", errors.ErrCodeUserNotFound)

func ErrUserInUse() *errors.AppError {
	return errors.NewConflictError("user is still referenced by tickets or equipment history", errors.ErrCodeUserInUse)
}

func ErrDuplicateEmail() *errors.AppError {
	return errors.NewConflictError("a user with this email already exists", errors.ErrCodeDuplicateEmail)
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         Role(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
