package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/parc-info/internal/core/database"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := database.Conn(ctx, r.db).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return database.Conn(ctx, r.db).Create(u).Error
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	return database.Conn(ctx, r.db).Save(u).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&userDatamodel.User{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
