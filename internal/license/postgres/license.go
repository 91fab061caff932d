package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/parc-info/internal/core/database"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
	"github.com/frahmantamala/parc-info/internal/license"
	"gorm.io/gorm"
)

type LicenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) license.RepositoryAPI {
	return &LicenseRepository{db: db}
}

func (r *LicenseRepository) GetByID(ctx context.Context, id string) (*licenseDatamodel.License, error) {
	var l licenseDatamodel.License
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LicenseRepository) GetAll(ctx context.Context) ([]*licenseDatamodel.License, error) {
	var rows []*licenseDatamodel.License
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *LicenseRepository) Create(ctx context.Context, l *licenseDatamodel.License) error {
	return database.Conn(ctx, r.db).Create(l).Error
}

func (r *LicenseRepository) Update(ctx context.Context, l *licenseDatamodel.License) error {
	return database.Conn(ctx, r.db).Save(l).Error
}

func (r *LicenseRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&licenseDatamodel.License{}).Error
}
