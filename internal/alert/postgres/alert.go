package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/parc-info/internal/alert"
	"github.com/frahmantamala/parc-info/internal/core/database"
	alertDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/alert"
	"github.com/frahmantamala/parc-info/internal/core/entity"
	"gorm.io/gorm"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) alert.RepositoryAPI {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) GetByID(ctx context.Context, id string) (*alertDatamodel.Alert, error) {
	var a alertDatamodel.Alert
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AlertRepository) GetAll(ctx context.Context, filter alert.Filter) ([]*alertDatamodel.Alert, error) {
	q := database.Conn(ctx, r.db)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	var rows []*alertDatamodel.Alert
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *AlertRepository) GetOpen(ctx context.Context, limit int) ([]*alertDatamodel.Alert, error) {
	var rows []*alertDatamodel.Alert
	err := database.Conn(ctx, r.db).
		Where("status <> ?", alert.StatusResolved).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *AlertRepository) HasUnresolved(ctx context.Context, ref entity.Ref) (bool, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&alertDatamodel.Alert{}).
		Where("entity_type = ? AND entity_id = ? AND status <> ?", string(ref.Kind), ref.ID, alert.StatusResolved).
		Count(&n).Error
	return n > 0, err
}

func (r *AlertRepository) Create(ctx context.Context, a *alertDatamodel.Alert) error {
	return database.Conn(ctx, r.db).Create(a).Error
}

func (r *AlertRepository) Update(ctx context.Context, a *alertDatamodel.Alert) error {
	return database.Conn(ctx, r.db).Save(a).Error
}

func (r *AlertRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&alertDatamodel.Alert{}).Error
}
