package postgres

import (
	"context"

	"github.com/frahmantamala/parc-info/internal/activity"
	"github.com/frahmantamala/parc-info/internal/core/database"
	activityDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/activity"
	"gorm.io/gorm"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.RepositoryAPI {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, a *activityDatamodel.Activity) error {
	return database.Conn(ctx, r.db).Create(a).Error
}

func (r *ActivityRepository) GetRecent(ctx context.Context, limit int) ([]*activityDatamodel.Activity, error) {
	var rows []*activityDatamodel.Activity
	err := database.Conn(ctx, r.db).Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
