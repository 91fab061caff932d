package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/parc-info/internal/core/database"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
	"github.com/frahmantamala/parc-info/internal/inventory"
	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) inventory.RepositoryAPI {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*inventoryDatamodel.Item, error) {
	var item inventoryDatamodel.Item
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) GetAll(ctx context.Context) ([]*inventoryDatamodel.Item, error) {
	var rows []*inventoryDatamodel.Item
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *InventoryRepository) Create(ctx context.Context, i *inventoryDatamodel.Item) error {
	return database.Conn(ctx, r.db).Create(i).Error
}

func (r *InventoryRepository) Update(ctx context.Context, i *inventoryDatamodel.Item) error {
	return database.Conn(ctx, r.db).Save(i).Error
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&inventoryDatamodel.Item{}).Error
}
