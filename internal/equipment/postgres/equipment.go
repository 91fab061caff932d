package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/parc-info/internal/core/database"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"gorm.io/gorm"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) equipment.RepositoryAPI {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) first(ctx context.Context, query string, arg interface{}) (*equipmentDatamodel.Equipment, error) {
	var e equipmentDatamodel.Equipment
	err := database.Conn(ctx, r.db).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*equipmentDatamodel.Equipment, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EquipmentRepository) GetBySerial(ctx context.Context, serial string) (*equipmentDatamodel.Equipment, error) {
	return r.first(ctx, "serial_number = ?", serial)
}

func (r *EquipmentRepository) GetAll(ctx context.Context) ([]*equipmentDatamodel.Equipment, error) {
	var rows []*equipmentDatamodel.Equipment
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *EquipmentRepository) GetByEmployee(ctx context.Context, employeeID string) ([]*equipmentDatamodel.Equipment, error) {
	var rows []*equipmentDatamodel.Equipment
	err := database.Conn(ctx, r.db).
		Where("assigned_to = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipmentDatamodel.Equipment) error {
	return database.Conn(ctx, r.db).Create(e).Error
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipmentDatamodel.Equipment) error {
	return database.Conn(ctx, r.db).Save(e).Error
}

// Delete removes the equipment with its history and maintenance links. Call it
// inside a transaction.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	db := database.Conn(ctx, r.db)
	if err := db.Where("equipment_id = ?", id).Delete(&equipmentDatamodel.History{}).Error; err != nil {
		return err
	}
	if err := db.Where("equipment_id = ?", id).Delete(&maintenanceDatamodel.Equipment{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&equipmentDatamodel.Equipment{}).Error
}

func (r *EquipmentRepository) CountInventory(ctx context.Context, id string) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&inventoryDatamodel.Item{}).Where("equipment_id = ?", id).Count(&n).Error
	return n, err
}

func (r *EquipmentRepository) CreateHistory(ctx context.Context, h *equipmentDatamodel.History) error {
	return database.Conn(ctx, r.db).Create(h).Error
}

func (r *EquipmentRepository) GetHistory(ctx context.Context, equipmentID string) ([]*equipmentDatamodel.History, error) {
	var rows []*equipmentDatamodel.History
	err := database.Conn(ctx, r.db).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *EquipmentRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&equipmentDatamodel.Equipment{}).Count(&n).Error
	return n, err
}

func (r *EquipmentRepository) CountByStatus(ctx context.Context) ([]equipment.StatusCount, error) {
	var out []equipment.StatusCount
	err := database.Conn(ctx, r.db).Model(&equipmentDatamodel.Equipment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}
