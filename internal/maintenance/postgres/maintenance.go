package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/parc-info/internal/core/database"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	"github.com/frahmantamala/parc-info/internal/maintenance"
	"gorm.io/gorm"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) maintenance.RepositoryAPI {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id string) (*maintenanceDatamodel.Schedule, error) {
	var s maintenanceDatamodel.Schedule
	err := database.Conn(ctx, r.db).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *MaintenanceRepository) GetAll(ctx context.Context) ([]*maintenanceDatamodel.Schedule, error) {
	var rows []*maintenanceDatamodel.Schedule
	err := database.Conn(ctx, r.db).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *MaintenanceRepository) GetUpcoming(ctx context.Context, from, to time.Time, limit int) ([]*maintenanceDatamodel.Schedule, error) {
	q := database.Conn(ctx, r.db).
		Where("start_date >= ? AND start_date <= ? AND status <> ?", from, to, maintenance.StatusCancelled).
		Order("start_date ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []*maintenanceDatamodel.Schedule
	err := q.Find(&rows).Error
	return rows, err
}

func (r *MaintenanceRepository) Create(ctx context.Context, s *maintenanceDatamodel.Schedule) error {
	return database.Conn(ctx, r.db).Create(s).Error
}

func (r *MaintenanceRepository) Update(ctx context.Context, s *maintenanceDatamodel.Schedule) error {
	return database.Conn(ctx, r.db).Save(s).Error
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id string) error {
	return database.Conn(ctx, r.db).Where("id = ?", id).Delete(&maintenanceDatamodel.Schedule{}).Error
}

func (r *MaintenanceRepository) DeleteTechnicianLinks(ctx context.Context, maintenanceID string) error {
	return database.Conn(ctx, r.db).Where("maintenance_id = ?", maintenanceID).Delete(&maintenanceDatamodel.Technician{}).Error
}

func (r *MaintenanceRepository) DeleteEquipmentLinks(ctx context.Context, maintenanceID string) error {
	return database.Conn(ctx, r.db).Where("maintenance_id = ?", maintenanceID).Delete(&maintenanceDatamodel.Equipment{}).Error
}

func (r *MaintenanceRepository) GetTechnicians(ctx context.Context, maintenanceID string) ([]*maintenanceDatamodel.Technician, error) {
	var rows []*maintenanceDatamodel.Technician
	err := database.Conn(ctx, r.db).Where("maintenance_id = ?", maintenanceID).Order("assigned_at ASC").Find(&rows).Error
	return rows, err
}

func (r *MaintenanceRepository) HasTechnician(ctx context.Context, maintenanceID, technicianID string) (bool, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&maintenanceDatamodel.Technician{}).
		Where("maintenance_id = ? AND technician_id = ?", maintenanceID, technicianID).
		Count(&n).Error
	return n > 0, err
}

func (r *MaintenanceRepository) AddTechnician(ctx context.Context, link *maintenanceDatamodel.Technician) error {
	return database.Conn(ctx, r.db).Create(link).Error
}

func (r *MaintenanceRepository) RemoveTechnician(ctx context.Context, maintenanceID, technicianID string) (int64, error) {
	res := database.Conn(ctx, r.db).
		Where("maintenance_id = ? AND technician_id = ?", maintenanceID, technicianID).
		Delete(&maintenanceDatamodel.Technician{})
	return res.RowsAffected, res.Error
}

func (r *MaintenanceRepository) GetEquipment(ctx context.Context, maintenanceID string) ([]*maintenanceDatamodel.Equipment, error) {
	var rows []*maintenanceDatamodel.Equipment
	err := database.Conn(ctx, r.db).Where("maintenance_id = ?", maintenanceID).Find(&rows).Error
	return rows, err
}

func (r *MaintenanceRepository) HasEquipment(ctx context.Context, maintenanceID, equipmentID string) (bool, error) {
	var n int64
	err := database.Conn(ctx, r.db).Model(&maintenanceDatamodel.Equipment{}).
		Where("maintenance_id = ? AND equipment_id = ?", maintenanceID, equipmentID).
		Count(&n).Error
	return n > 0, err
}

func (r *MaintenanceRepository) AddEquipment(ctx context.Context, link *maintenanceDatamodel.Equipment) error {
	return database.Conn(ctx, r.db).Create(link).Error
}

func (r *MaintenanceRepository) RemoveEquipment(ctx context.Context, maintenanceID, equipmentID string) (int64, error) {
	res := database.Conn(ctx, r.db).
		Where("maintenance_id = ? AND equipment_id = ?", maintenanceID, equipmentID).
		Delete(&maintenanceDatamodel.Equipment{})
	return res.RowsAffected, res.Error
}
