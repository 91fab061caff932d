package postgres

import (
	"context"

	"github.com/frahmantamala/parc-info/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/spreadsheet"
	"gorm.io/gorm"
)

// SpreadsheetRepository reads whole tables for export and inserts imported
// rows. It works on the data models directly since imports bypass the
// per-entity services.
type SpreadsheetRepository struct {
	db *gorm.DB
}

func NewSpreadsheetRepository(db *gorm.DB) spreadsheet.RepositoryAPI {
	return &SpreadsheetRepository{db: db}
}

func findAll[T any](ctx context.Context, db *gorm.DB, order string) ([]*T, error) {
	var rows []*T
	err := database.Conn(ctx, db).Order(order).Find(&rows).Error
	return rows, err
}

func (r *SpreadsheetRepository) Employees(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	return findAll[employeeDatamodel.Employee](ctx, r.db, "name")
}

func (r *SpreadsheetRepository) Equipment(ctx context.Context) ([]*equipmentDatamodel.Equipment, error) {
	return findAll[equipmentDatamodel.Equipment](ctx, r.db, "created_at DESC")
}

func (r *SpreadsheetRepository) Inventory(ctx context.Context) ([]*inventoryDatamodel.Item, error) {
	return findAll[inventoryDatamodel.Item](ctx, r.db, "created_at DESC")
}

func (r *SpreadsheetRepository) Licenses(ctx context.Context) ([]*licenseDatamodel.License, error) {
	return findAll[licenseDatamodel.License](ctx, r.db, "created_at DESC")
}

func (r *SpreadsheetRepository) Schedules(ctx context.Context) ([]*maintenanceDatamodel.Schedule, error) {
	return findAll[maintenanceDatamodel.Schedule](ctx, r.db, "start_date")
}

func (r *SpreadsheetRepository) Technicians(ctx context.Context) ([]*maintenanceDatamodel.Technician, error) {
	return findAll[maintenanceDatamodel.Technician](ctx, r.db, "assigned_at")
}

func (r *SpreadsheetRepository) EquipmentLinks(ctx context.Context) ([]*maintenanceDatamodel.Equipment, error) {
	return findAll[maintenanceDatamodel.Equipment](ctx, r.db, "id")
}

func (r *SpreadsheetRepository) Tickets(ctx context.Context) ([]*ticketDatamodel.Ticket, error) {
	return findAll[ticketDatamodel.Ticket](ctx, r.db, "created_at DESC")
}

func (r *SpreadsheetRepository) Users(ctx context.Context) ([]*userDatamodel.User, error) {
	return findAll[userDatamodel.User](ctx, r.db, "email")
}

// Insert creates any data model record, inside the caller's transaction when
// there is one.
func (r *SpreadsheetRepository) Insert(ctx context.Context, record interface{}) error {
	return database.Conn(ctx, r.db).Create(record).Error
}
