// Package database opens the gorm connection and carries transactions
// through request contexts.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/parc-info/internal"
	activityDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/activity"
	alertDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/alert"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	sessionDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/session"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured database and applies the pool settings.
func Open(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.Source)
	case DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.Source))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off per
// connection by default.
func sqliteDSN(source string) string {
	if strings.Contains(source, "_foreign_keys=") || strings.Contains(source, "_fk=") {
		return source
	}
	sep := "?"
	if strings.Contains(source, "?") {
		sep = "&"
	}
	return source + sep + "_foreign_keys=on"
}

// OpenInMemory returns a single-connection sqlite database with every table
// created. Used by tests and the `--driver sqlite` dev setup.
func OpenInMemory() (*gorm.DB, error) {
	db, err := Open(internal.DatabaseConfig{
		Driver:       DriverSQLite,
		Source:       ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Models lists every table of the schema, parents first.
func Models() []interface{} {
	return []interface{}{
		&userDatamodel.User{},
		&employeeDatamodel.Employee{},
		&equipmentDatamodel.Equipment{},
		&equipmentDatamodel.History{},
		&ticketDatamodel.Ticket{},
		&inventoryDatamodel.Item{},
		&licenseDatamodel.License{},
		&activityDatamodel.Activity{},
		&alertDatamodel.Alert{},
		&maintenanceDatamodel.Schedule{},
		&maintenanceDatamodel.Technician{},
		&maintenanceDatamodel.Equipment{},
		&sessionDatamodel.Session{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SQLX wraps the pool owned by db for code that writes plain SQL. Both handles
// share connections, so closing db closes it too.
func SQLX(db *gorm.DB, driver string) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	name := "pgx"
	if driver == DriverSQLite {
		name = "sqlite3"
	}
	return sqlx.NewDb(sqlDB, name), nil
}
