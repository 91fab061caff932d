package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/parc-info/api"
	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/activity"
	activityPostgres "github.com/frahmantamala/parc-info/internal/activity/postgres"
	"github.com/frahmantamala/parc-info/internal/alert"
	alertPostgres "github.com/frahmantamala/parc-info/internal/alert/postgres"
	"github.com/frahmantamala/parc-info/internal/auth"
	"github.com/frahmantamala/parc-info/internal/auth/session"
	"github.com/frahmantamala/parc-info/internal/core/database"
	"github.com/frahmantamala/parc-info/internal/core/events"
	"github.com/frahmantamala/parc-info/internal/dashboard"
	"github.com/frahmantamala/parc-info/internal/employee"
	employeePostgres "github.com/frahmantamala/parc-info/internal/employee/postgres"
	"github.com/frahmantamala/parc-info/internal/equipment"
	equipmentPostgres "github.com/frahmantamala/parc-info/internal/equipment/postgres"
	"github.com/frahmantamala/parc-info/internal/inventory"
	inventoryPostgres "github.com/frahmantamala/parc-info/internal/inventory/postgres"
	"github.com/frahmantamala/parc-info/internal/license"
	licensePostgres "github.com/frahmantamala/parc-info/internal/license/postgres"
	"github.com/frahmantamala/parc-info/internal/maintenance"
	maintenancePostgres "github.com/frahmantamala/parc-info/internal/maintenance/postgres"
	"github.com/frahmantamala/parc-info/internal/spreadsheet"
	spreadsheetPostgres "github.com/frahmantamala/parc-info/internal/spreadsheet/postgres"
	"github.com/frahmantamala/parc-info/internal/ticket"
	ticketPostgres "github.com/frahmantamala/parc-info/internal/ticket/postgres"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/internal/transport/rest"
	"github.com/frahmantamala/parc-info/internal/user"
	userPostgres "github.com/frahmantamala/parc-info/internal/user/postgres"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// App owns every long-lived dependency of the server process.
type App struct {
	Config *internal.Config
	Logger *slog.Logger
	DB     *gorm.DB
	Redis  *redis.Client
	Bus    *events.EventBus
	Pruner *session.Pruner
	Router *chi.Mux
}

func setupLogger(cfg *internal.Config) *slog.Logger {
	logger.InitWithOptions(cfg.App.Env, logger.Options{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
	})
	return logger.LoggerWrapper()
}

// newSessionStore picks the session backend. The redis client is returned so
// the caller can close it.
func newSessionStore(ctx context.Context, cfg *internal.Config, db *gorm.DB) (session.Store, *redis.Client, error) {
	switch cfg.Session.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return session.NewRedisStore(client, cfg.Redis.KeyPrefix), client, nil
	default:
		sqlxDB, err := database.SQLX(db, cfg.Database.Driver)
		if err != nil {
			return nil, nil, err
		}
		return session.NewDatabaseStore(sqlxDB), nil, nil
	}
}

// openAPIDoc is the document served and validated at startup.
var openAPIDoc = api.OpenAPI

func newApp(ctx context.Context, cfg *internal.Config) (_ *App, err error) {
	lg := setupLogger(cfg)

	// undo releases what was opened so far when construction fails.
	var undo []func()
	defer func() {
		if err != nil {
			for i := len(undo) - 1; i >= 0; i-- {
				undo[i]()
			}
		}
	}()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	undo = append(undo, func() { _ = database.Close(db) })
	if cfg.Database.Driver == database.DriverSQLite {
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	store, redisClient, err := newSessionStore(ctx, cfg, db)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		undo = append(undo, func() { _ = redisClient.Close() })
	}

	if _, err := rest.LoadOpenAPI(ctx, openAPIDoc); err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Logger: lg,
		DB:     db,
		Redis:  redisClient,
		Bus:    events.NewEventBus(lg),
		Pruner: session.NewPruner(store, cfg.Session.PruneInterval, lg),
	}

	tx := database.NewTxManager(db)
	sessions := session.NewManager(store, cfg.Session)

	activityService := activity.NewService(activityPostgres.NewActivityRepository(db), lg)
	userService := user.NewService(userPostgres.NewUserRepository(db), lg, cfg.Security.BCryptCost)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(db), lg)
	equipmentService := equipment.NewService(equipmentPostgres.NewEquipmentRepository(db), activityService, employeeService, tx, lg)
	ticketService := ticket.NewService(ticketPostgres.NewTicketRepository(db), userService, lg)
	inventoryService := inventory.NewService(inventoryPostgres.NewInventoryRepository(db), equipmentService, employeeService, lg)
	licenseService := license.NewService(licensePostgres.NewLicenseRepository(db), app.Bus, lg)
	alertService := alert.NewService(alertPostgres.NewAlertRepository(db), userService, lg)
	maintenanceService := maintenance.NewService(maintenancePostgres.NewMaintenanceRepository(db), userService, equipmentService, tx, lg)
	authService := auth.NewService(userService, lg)
	dashboardService := dashboard.NewService(dashboard.Sources{
		Equipment:   equipmentService,
		Tickets:     ticketService,
		Users:       userService,
		Alerts:      alertService,
		Maintenance: maintenanceService,
		Activities:  activityService,
	}, lg)
	spreadsheetService := spreadsheet.NewService(spreadsheetPostgres.NewSpreadsheetRepository(db), tx, lg)

	alert.NewEventHandler(alertService, lg).RegisterEventHandlers(app.Bus)

	base := transport.NewBaseHandler(lg)
	authHandler := auth.NewHandler(base, authService, sessions)

	checks := map[string]rest.Pinger{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	handlers := rest.Handlers{
		Health:      rest.NewHealthHandler(checks),
		Auth:        authHandler,
		Users:       user.NewHandler(base, userService),
		Employees:   employee.NewHandler(base, employeeService),
		Equipment:   equipment.NewHandler(base, equipmentService),
		Tickets:     ticket.NewHandler(base, ticketService),
		Inventory:   inventory.NewHandler(base, inventoryService),
		Licenses:    license.NewHandler(base, licenseService),
		Alerts:      alert.NewHandler(base, alertService),
		Maintenance: maintenance.NewHandler(base, maintenanceService),
		Activities:  activity.NewHandler(base, activityService),
		Dashboard:   dashboard.NewHandler(base, dashboardService),
		Spreadsheet: spreadsheet.NewHandler(base, spreadsheetService, cfg.Server.MaxUploadBytes),
	}

	opts := rest.Options{
		AllowedOrigins: cfg.Server.Origins(),
		OpenAPI:        openAPIDoc,
		Authenticate:   authHandler.RequireAuthenticated,
		Authorize:      auth.NewRBACAuthorization(auth.DefaultPolicy(), lg).Middleware(),
	}
	if cfg.Observability.Metrics.Enabled {
		opts.MetricsPath = cfg.Observability.Metrics.Path
	}
	app.Router = rest.NewRouter(handlers, opts, lg)

	return app, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	a.Pruner.Stop()
	a.Bus.Close()
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("redis close error", "error", err)
		}
	}
	if err := database.Close(a.DB); err != nil {
		a.Logger.Error("database close error", "error", err)
	}
}
