package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/activity"
	"github.com/frahmantamala/parc-info/internal/alert"
	"github.com/frahmantamala/parc-info/internal/auth"
	"github.com/frahmantamala/parc-info/internal/dashboard"
	"github.com/frahmantamala/parc-info/internal/employee"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"github.com/frahmantamala/parc-info/internal/inventory"
	"github.com/frahmantamala/parc-info/internal/license"
	"github.com/frahmantamala/parc-info/internal/maintenance"
	"github.com/frahmantamala/parc-info/internal/spreadsheet"
	"github.com/frahmantamala/parc-info/internal/ticket"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/internal/transport/middleware"
	"github.com/frahmantamala/parc-info/internal/user"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Middleware = func(http.Handler) http.Handler

// Handlers groups every HTTP handler mounted by the router. A nil handler
// leaves its routes out.
type Handlers struct {
	Health      *HealthHandler
	Auth        *auth.Handler
	Users       *user.Handler
	Employees   *employee.Handler
	Equipment   *equipment.Handler
	Tickets     *ticket.Handler
	Inventory   *inventory.Handler
	Licenses    *license.Handler
	Alerts      *alert.Handler
	Maintenance *maintenance.Handler
	Activities  *activity.Handler
	Dashboard   *dashboard.Handler
	Spreadsheet *spreadsheet.Handler
}

type Options struct {
	AllowedOrigins []string
	MetricsPath    string // empty disables /metrics
	OpenAPI        []byte

	// Authenticate resolves the session to a user; Authorize applies the
	// capability table to the matched route.
	Authenticate Middleware
	Authorize    Middleware
}

func NewRouter(h Handlers, opts Options, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.Logging)
	if opts.MetricsPath != "" {
		router.Use(middleware.Metrics)
		router.Handle(opts.MetricsPath, promhttp.Handler())
	}

	if len(opts.OpenAPI) > 0 {
		router.Get(openAPIPath, openAPIHandler(opts.OpenAPI))
		router.Handle("/swagger/*", swaggerHandler())
	}

	if h.Health != nil {
		router.Get("/health", h.Health.Health)
		router.Get("/ping", h.Health.Ping)
	}

	if h.Auth != nil {
		router.Post("/api/auth/login", h.Auth.Login)
		router.Post("/api/auth/register", h.Auth.Register)
		router.Post("/api/auth/logout", h.Auth.Logout)
	}

	router.Group(func(r chi.Router) {
		if opts.Authenticate != nil {
			r.Use(opts.Authenticate)
		}
		if opts.Authorize != nil {
			r.Use(opts.Authorize)
		}
		registerProtected(r, h)
	})

	base := transport.NewBaseHandler(logger)
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		base.WriteAppError(w, internal.NewNotFoundError("route not found", internal.ErrCodeRouteNotFound))
	})

	return router
}

func registerProtected(r chi.Router, h Handlers) {
	if h.Auth != nil {
		r.Get("/api/auth/user", h.Auth.CurrentUser)
	}

	if h.Users != nil {
		r.Get("/api/users", h.Users.List)
		r.Post("/api/users", h.Users.Create)
		r.Get("/api/users/{id}", h.Users.Get)
		r.Put("/api/users/{id}", h.Users.Update)
		r.Delete("/api/users/{id}", h.Users.Delete)
	}

	if h.Employees != nil {
		r.Get("/api/employees", h.Employees.List)
		r.Post("/api/employees", h.Employees.Create)
		r.Get("/api/employees/{id}", h.Employees.Get)
		r.Put("/api/employees/{id}", h.Employees.Update)
		r.Delete("/api/employees/{id}", h.Employees.Delete)
	}

	if h.Equipment != nil {
		r.Get("/api/equipment", h.Equipment.List)
		r.Post("/api/equipment", h.Equipment.Create)
		r.Get("/api/equipment/{id}", h.Equipment.Get)
		r.Put("/api/equipment/{id}", h.Equipment.Update)
		r.Delete("/api/equipment/{id}", h.Equipment.Delete)
		r.Get("/api/equipment/{id}/history", h.Equipment.History)
		r.Get("/api/employees/{id}/equipment", h.Equipment.ListByEmployee)
	}

	if h.Tickets != nil {
		r.Get("/api/tickets", h.Tickets.List)
		r.Post("/api/tickets", h.Tickets.Create)
		r.Get("/api/tickets/{id}", h.Tickets.Get)
		r.Put("/api/tickets/{id}", h.Tickets.Update)
		r.Delete("/api/tickets/{id}", h.Tickets.Delete)
	}

	if h.Inventory != nil {
		r.Get("/api/inventory", h.Inventory.List)
		r.Post("/api/inventory", h.Inventory.Create)
		r.Get("/api/inventory/{id}", h.Inventory.Get)
		r.Put("/api/inventory/{id}", h.Inventory.Update)
		r.Delete("/api/inventory/{id}", h.Inventory.Delete)
	}

	if h.Licenses != nil {
		r.Get("/api/licenses", h.Licenses.List)
		r.Post("/api/licenses", h.Licenses.Create)
		r.Get("/api/licenses/expiring/{days}", h.Licenses.Expiring)
		r.Get("/api/licenses/{id}", h.Licenses.Get)
		r.Put("/api/licenses/{id}", h.Licenses.Update)
		r.Delete("/api/licenses/{id}", h.Licenses.Delete)
	}

	if h.Alerts != nil {
		r.Get("/api/alerts", h.Alerts.List)
		r.Post("/api/alerts", h.Alerts.Create)
		r.Get("/api/alerts/{id}", h.Alerts.Get)
		r.Put("/api/alerts/{id}", h.Alerts.Update)
		r.Delete("/api/alerts/{id}", h.Alerts.Delete)
	}

	if h.Maintenance != nil {
		r.Get("/api/maintenance", h.Maintenance.List)
		r.Post("/api/maintenance", h.Maintenance.Create)
		r.Get("/api/maintenance/upcoming/{days}", h.Maintenance.Upcoming)
		r.Get("/api/maintenance/{id}", h.Maintenance.Get)
		r.Put("/api/maintenance/{id}", h.Maintenance.Update)
		r.Delete("/api/maintenance/{id}", h.Maintenance.Delete)

		r.Get("/api/maintenance/{id}/technicians", h.Maintenance.Technicians)
		r.Post("/api/maintenance/{id}/technicians/{technicianId}", h.Maintenance.AssignTechnician)
		r.Delete("/api/maintenance/{id}/technicians/{technicianId}", h.Maintenance.RemoveTechnician)
		r.Get("/api/maintenance/{id}/equipment", h.Maintenance.Equipment)
		r.Post("/api/maintenance/{id}/equipment/{equipmentId}", h.Maintenance.AddEquipment)
		r.Delete("/api/maintenance/{id}/equipment/{equipmentId}", h.Maintenance.RemoveEquipment)
	}

	if h.Activities != nil {
		r.Get("/api/activities", h.Activities.Recent)
	}

	if h.Dashboard != nil {
		r.Get("/api/dashboard/stats", h.Dashboard.Stats)
	}

	if h.Spreadsheet != nil {
		r.Get("/api/settings/export/{type}", h.Spreadsheet.Export)
		r.Post("/api/settings/import", h.Spreadsheet.Import)
	}
}
