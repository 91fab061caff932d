package spreadsheet

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"github.com/frahmantamala/parc-info/internal/inventory"
	"github.com/frahmantamala/parc-info/internal/maintenance"
	"github.com/frahmantamala/parc-info/internal/ticket"
	"github.com/frahmantamala/parc-info/internal/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parc_spreadsheet_exports_total",
		Help: "Spreadsheet exports by type.",
	}, []string{"type"})

	importedRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parc_spreadsheet_imported_rows_total",
		Help: "Rows inserted by spreadsheet imports, by type.",
	}, []string{"type"})
)

type RepositoryAPI interface {
	Employees(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	Equipment(ctx context.Context) ([]*equipmentDatamodel.Equipment, error)
	Inventory(ctx context.Context) ([]*inventoryDatamodel.Item, error)
	Licenses(ctx context.Context) ([]*licenseDatamodel.License, error)
	Schedules(ctx context.Context) ([]*maintenanceDatamodel.Schedule, error)
	Technicians(ctx context.Context) ([]*maintenanceDatamodel.Technician, error)
	EquipmentLinks(ctx context.Context) ([]*maintenanceDatamodel.Equipment, error)
	Tickets(ctx context.Context) ([]*ticketDatamodel.Ticket, error)
	Users(ctx context.Context) ([]*userDatamodel.User, error)
	Insert(ctx context.Context, record interface{}) error
}

type Service struct {
	repo   RepositoryAPI
	tx     database.TxRunner
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, tx database.TxRunner, logger *slog.Logger) *Service {
	if tx == nil {
		tx = database.NoTx{}
	}
	return &Service{
		repo:   repo,
		tx:     tx,
		logger: logger,
		now:    time.Now,
	}
}

// Export loads one table and renders it with display names in place of
// foreign keys.
func (s *Service) Export(ctx context.Context, kind Kind) (*Sheet, error) {
	var (
		sheet *Sheet
		err   error
	)
	switch kind {
	case KindEmployees:
		sheet, err = s.exportEmployees(ctx)
	case KindEquipment:
		sheet, err = s.exportEquipment(ctx)
	case KindInventory:
		sheet, err = s.exportInventory(ctx)
	case KindLicenses:
		sheet, err = s.exportLicenses(ctx)
	case KindPlanning:
		sheet, err = s.exportPlanning(ctx)
	case KindTickets:
		sheet, err = s.exportTickets(ctx)
	default:
		_, verr := ParseKind(string(kind))
		return nil, verr
	}
	if err != nil {
		s.logger.Error("failed to export spreadsheet", "type", kind, "error", err)
		return nil, errors.NewInternalError("failed to export data", err)
	}
	exportsTotal.WithLabelValues(string(kind)).Inc()
	return sheet, nil
}

// Import reads the first worksheet of r and inserts every row in a single
// transaction. Any bad row aborts the whole import.
func (s *Service) Import(ctx context.Context, kind Kind, r io.Reader) (int, error) {
	if _, verr := ParseKind(string(kind)); verr != nil {
		return 0, verr
	}

	rows, err := ReadRows(r)
	if err != nil {
		return 0, err
	}

	var imported int
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		switch kind {
		case KindEmployees:
			imported, err = s.importEmployees(ctx, rows)
		case KindEquipment:
			imported, err = s.importEquipment(ctx, rows)
		case KindInventory:
			imported, err = s.importInventory(ctx, rows)
		case KindLicenses:
			imported, err = s.importLicenses(ctx, rows)
		case KindPlanning:
			imported, err = s.importPlanning(ctx, rows)
		case KindTickets:
			imported, err = s.importTickets(ctx, rows)
		}
		return err
	})
	if err != nil {
		return 0, s.importError(kind, err)
	}

	importedRowsTotal.WithLabelValues(string(kind)).Add(float64(imported))
	s.logger.Info("spreadsheet imported", "type", kind, "rows", imported)
	return imported, nil
}

func (s *Service) importError(kind Kind, err error) error {
	if appErr, ok := errors.IsAppError(err); ok {
		return appErr
	}
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.NewConflictError("import contains a record that already exists", errors.ErrCodeDuplicateRecord)
	}
	if stderrors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.NewValidationError("import references a record that does not exist", errors.ErrCodeInvalidRow)
	}
	s.logger.Error("failed to import spreadsheet", "type", kind, "error", err)
	return errors.NewInternalError("failed to import data", err)
}

func (s *Service) employeeDirectory(ctx context.Context) (*directory, error) {
	rows, err := s.repo.Employees(ctx)
	if err != nil {
		return nil, err
	}
	d := newDirectory()
	for _, e := range rows {
		d.add(e.ID, e.Name, e.Email)
	}
	return d, nil
}

func (s *Service) userDirectory(ctx context.Context) (*directory, error) {
	rows, err := s.repo.Users(ctx)
	if err != nil {
		return nil, err
	}
	d := newDirectory()
	for _, row := range rows {
		u := user.FromDataModel(row)
		d.add(u.ID, u.DisplayName(), u.Email)
	}
	return d, nil
}

func (s *Service) equipmentDirectory(ctx context.Context) (*directory, error) {
	rows, err := s.repo.Equipment(ctx)
	if err != nil {
		return nil, err
	}
	d := newDirectory()
	for _, row := range rows {
		e := equipment.FromDataModel(row)
		d.add(e.ID, e.Label(), e.SerialNumber)
	}
	return d, nil
}

func (s *Service) exportEmployees(ctx context.Context) (*Sheet, error) {
	rows, err := s.repo.Employees(ctx)
	if err != nil {
		return nil, err
	}
	sheet := newSheet(KindEmployees)
	for _, e := range rows {
		sheet.add(e.ID, e.Name, e.Email, e.Department, e.Position, formatTimestamp(e.CreatedAt), formatTimestamp(e.UpdatedAt))
	}
	return sheet, nil
}

func (s *Service) exportEquipment(ctx context.Context) (*Sheet, error) {
	rows, err := s.repo.Equipment(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeDirectory(ctx)
	if err != nil {
		return nil, err
	}
	sheet := newSheet(KindEquipment)
	for _, e := range rows {
		sheet.add(e.ID, e.Type, e.Model, e.SerialNumber, formatDate(e.PurchaseDate), e.Status,
			employees.name(e.AssignedTo), formatTimestamp(e.CreatedAt), formatTimestamp(e.UpdatedAt))
	}
	return sheet, nil
}

func (s *Service) exportInventory(ctx context.Context) (*Sheet, error) {
	rows, err := s.repo.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.equipmentDirectory(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeDirectory(ctx)
	if err != nil {
		return nil, err
	}
	sheet := newSheet(KindInventory)
	for _, i := range rows {
		sheet.add(i.ID, items.name(&i.EquipmentID), employees.name(i.AssignedTo), i.Location,
			formatDate(i.LastChecked), i.Condition, formatTimestamp(i.CreatedAt), formatTimestamp(i.UpdatedAt))
	}
	return sheet, nil
}

func (s *Service) exportLicenses(ctx context.Context) (*Sheet, error) {
	rows, err := s.repo.Licenses(ctx)
	if err != nil {
		return nil, err
	}
	sheet := newSheet(KindLicenses)
	for _, l := range rows {
		sheet.add(l.ID, l.Name, l.Vendor, l.Type, stringOrEmpty(l.LicenseKey), intOrEmpty(l.MaxUsers),
			l.CurrentUsers, costCell(l.Cost), formatTimestamp(l.CreatedAt), formatTimestamp(l.UpdatedAt))
	}
	return sheet, nil
}

func (s *Service) exportPlanning(ctx context.Context) (*Sheet, error) {
	rows, err := s.repo.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userDirectory(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.equipmentDirectory(ctx)
	if err != nil {
		return nil, err
	}
	technicians, err := s.repo.Technicians(ctx)
	if err != nil {
		return nil, err
	}
	links, err := s.repo.EquipmentLinks(ctx)
	if err != nil {
		return nil, err
	}

	techniciansBySchedule := make(map[string][]string)
	for _, t := range technicians {
		id := t.TechnicianID
		techniciansBySchedule[t.MaintenanceID] = append(techniciansBySchedule[t.MaintenanceID], users.name(&id))
	}
	equipmentBySchedule := make(map[string][]string)
	for _, l := range links {
		id := l.EquipmentID
		equipmentBySchedule[l.MaintenanceID] = append(equipmentBySchedule[l.MaintenanceID], items.name(&id))
	}

	sheet := newSheet(KindPlanning)
	for _, m := range rows {
		sheet.add(m.ID, m.Title, m.Type, m.Description, formatDate(m.StartDate), formatDate(m.EndDate),
			m.Status, stringOrEmpty(m.Notes), users.name(m.CreatedBy),
			strings.Join(equipmentBySchedule[m.ID], listSeparator),
			strings.Join(techniciansBySchedule[m.ID], listSeparator),
			formatTimestamp(m.CreatedAt), formatTimestamp(m.UpdatedAt))
	}
	return sheet, nil
}

func (s *Service) exportTickets(ctx context.Context) (*Sheet, error) {
	rows, err := s.repo.Tickets(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userDirectory(ctx)
	if err != nil {
		return nil, err
	}
	sheet := newSheet(KindTickets)
	for _, t := range rows {
		createdBy := t.CreatedBy
		sheet.add(t.ID, t.Title, t.Description, users.name(&createdBy), users.name(t.AssignedTo),
			t.Status, t.Priority, formatTimestamp(t.CreatedAt), formatTimestamp(t.UpdatedAt))
	}
	return sheet, nil
}

// rowReader collects the first problem found in a row so each importer can
// read all of its columns before checking for an error once.
type rowReader struct {
	row Row
	err *errors.AppError
}

func (rr *rowReader) fail(format string, args ...interface{}) {
	if rr.err == nil {
		rr.err = rowError(rr.row.Line, format, args...)
	}
}

func (rr *rowReader) required(column string) string {
	v := rr.row.Get(column)
	if v == "" {
		rr.fail("column %q is required", column)
	}
	return v
}

func (rr *rowReader) optional(column string) *string {
	if v := rr.row.Get(column); v != "" {
		return &v
	}
	return nil
}

func (rr *rowReader) datetime(column string, required bool) time.Time {
	v := rr.row.Get(column)
	if v == "" {
		if required {
			rr.fail("column %q is required", column)
		}
		return time.Time{}
	}
	t, err := parseTime(v)
	if err != nil {
		rr.fail("column %q: %v", column, err)
	}
	return t
}

// ref resolves an id or display name through d. Blank cells give nil.
func (rr *rowReader) ref(column string, d *directory) *string {
	v := rr.row.Get(column)
	if v == "" {
		return nil
	}
	id, ok := d.lookup(v)
	if !ok {
		rr.fail("column %q: %q does not match any record", column, v)
		return nil
	}
	return &id
}

func (s *Service) importEmployees(ctx context.Context, rows []Row) (int, error) {
	for _, row := range rows {
		rr := &rowReader{row: row}
		e := &employeeDatamodel.Employee{
			ID:         rr.row.Get(colID),
			Name:       rr.required(colName),
			Email:      strings.ToLower(rr.required(colEmail)),
			Department: rr.row.Get(colDepartment),
			Position:   rr.row.Get(colPosition),
			CreatedAt:  rr.datetime(colCreatedAt, false),
			UpdatedAt:  rr.datetime(colUpdatedAt, false),
		}
		if rr.err != nil {
			return 0, rr.err
		}
		if err := s.repo.Insert(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (s *Service) importEquipment(ctx context.Context, rows []Row) (int, error) {
	employees, err := s.employeeDirectory(ctx)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		rr := &rowReader{row: row}
		e := &equipmentDatamodel.Equipment{
			ID:           rr.row.Get(colID),
			Type:         softEnum(rr.row.Get(colType), equipment.Types, equipment.TypeComputer),
			Model:        rr.required(colModel),
			SerialNumber: rr.required(colSerial),
			PurchaseDate: rr.datetime(colPurchase, true),
			Status:       softEnum(rr.row.Get(colStatus), equipment.Statuses, equipment.StatusInService),
			AssignedTo:   rr.ref(colAssignedTo, employees),
			CreatedAt:    rr.datetime(colCreatedAt, false),
			UpdatedAt:    rr.datetime(colUpdatedAt, false),
		}
		if rr.err != nil {
			return 0, rr.err
		}
		if err := s.repo.Insert(ctx, e); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (s *Service) importInventory(ctx context.Context, rows []Row) (int, error) {
	items, err := s.equipmentDirectory(ctx)
	if err != nil {
		return 0, err
	}
	employees, err := s.employeeDirectory(ctx)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		rr := &rowReader{row: row}
		i := &inventoryDatamodel.Item{
			ID:          rr.row.Get(colID),
			AssignedTo:  rr.ref(colAssignedTo, employees),
			Location:    rr.required(colLocation),
			LastChecked: rr.datetime(colLastChecked, false),
			Condition:   softEnum(rr.row.Get(colCondition), inventory.Conditions, inventory.ConditionWorking),
			CreatedAt:   rr.datetime(colCreatedAt, false),
			UpdatedAt:   rr.datetime(colUpdatedAt, false),
		}
		if ref := rr.ref(colEquipment, items); ref != nil {
			i.EquipmentID = *ref
		} else {
			rr.fail("column %q is required", colEquipment)
		}
		if rr.err != nil {
			return 0, rr.err
		}
		if i.LastChecked.IsZero() {
			i.LastChecked = s.now().UTC()
		}
		if err := s.repo.Insert(ctx, i); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func (s *Service) importLicenses(ctx context.Context, rows []Row) (int, error) {
	for _, row := range rows {
		rr := &rowReader{row: row}
		l := &licenseDatamodel.License{
			ID:         rr.row.Get(colID),
			Name:       rr.required(colName),
			Vendor:     rr.required(colVendor),
			Type:       rr.required(colType),
			LicenseKey: rr.optional(colLicenseKey),
			CreatedAt:  rr.datetime(colCreatedAt, false),
			UpdatedAt:  rr.datetime(colUpdatedAt, false),
		}
		maxUsers, err := parseOptionalInt(rr.row.Get(colMaxUsers))
		if err != nil {
			rr.fail("column %q: %v", colMaxUsers, err)
		}
		l.MaxUsers = maxUsers
		current, err := parseOptionalInt(rr.row.Get(colCurrent))
		if err != nil {
			rr.fail("column %q: %v", colCurrent, err)
		}
		if current != nil {
			l.CurrentUsers = *current
		}
		cost, err := parseCost(rr.row.Get(colCost))
		if err != nil {
			rr.fail("column %q: %v", colCost, err)
		}
		l.Cost = cost
		if rr.err != nil {
			return 0, rr.err
		}
		if err := s.repo.Insert(ctx, l); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

// importPlanning also creates the technician and equipment links listed in
// each row.
func (s *Service) importPlanning(ctx context.Context, rows []Row) (int, error) {
	users, err := s.userDirectory(ctx)
	if err != nil {
		return 0, err
	}
	items, err := s.equipmentDirectory(ctx)
	if err != nil {
		return 0, err
	}
	importer := errors.UserIDFromContext(ctx)

	for _, row := range rows {
		rr := &rowReader{row: row}
		m := &maintenanceDatamodel.Schedule{
			ID:          rr.row.Get(colID),
			Type:        softEnum(rr.row.Get(colType), maintenance.Types, maintenance.TypePreventive),
			Title:       rr.required(colTitle),
			Description: rr.row.Get(colDescription),
			StartDate:   rr.datetime(colStart, true),
			EndDate:     rr.datetime(colEnd, true),
			Status:      softEnum(rr.row.Get(colStatus), maintenance.Statuses, maintenance.StatusPlanned),
			Notes:       rr.optional(colNotes),
			CreatedBy:   rr.ref(colCreatedBy, users),
			CreatedAt:   rr.datetime(colCreatedAt, false),
			UpdatedAt:   rr.datetime(colUpdatedAt, false),
		}
		if !m.StartDate.IsZero() && m.EndDate.Before(m.StartDate) {
			rr.fail("%q must be on or after %q", colEnd, colStart)
		}
		if m.CreatedBy == nil && importer != "" {
			m.CreatedBy = &importer
		}

		var technicianIDs, equipmentIDs []string
		for _, name := range splitList(rr.row.Get(colTechnicians)) {
			if id, ok := users.lookup(name); ok {
				technicianIDs = append(technicianIDs, id)
			} else {
				rr.fail("column %q: %q does not match any user", colTechnicians, name)
			}
		}
		for _, name := range splitList(rr.row.Get(colEquipments)) {
			if id, ok := items.lookup(name); ok {
				equipmentIDs = append(equipmentIDs, id)
			} else {
				rr.fail("column %q: %q does not match any equipment", colEquipments, name)
			}
		}
		if rr.err != nil {
			return 0, rr.err
		}

		if err := s.repo.Insert(ctx, m); err != nil {
			return 0, err
		}
		for _, id := range dedupe(technicianIDs) {
			if err := s.repo.Insert(ctx, &maintenanceDatamodel.Technician{MaintenanceID: m.ID, TechnicianID: id}); err != nil {
				return 0, err
			}
		}
		for _, id := range dedupe(equipmentIDs) {
			if err := s.repo.Insert(ctx, &maintenanceDatamodel.Equipment{MaintenanceID: m.ID, EquipmentID: id}); err != nil {
				return 0, err
			}
		}
	}
	return len(rows), nil
}

func (s *Service) importTickets(ctx context.Context, rows []Row) (int, error) {
	users, err := s.userDirectory(ctx)
	if err != nil {
		return 0, err
	}
	importer := errors.UserIDFromContext(ctx)

	for _, row := range rows {
		rr := &rowReader{row: row}
		t := &ticketDatamodel.Ticket{
			ID:          rr.row.Get(colID),
			Title:       rr.required(colTitle),
			Description: rr.required(colDescription),
			AssignedTo:  rr.ref(colAssignedTo, users),
			Status:      softEnum(rr.row.Get(colStatus), ticket.Statuses, ticket.StatusOpen),
			Priority:    softEnum(rr.row.Get(colPriority), ticket.Priorities, ticket.PriorityMedium),
			CreatedAt:   rr.datetime(colCreatedAt, false),
			UpdatedAt:   rr.datetime(colUpdatedAt, false),
		}
		if ref := rr.ref(colCreatedBy, users); ref != nil {
			t.CreatedBy = *ref
		} else {
			t.CreatedBy = importer
		}
		if t.CreatedBy == "" {
			rr.fail("column %q is required", colCreatedBy)
		}
		if rr.err != nil {
			return 0, rr.err
		}
		if err := s.repo.Insert(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
