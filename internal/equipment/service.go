package equipment

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/activity"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
	"github.com/frahmantamala/parc-info/internal/core/database"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*equipmentDatamodel.Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*equipmentDatamodel.Equipment, error)
	GetAll(ctx context.Context) ([]*equipmentDatamodel.Equipment, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]*equipmentDatamodel.Equipment, error)
	Create(ctx context.Context, e *equipmentDatamodel.Equipment) error
	Update(ctx context.Context, e *equipmentDatamodel.Equipment) error
	Delete(ctx context.Context, id string) error
	CountInventory(ctx context.Context, id string) (int64, error)
	CreateHistory(ctx context.Context, h *equipmentDatamodel.History) error
	GetHistory(ctx context.Context, equipmentID string) ([]*equipmentDatamodel.History, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, a *activity.Activity) (*activity.Activity, error)
}

type EmployeeChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo       RepositoryAPI
	activities ActivityRecorder
	employees  EmployeeChecker
	tx         database.TxRunner
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, activities ActivityRecorder, employees EmployeeChecker, tx database.TxRunner, logger *slog.Logger) *Service {
	if tx == nil {
		tx = database.NoTx{}
	}
	return &Service{
		repo:       repo,
		activities: activities,
		employees:  employees,
		tx:         tx,
		logger:     logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Equipment, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, id string) (*equipmentDatamodel.Equipment, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get equipment", "equipment_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get equipment", err)
	}
	if row == nil {
		return nil, ErrEquipmentNotFound
	}
	return row, nil
}

// Exists is used by the services that reference equipment.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, errors.NewInternalError("failed to get equipment", err)
	}
	return row != nil, nil
}

func (s *Service) List(ctx context.Context) ([]*Equipment, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list equipment", "error", err)
		return nil, errors.NewInternalError("failed to list equipment", err)
	}
	return fromRows(rows), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]*Equipment, error) {
	rows, err := s.repo.GetByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to list equipment by employee", "employee_id", employeeID, "error", err)
		return nil, errors.NewInternalError("failed to list equipment", err)
	}
	return fromRows(rows), nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, errors.NewInternalError("failed to count equipment", err)
	}
	return n, nil
}

// StatusBreakdown counts equipment per status. Statuses with no equipment are
// left out.
func (s *Service) StatusBreakdown(ctx context.Context) ([]StatusCount, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, errors.NewInternalError("failed to count equipment by status", err)
	}
	if counts == nil {
		counts = []StatusCount{}
	}
	return counts, nil
}

func fromRows(rows []*equipmentDatamodel.Equipment) []*Equipment {
	out := make([]*Equipment, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}

// History returns the change log of one piece of equipment, newest first.
func (s *Service) History(ctx context.Context, id string) ([]*History, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.GetHistory(ctx, id)
	if err != nil {
		s.logger.Error("failed to get equipment history", "equipment_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get equipment history", err)
	}
	out := make([]*History, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryFromDataModel(row))
	}
	return out, nil
}

func (s *Service) checkAssignee(ctx context.Context, employeeID *string) error {
	if employeeID == nil {
		return nil
	}
	ok, err := s.employees.Exists(ctx, *employeeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotFound()
	}
	return nil
}

func (s *Service) checkSerial(ctx context.Context, serial, selfID string) error {
	other, err := s.repo.GetBySerial(ctx, serial)
	if err != nil {
		return errors.NewInternalError("failed to check serial number", err)
	}
	if other != nil && other.ID != selfID {
		return ErrDuplicateSerial()
	}
	return nil
}

func (s *Service) Create(ctx context.Context, dto CreateEquipmentDTO) (*Equipment, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	purchased, _ := validation.ParseDateTime(dto.PurchaseDate)

	row := &equipmentDatamodel.Equipment{
		Type:         dto.Type,
		Model:        strings.TrimSpace(dto.Model),
		SerialNumber: strings.TrimSpace(dto.SerialNumber),
		PurchaseDate: purchased.UTC(),
		Status:       dto.Status,
		AssignedTo:   dto.AssignedTo,
	}
	if row.Status == "" {
		row.Status = StatusInService
	}

	if err := s.checkSerial(ctx, row.SerialNumber, ""); err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, row.AssignedTo); err != nil {
		return nil, err
	}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, row); err != nil {
			return err
		}
		_, err := s.activities.Record(ctx, activity.EquipmentAdded(row.ID, row.Model, row.Type))
		return err
	})
	if err != nil {
		return nil, s.writeError("create", row.ID, err)
	}

	s.logger.Info("equipment created", "equipment_id", row.ID, "serial_number", row.SerialNumber)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateEquipmentDTO) (*Equipment, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := changeSet{}
	if dto.Type != nil {
		changes.set("type", row.Type, *dto.Type)
		row.Type = *dto.Type
	}
	if dto.Model != nil {
		model := strings.TrimSpace(*dto.Model)
		changes.set("model", row.Model, model)
		row.Model = model
	}
	if dto.SerialNumber != nil {
		serial := strings.TrimSpace(*dto.SerialNumber)
		if serial != row.SerialNumber {
			if err := s.checkSerial(ctx, serial, row.ID); err != nil {
				return nil, err
			}
		}
		changes.set("serialNumber", row.SerialNumber, serial)
		row.SerialNumber = serial
	}
	if dto.PurchaseDate != nil {
		purchased, _ := validation.ParseDateTime(*dto.PurchaseDate)
		purchased = purchased.UTC()
		changes.set("purchaseDate", row.PurchaseDate.Format(time.RFC3339), purchased.Format(time.RFC3339))
		row.PurchaseDate = purchased
	}
	if dto.Status != nil {
		changes.set("status", row.Status, *dto.Status)
		row.Status = *dto.Status
	}
	if dto.AssignedTo.Set {
		if err := s.checkAssignee(ctx, dto.AssignedTo.Ptr); err != nil {
			return nil, err
		}
		changes.set("assignedTo", deref(row.AssignedTo), deref(dto.AssignedTo.Ptr))
		dto.AssignedTo.Apply(&row.AssignedTo)
	}

	updatedBy := errors.UserIDFromContext(ctx)
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, row); err != nil {
			return err
		}
		if len(changes) > 0 && updatedBy != "" {
			payload, err := json.Marshal(changes)
			if err != nil {
				return err
			}
			if err := s.repo.CreateHistory(ctx, &equipmentDatamodel.History{
				EquipmentID: row.ID,
				UpdatedBy:   updatedBy,
				Changes:     string(payload),
			}); err != nil {
				return err
			}
		}
		_, err := s.activities.Record(ctx, activity.EquipmentUpdated(row.ID, row.Model))
		return err
	})
	if err != nil {
		return nil, s.writeError("update", id, err)
	}

	return FromDataModel(row), nil
}

// Delete refuses to remove equipment still tracked in the inventory. History
// rows and maintenance links go with it.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountInventory(ctx, id)
	if err != nil {
		return errors.NewInternalError("failed to check inventory", err)
	}
	if n > 0 {
		return errors.NewConflictError("equipment is referenced by inventory items", errors.ErrCodeEquipmentInUse)
	}
	if err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	}); err != nil {
		s.logger.Error("failed to delete equipment", "equipment_id", id, "error", err)
		return errors.NewInternalError("failed to delete equipment", err)
	}
	s.logger.Info("equipment deleted", "equipment_id", id)
	return nil
}

func (s *Service) writeError(op, id string, err error) error {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateSerial()
	}
	if _, ok := errors.IsAppError(err); ok {
		return err
	}
	s.logger.Error("failed to "+op+" equipment", "equipment_id", id, "error", err)
	return errors.NewInternalError("failed to "+op+" equipment", err)
}

type fieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type changeSet map[string]fieldChange

func (c changeSet) set(field, from, to string) {
	if from != to {
		c[field] = fieldChange{From: from, To: to}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
