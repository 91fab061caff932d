package maintenance

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
	"github.com/frahmantamala/parc-info/internal/core/database"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*maintenanceDatamodel.Schedule, error)
	GetAll(ctx context.Context) ([]*maintenanceDatamodel.Schedule, error)
	GetUpcoming(ctx context.Context, from, to time.Time, limit int) ([]*maintenanceDatamodel.Schedule, error)
	Create(ctx context.Context, s *maintenanceDatamodel.Schedule) error
	Update(ctx context.Context, s *maintenanceDatamodel.Schedule) error
	Delete(ctx context.Context, id string) error
	DeleteTechnicianLinks(ctx context.Context, maintenanceID string) error
	DeleteEquipmentLinks(ctx context.Context, maintenanceID string) error

	GetTechnicians(ctx context.Context, maintenanceID string) ([]*maintenanceDatamodel.Technician, error)
	HasTechnician(ctx context.Context, maintenanceID, technicianID string) (bool, error)
	AddTechnician(ctx context.Context, link *maintenanceDatamodel.Technician) error
	RemoveTechnician(ctx context.Context, maintenanceID, technicianID string) (int64, error)

	GetEquipment(ctx context.Context, maintenanceID string) ([]*maintenanceDatamodel.Equipment, error)
	HasEquipment(ctx context.Context, maintenanceID, equipmentID string) (bool, error)
	AddEquipment(ctx context.Context, link *maintenanceDatamodel.Equipment) error
	RemoveEquipment(ctx context.Context, maintenanceID, equipmentID string) (int64, error)
}

// Checker reports whether a referenced record exists.
type Checker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo      RepositoryAPI
	users     Checker
	equipment Checker
	tx        database.TxRunner
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, users, equipment Checker, tx database.TxRunner, logger *slog.Logger) *Service {
	if tx == nil {
		tx = database.NoTx{}
	}
	return &Service{
		repo:      repo,
		users:     users,
		equipment: equipment,
		tx:        tx,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Schedule, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, id string) (*maintenanceDatamodel.Schedule, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get maintenance schedule", "maintenance_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get maintenance schedule", err)
	}
	if row == nil {
		return nil, ErrScheduleNotFound
	}
	return row, nil
}

func fromRows(rows []*maintenanceDatamodel.Schedule) []*Schedule {
	out := make([]*Schedule, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}

func (s *Service) List(ctx context.Context) ([]*Schedule, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list maintenance schedules", "error", err)
		return nil, errors.NewInternalError("failed to list maintenance schedules", err)
	}
	return fromRows(rows), nil
}

// Upcoming lists schedules starting between today and today+days, cancelled
// ones excluded, soonest first. limit <= 0 means no limit.
func (s *Service) Upcoming(ctx context.Context, days, limit int) ([]*Schedule, error) {
	if days < 0 {
		return nil, errors.NewValidationFieldError("days", "days must not be negative", errors.ErrCodeValidationFailed)
	}
	today := s.now().UTC().Truncate(24 * time.Hour)
	rows, err := s.repo.GetUpcoming(ctx, today, today.AddDate(0, 0, days), limit)
	if err != nil {
		s.logger.Error("failed to list upcoming maintenance", "error", err)
		return nil, errors.NewInternalError("failed to list upcoming maintenance", err)
	}
	return fromRows(rows), nil
}

func (s *Service) Create(ctx context.Context, dto CreateScheduleDTO) (*Schedule, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	start, _ := validation.ParseDate(dto.StartDate)
	end, _ := validation.ParseDate(dto.EndDate)

	row := &maintenanceDatamodel.Schedule{
		Type:        dto.Type,
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      StatusPlanned,
		Notes:       dto.Notes,
	}
	if uid := errors.UserIDFromContext(ctx); uid != "" {
		row.CreatedBy = &uid
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create maintenance schedule", "error", err)
		return nil, errors.NewInternalError("failed to create maintenance schedule", err)
	}
	s.logger.Info("maintenance scheduled", "maintenance_id", row.ID, "start_date", dto.StartDate)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateScheduleDTO) (*Schedule, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.StartDate != nil {
		row.StartDate, _ = validation.ParseDate(*dto.StartDate)
	}
	if dto.EndDate != nil {
		row.EndDate, _ = validation.ParseDate(*dto.EndDate)
	}
	if row.EndDate.Before(row.StartDate) {
		return nil, ErrEndBeforeStart()
	}

	if dto.Type != nil {
		row.Type = *dto.Type
	}
	if dto.Title != nil {
		row.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		row.Description = *dto.Description
	}
	if dto.Status != nil {
		row.Status = *dto.Status
	}
	dto.Notes.Apply(&row.Notes)

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update maintenance schedule", "maintenance_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update maintenance schedule", err)
	}
	return FromDataModel(row), nil
}

// Delete removes the technician and equipment links before the schedule,
// all in one transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteTechnicianLinks(ctx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteEquipmentLinks(ctx, id); err != nil {
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		s.logger.Error("failed to delete maintenance schedule", "maintenance_id", id, "error", err)
		return errors.NewInternalError("failed to delete maintenance schedule", err)
	}
	s.logger.Info("maintenance schedule deleted", "maintenance_id", id)
	return nil
}

func (s *Service) mustExist(ctx context.Context, c Checker, id string, notFound *errors.AppError) error {
	ok, err := c.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}

func (s *Service) Technicians(ctx context.Context, id string) ([]*TechnicianAssignment, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.GetTechnicians(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to list technicians", err)
	}
	out := make([]*TechnicianAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, TechnicianFromDataModel(row))
	}
	return out, nil
}

func (s *Service) AssignTechnician(ctx context.Context, id, technicianID string) (*TechnicianAssignment, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	notFound := errors.NewNotFoundError("Technician not found", errors.ErrCodeUserNotFound)
	if err := s.mustExist(ctx, s.users, technicianID, notFound); err != nil {
		return nil, err
	}
	linked, err := s.repo.HasTechnician(ctx, id, technicianID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check technician link", err)
	}
	if linked {
		return nil, ErrDuplicateLink("technician")
	}

	link := &maintenanceDatamodel.Technician{MaintenanceID: id, TechnicianID: technicianID}
	if err := s.repo.AddTechnician(ctx, link); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLink("technician")
		}
		s.logger.Error("failed to assign technician", "maintenance_id", id, "technician_id", technicianID, "error", err)
		return nil, errors.NewInternalError("failed to assign technician", err)
	}
	s.logger.Info("technician assigned", "maintenance_id", id, "technician_id", technicianID)
	return TechnicianFromDataModel(link), nil
}

func (s *Service) RemoveTechnician(ctx context.Context, id, technicianID string) error {
	n, err := s.repo.RemoveTechnician(ctx, id, technicianID)
	if err != nil {
		s.logger.Error("failed to remove technician", "maintenance_id", id, "technician_id", technicianID, "error", err)
		return errors.NewInternalError("failed to remove technician", err)
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *Service) Equipment(ctx context.Context, id string) ([]*EquipmentLink, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.GetEquipment(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to list maintenance equipment", err)
	}
	out := make([]*EquipmentLink, 0, len(rows))
	for _, row := range rows {
		out = append(out, EquipmentFromDataModel(row))
	}
	return out, nil
}

func (s *Service) AddEquipment(ctx context.Context, id, equipmentID string) (*EquipmentLink, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	notFound := errors.NewNotFoundError("Equipment not found", errors.ErrCodeEquipmentNotFound)
	if err := s.mustExist(ctx, s.equipment, equipmentID, notFound); err != nil {
		return nil, err
	}
	linked, err := s.repo.HasEquipment(ctx, id, equipmentID)
	if err != nil {
		return nil, errors.NewInternalError("failed to check equipment link", err)
	}
	if linked {
		return nil, ErrDuplicateLink("equipment")
	}

	link := &maintenanceDatamodel.Equipment{MaintenanceID: id, EquipmentID: equipmentID}
	if err := s.repo.AddEquipment(ctx, link); err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateLink("equipment")
		}
		s.logger.Error("failed to add equipment", "maintenance_id", id, "equipment_id", equipmentID, "error", err)
		return nil, errors.NewInternalError("failed to add equipment", err)
	}
	return EquipmentFromDataModel(link), nil
}

func (s *Service) RemoveEquipment(ctx context.Context, id, equipmentID string) error {
	n, err := s.repo.RemoveEquipment(ctx, id, equipmentID)
	if err != nil {
		s.logger.Error("failed to remove equipment", "maintenance_id", id, "equipment_id", equipmentID, "error", err)
		return errors.NewInternalError("failed to remove equipment", err)
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	return nil
}
