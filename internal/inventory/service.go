package inventory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/validation"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*inventoryDatamodel.Item, error)
	GetAll(ctx context.Context) ([]*inventoryDatamodel.Item, error)
	Create(ctx context.Context, i *inventoryDatamodel.Item) error
	Update(ctx context.Context, i *inventoryDatamodel.Item) error
	Delete(ctx context.Context, id string) error
}

// Checker reports whether a referenced record exists.
type Checker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo      RepositoryAPI
	equipment Checker
	employees Checker
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo RepositoryAPI, equipment, employees Checker, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		equipment: equipment,
		employees: employees,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Item, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, id string) (*inventoryDatamodel.Item, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get inventory item", "inventory_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get inventory item", err)
	}
	if row == nil {
		return nil, ErrItemNotFound
	}
	return row, nil
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list inventory", "error", err)
		return nil, errors.NewInternalError("failed to list inventory", err)
	}
	out := make([]*Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) check(ctx context.Context, c Checker, field string, id *string, code errors.ErrorCode) error {
	if id == nil {
		return nil
	}
	ok, err := c.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewValidationFieldError(field, field+" does not reference an existing record", code)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, dto CreateItemDTO) (*Item, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	if err := s.check(ctx, s.equipment, "equipmentId", &dto.EquipmentID, errors.ErrCodeEquipmentNotFound); err != nil {
		return nil, err
	}
	if err := s.check(ctx, s.employees, "assignedTo", dto.AssignedTo, errors.ErrCodeEmployeeNotFound); err != nil {
		return nil, err
	}

	row := &inventoryDatamodel.Item{
		EquipmentID: dto.EquipmentID,
		AssignedTo:  dto.AssignedTo,
		Location:    strings.TrimSpace(dto.Location),
		LastChecked: s.now(),
		Condition:   dto.Condition,
	}
	if dto.LastChecked != "" {
		checked, _ := validation.ParseDateTime(dto.LastChecked)
		row.LastChecked = checked.UTC()
	}
	if row.Condition == "" {
		row.Condition = ConditionWorking
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create inventory item", "error", err)
		return nil, errors.NewInternalError("failed to create inventory item", err)
	}
	s.logger.Info("inventory item created", "inventory_id", row.ID, "equipment_id", row.EquipmentID)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateItemDTO) (*Item, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.EquipmentID != nil {
		if err := s.check(ctx, s.equipment, "equipmentId", dto.EquipmentID, errors.ErrCodeEquipmentNotFound); err != nil {
			return nil, err
		}
		row.EquipmentID = *dto.EquipmentID
	}
	if dto.AssignedTo.Set {
		if err := s.check(ctx, s.employees, "assignedTo", dto.AssignedTo.Ptr, errors.ErrCodeEmployeeNotFound); err != nil {
			return nil, err
		}
		dto.AssignedTo.Apply(&row.AssignedTo)
	}
	if dto.Location != nil {
		row.Location = strings.TrimSpace(*dto.Location)
	}
	if dto.LastChecked != nil {
		checked, _ := validation.ParseDateTime(*dto.LastChecked)
		row.LastChecked = checked.UTC()
	}
	if dto.Condition != nil {
		row.Condition = *dto.Condition
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update inventory item", "inventory_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update inventory item", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete inventory item", "inventory_id", id, "error", err)
		return errors.NewInternalError("failed to delete inventory item", err)
	}
	return nil
}
