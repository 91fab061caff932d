package alert

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	errors "github.com/frahmantamala/parc-info/internal"
	alertDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/alert"
	"github.com/frahmantamala/parc-info/internal/core/entity"
)

const (
	DefaultOpenLimit = 5
	MaxOpenLimit     = 100
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*alertDatamodel.Alert, error)
	GetAll(ctx context.Context, filter Filter) ([]*alertDatamodel.Alert, error)
	GetOpen(ctx context.Context, limit int) ([]*alertDatamodel.Alert, error)
	HasUnresolved(ctx context.Context, ref entity.Ref) (bool, error)
	Create(ctx context.Context, a *alertDatamodel.Alert) error
	Update(ctx context.Context, a *alertDatamodel.Alert) error
	Delete(ctx context.Context, id string) error
}

type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	users  UserChecker
	logger *slog.Logger

	// serializes the lookup and insert of RaiseOnce
	raising sync.Mutex
}

func NewService(repo RepositoryAPI, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Alert, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, id string) (*alertDatamodel.Alert, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get alert", "alert_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get alert", err)
	}
	if row == nil {
		return nil, ErrAlertNotFound
	}
	return row, nil
}

func fromRows(rows []*alertDatamodel.Alert) []*Alert {
	out := make([]*Alert, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Alert, error) {
	if verr := filter.Validate(); verr != nil {
		return nil, verr
	}
	rows, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list alerts", "error", err)
		return nil, errors.NewInternalError("failed to list alerts", err)
	}
	return fromRows(rows), nil
}

// Open returns unresolved alerts, newest first.
func (s *Service) Open(ctx context.Context, limit int) ([]*Alert, error) {
	if limit <= 0 {
		limit = DefaultOpenLimit
	}
	if limit > MaxOpenLimit {
		limit = MaxOpenLimit
	}
	rows, err := s.repo.GetOpen(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list open alerts", "error", err)
		return nil, errors.NewInternalError("failed to list open alerts", err)
	}
	return fromRows(rows), nil
}

func (s *Service) checkUser(ctx context.Context, id *string) error {
	if id == nil || s.users == nil {
		return nil
	}
	ok, err := s.users.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewValidationFieldError("assignedTo", "assignedTo does not reference an existing user", errors.ErrCodeUserNotFound)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, dto CreateAlertDTO) (*Alert, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	if err := s.checkUser(ctx, dto.AssignedTo); err != nil {
		return nil, err
	}

	a := &Alert{
		Type:        dto.Type,
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		Priority:    dto.Priority,
		Status:      dto.Status,
		AssignedTo:  dto.AssignedTo,
		Entity:      dto.Entity,
	}
	if a.Status == "" {
		a.Status = StatusNew
	}
	if uid := errors.UserIDFromContext(ctx); uid != "" {
		a.CreatedBy = &uid
	}

	row := ToDataModel(a)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create alert", "error", err)
		return nil, errors.NewInternalError("failed to create alert", err)
	}
	s.logger.Info("alert created", "alert_id", row.ID, "type", row.Type, "priority", row.Priority)
	return FromDataModel(row), nil
}

// RaiseOnce creates the alert unless an unresolved one already points at the
// same entity. created reports whether a new alert was written.
func (s *Service) RaiseOnce(ctx context.Context, dto CreateAlertDTO) (a *Alert, created bool, err error) {
	if dto.Entity == nil {
		return nil, false, errors.NewValidationFieldError("entity", "entity is required", errors.ErrCodeValidationFailed)
	}
	s.raising.Lock()
	defer s.raising.Unlock()

	exists, err := s.repo.HasUnresolved(ctx, *dto.Entity)
	if err != nil {
		return nil, false, errors.NewInternalError("failed to look up alerts", err)
	}
	if exists {
		return nil, false, nil
	}
	a, err = s.Create(ctx, dto)
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateAlertDTO) (*Alert, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	a := FromDataModel(row)

	if dto.Type != nil {
		a.Type = *dto.Type
	}
	if dto.Title != nil {
		a.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		a.Description = *dto.Description
	}
	if dto.Priority != nil {
		a.Priority = *dto.Priority
	}
	if dto.Status != nil {
		a.Status = *dto.Status
	}
	if dto.AssignedTo.Set {
		if err := s.checkUser(ctx, dto.AssignedTo.Ptr); err != nil {
			return nil, err
		}
		dto.AssignedTo.Apply(&a.AssignedTo)
	}
	dto.Entity.Apply(&a.Entity)

	updated := ToDataModel(a)
	if err := s.repo.Update(ctx, updated); err != nil {
		s.logger.Error("failed to update alert", "alert_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update alert", err)
	}
	return FromDataModel(updated), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete alert", "alert_id", id, "error", err)
		return errors.NewInternalError("failed to delete alert", err)
	}
	return nil
}
