package ticket

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*ticketDatamodel.Ticket, error)
	GetAll(ctx context.Context, filter Filter) ([]*ticketDatamodel.Ticket, error)
	Create(ctx context.Context, t *ticketDatamodel.Ticket) error
	Update(ctx context.Context, t *ticketDatamodel.Ticket) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, statuses ...string) (int64, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
	ResolvedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	users  UserChecker
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*Ticket, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, id string) (*ticketDatamodel.Ticket, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get ticket", err)
	}
	if row == nil {
		return nil, ErrTicketNotFound
	}
	return row, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Ticket, error) {
	rows, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tickets", "error", err)
		return nil, errors.NewInternalError("failed to list tickets", err)
	}
	out := make([]*Ticket, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) ListByCreator(ctx context.Context, userID string) ([]*Ticket, error) {
	return s.List(ctx, Filter{CreatedBy: userID})
}

func (s *Service) ListByAssignee(ctx context.Context, userID string) ([]*Ticket, error) {
	return s.List(ctx, Filter{AssignedTo: userID})
}

func (s *Service) checkUser(ctx context.Context, field string, id *string) error {
	if id == nil {
		return nil
	}
	ok, err := s.users.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound(field)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, dto CreateTicketDTO) (*Ticket, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	createdBy := errors.UserIDFromContext(ctx)
	if dto.CreatedBy != nil && *dto.CreatedBy != "" {
		createdBy = *dto.CreatedBy
	}
	if createdBy == "" {
		return nil, errors.NewValidationFieldError("createdBy", "createdBy is required", errors.ErrCodeValidationFailed)
	}
	if err := s.checkUser(ctx, "createdBy", &createdBy); err != nil {
		return nil, err
	}
	if err := s.checkUser(ctx, "assignedTo", dto.AssignedTo); err != nil {
		return nil, err
	}

	row := &ticketDatamodel.Ticket{
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		CreatedBy:   createdBy,
		AssignedTo:  dto.AssignedTo,
		Status:      dto.Status,
		Priority:    dto.Priority,
	}
	if row.Status == "" {
		row.Status = StatusOpen
	}
	if row.Priority == "" {
		row.Priority = PriorityMedium
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create ticket", "error", err)
		return nil, errors.NewInternalError("failed to create ticket", err)
	}
	s.logger.Info("ticket created", "ticket_id", row.ID, "priority", row.Priority)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateTicketDTO) (*Ticket, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		row.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Description != nil {
		row.Description = *dto.Description
	}
	if dto.AssignedTo.Set {
		if err := s.checkUser(ctx, "assignedTo", dto.AssignedTo.Ptr); err != nil {
			return nil, err
		}
		dto.AssignedTo.Apply(&row.AssignedTo)
	}
	if dto.Status != nil {
		row.Status = *dto.Status
	}
	if dto.Priority != nil {
		row.Priority = *dto.Priority
	}

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update ticket", "ticket_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update ticket", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete ticket", "ticket_id", id, "error", err)
		return errors.NewInternalError("failed to delete ticket", err)
	}
	return nil
}

// CountOpen counts tickets that still need work.
func (s *Service) CountOpen(ctx context.Context) (int64, error) {
	n, err := s.repo.CountByStatus(ctx, OpenStatuses...)
	if err != nil {
		return 0, errors.NewInternalError("failed to count tickets", err)
	}
	return n, nil
}

// Timeline returns the creation times of tickets opened since the given
// instant, and the last-update times of those resolved since then.
func (s *Service) Timeline(ctx context.Context, since time.Time) (created, resolved []time.Time, err error) {
	created, err = s.repo.CreatedSince(ctx, since)
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to load ticket timeline", err)
	}
	resolved, err = s.repo.ResolvedSince(ctx, since)
	if err != nil {
		return nil, nil, errors.NewInternalError("failed to load ticket timeline", err)
	}
	return created, resolved, nil
}
