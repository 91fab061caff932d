package activity

import (
	"context"
	"log/slog"
	"strconv"

	errors "github.com/frahmantamala/parc-info/internal"
	activityDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/activity"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type RepositoryAPI interface {
	Create(ctx context.Context, a *activityDatamodel.Activity) error
	GetRecent(ctx context.Context, limit int) ([]*activityDatamodel.Activity, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record writes a to the log. Inside a transaction ctx the write joins it.
func (s *Service) Record(ctx context.Context, a *Activity) (*Activity, error) {
	if err := a.Entity.Validate(); err != nil {
		return nil, errors.NewValidationFieldError("entity", err.Error(), errors.ErrCodeInvalidEnum)
	}
	row := ToDataModel(a)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to record activity", "type", a.Type, "entity", a.Entity.String(), "error", err)
		return nil, errors.NewInternalError("failed to record activity", err)
	}
	return FromDataModel(row), nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]*Activity, error) {
	rows, err := s.repo.GetRecent(ctx, clampLimit(limit))
	if err != nil {
		s.logger.Error("failed to list activities", "error", err)
		return nil, errors.NewInternalError("failed to list activities", err)
	}
	out := make([]*Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ParseLimit reads the ?limit= query value.
func ParseLimit(raw string) (int, *errors.AppError) {
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.NewValidationFieldError("limit", "limit must be a positive integer", errors.ErrCodeValidationFailed)
	}
	return clampLimit(n), nil
}
