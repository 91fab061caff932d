package license

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/events"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*licenseDatamodel.License, error)
	GetAll(ctx context.Context) ([]*licenseDatamodel.License, error)
	Create(ctx context.Context, l *licenseDatamodel.License) error
	Update(ctx context.Context, l *licenseDatamodel.License) error
	Delete(ctx context.Context, id string) error
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	events Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: publisher,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (*License, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, id string) (*licenseDatamodel.License, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get license", "license_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get license", err)
	}
	if row == nil {
		return nil, ErrLicenseNotFound
	}
	return row, nil
}

func (s *Service) List(ctx context.Context) ([]*License, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list licenses", "error", err)
		return nil, errors.NewInternalError("failed to list licenses", err)
	}
	out := make([]*License, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

// Expiring always returns an empty list: licenses carry no expiry date. The
// endpoint stays for clients that still poll it.
func (s *Service) Expiring(_ context.Context, days int) ([]*License, error) {
	if days < 0 {
		return nil, errors.NewValidationFieldError("days", "days must not be negative", errors.ErrCodeValidationFailed)
	}
	return []*License{}, nil
}

func (s *Service) Create(ctx context.Context, dto CreateLicenseDTO) (*License, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}

	row := &licenseDatamodel.License{
		Name:         strings.TrimSpace(dto.Name),
		Vendor:       strings.TrimSpace(dto.Vendor),
		Type:         strings.TrimSpace(dto.Type),
		LicenseKey:   dto.LicenseKey,
		MaxUsers:     dto.MaxUsers,
		CurrentUsers: dto.CurrentUsers,
		Cost:         dto.Cost,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create license", "error", err)
		return nil, errors.NewInternalError("failed to create license", err)
	}

	s.logger.Info("license created", "license_id", row.ID, "name", row.Name)
	s.publishUsage(ctx, row)
	return FromDataModel(row), nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateLicenseDTO) (*License, error) {
	if verr := dto.Validate(); verr != nil {
		return nil, verr
	}
	row, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	usageChanged := dto.MaxUsers.Set || dto.CurrentUsers != nil
	if dto.Name != nil {
		row.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Vendor != nil {
		row.Vendor = strings.TrimSpace(*dto.Vendor)
	}
	if dto.Type != nil {
		row.Type = strings.TrimSpace(*dto.Type)
	}
	dto.LicenseKey.Apply(&row.LicenseKey)
	dto.MaxUsers.Apply(&row.MaxUsers)
	if dto.CurrentUsers != nil {
		row.CurrentUsers = *dto.CurrentUsers
	}
	dto.Cost.Apply(&row.Cost)

	if err := s.repo.Update(ctx, row); err != nil {
		s.logger.Error("failed to update license", "license_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update license", err)
	}
	if usageChanged {
		s.publishUsage(ctx, row)
	}
	return FromDataModel(row), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete license", "license_id", id, "error", err)
		return errors.NewInternalError("failed to delete license", err)
	}
	return nil
}

func (s *Service) publishUsage(ctx context.Context, row *licenseDatamodel.License) {
	if s.events == nil {
		return
	}
	event := events.NewLicenseUsageChangedEvent(row.ID, row.Name, row.CurrentUsers, row.MaxUsers)
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish license usage", "license_id", row.ID, "error", err)
	}
}
