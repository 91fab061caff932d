package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/parc-info/internal/core/entity"
	"github.com/frahmantamala/parc-info/internal/core/events"
)

type EventHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewEventHandler(service *Service, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

// HandleLicenseUsage raises a high-priority license alert once every seat of
// a license is taken.
func (h *EventHandler) HandleLicenseUsage(ctx context.Context, event events.Event) error {
	usage, ok := event.(*events.LicenseUsageChangedEvent)
	if !ok {
		h.logger.Error("invalid event type for license usage handler", "event_type", event.EventType())
		return fmt.Errorf("expected LicenseUsageChangedEvent, got %T", event)
	}
	if !usage.OverCapacity() {
		return nil
	}

	ref := entity.Ref{Kind: entity.KindLicense, ID: usage.LicenseID}
	description := fmt.Sprintf("%d utilisateurs pour %d postes disponibles", usage.CurrentUsers, *usage.MaxUsers)
	a, created, err := h.service.RaiseOnce(ctx, CreateAlertDTO{
		Type:        TypeLicense,
		Title:       "Licence " + usage.Name + " saturée",
		Description: description,
		Priority:    PriorityHigh,
		Entity:      &ref,
	})
	if err != nil {
		return fmt.Errorf("raise alert for license %s: %w", usage.LicenseID, err)
	}
	if created {
		h.logger.Info("license capacity alert raised",
			"license_id", usage.LicenseID,
			"alert_id", a.ID,
			"event_id", usage.EventID())
	}
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeLicenseUsageChanged, h.HandleLicenseUsage)

	h.logger.Info("alert event handlers registered",
		"handlers", []string{events.EventTypeLicenseUsageChanged})
}
