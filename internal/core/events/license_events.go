package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeLicenseUsageChanged = "license.usage_changed"

// LicenseUsageChangedEvent is published whenever a license is created or its
// seat counts change.
type LicenseUsageChangedEvent struct {
	BaseEvent
	LicenseID    string `json:"license_id"`
	Name         string `json:"name"`
	CurrentUsers int    `json:"current_users"`
	MaxUsers     *int   `json:"max_users,omitempty"`
}

func NewLicenseUsageChangedEvent(licenseID, name string, currentUsers int, maxUsers *int) *LicenseUsageChangedEvent {
	data := map[string]interface{}{
		"license_id":    licenseID,
		"name":          name,
		"current_users": currentUsers,
	}
	if maxUsers != nil {
		data["max_users"] = *maxUsers
	}
	return &LicenseUsageChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLicenseUsageChanged,
			Timestamp: time.Now().UTC(),
			Data:      data,
		},
		LicenseID:    licenseID,
		Name:         name,
		CurrentUsers: currentUsers,
		MaxUsers:     maxUsers,
	}
}

// OverCapacity reports whether every seat is taken.
func (e *LicenseUsageChangedEvent) OverCapacity() bool {
	return e.MaxUsers != nil && e.CurrentUsers >= *e.MaxUsers
}
