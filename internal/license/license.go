package license

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
)

type License struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Vendor       string    `json:"vendor"`
	Type         string    `json:"type"`
	LicenseKey   *string   `json:"licenseKey"`
	MaxUsers     *int      `json:"maxUsers"`
	CurrentUsers int       `json:"currentUsers"`
	Cost         *int64    `json:"cost"` // cents
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SeatsLeft is nil for licenses without a seat limit.
func (l *License) SeatsLeft() *int {
	if l.MaxUsers == nil {
		return nil
	}
	n := *l.MaxUsers - l.CurrentUsers
	if n < 0 {
		n = 0
	}
	return &n
}

var ErrLicenseNotFound = errors.NewNotFoundError("License not found", errors.ErrCodeLicenseNotFound)

func ToDataModel(l *License) *licenseDatamodel.License {
	return &licenseDatamodel.License{
		ID:           l.ID,
		Name:         l.Name,
		Vendor:       l.Vendor,
		Type:         l.Type,
		LicenseKey:   l.LicenseKey,
		MaxUsers:     l.MaxUsers,
		CurrentUsers: l.CurrentUsers,
		Cost:         l.Cost,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func FromDataModel(l *licenseDatamodel.License) *License {
	return &License{
		ID:           l.ID,
		Name:         l.Name,
		Vendor:       l.Vendor,
		Type:         l.Type,
		LicenseKey:   l.LicenseKey,
		MaxUsers:     l.MaxUsers,
		CurrentUsers: l.CurrentUsers,
		Cost:         l.Cost,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
