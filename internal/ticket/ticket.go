package ticket

import (
	"time"

	errors "github.com/frahmantamala/parc-info/internal"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
)

const (
	StatusOpen       = "ouvert"
	StatusAssigned   = "assigné"
	StatusInProgress = "en cours"
	StatusResolved   = "résolu"
	StatusClosed     = "clôturé"

	PriorityLow    = "basse"
	PriorityMedium = "moyenne"
	PriorityHigh   = "haute"
)

var (
	Statuses   = []string{StatusOpen, StatusAssigned, StatusInProgress, StatusResolved, StatusClosed}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

	// OpenStatuses are the states counted as "open" on the dashboard.
	OpenStatuses = []string{StatusOpen, StatusAssigned, StatusInProgress}
)

type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	AssignedTo  *string   `json:"assignedTo"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	CreatedBy  string
	AssignedTo string
}

var ErrTicketNotFound = errors.NewNotFoundError("Ticket not found", errors.ErrCodeTicketNotFound)

func ErrUserNotFound(field string) *errors.AppError {
	return errors.NewValidationFieldError(field, field+" does not reference an existing user", errors.ErrCodeUserNotFound)
}

func ToDataModel(t *Ticket) *ticketDatamodel.Ticket {
	return &ticketDatamodel.Ticket{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromDataModel(t *ticketDatamodel.Ticket) *Ticket {
	return &Ticket{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
