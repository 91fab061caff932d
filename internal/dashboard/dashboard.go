package dashboard

import (
	"github.com/frahmantamala/parc-info/internal/activity"
	"github.com/frahmantamala/parc-info/internal/alert"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"github.com/frahmantamala/parc-info/internal/maintenance"
)

const (
	// TicketWindowDays is the length of the ticket trend, today included.
	TicketWindowDays = 7
	AlertLimit       = 5
	UpcomingDays     = 7
	UpcomingLimit    = 3
	ActivityLimit    = 5
)

type DayCount struct {
	Date     string `json:"date"`
	Created  int    `json:"created"`
	Resolved int    `json:"resolved"`
}

type Stats struct {
	TotalEquipment       int64                   `json:"totalEquipment"`
	OpenTickets          int64                   `json:"openTickets"`
	ActiveUsers          int64                   `json:"activeUsers"`
	ExpiringLicenses     int                     `json:"expiringLicenses"`
	EquipmentByStatus    []equipment.StatusCount `json:"equipmentByStatus"`
	TicketsByDay         []DayCount              `json:"ticketsByDay"`
	RecentActivities     []*activity.Activity    `json:"recentActivities"`
	Alerts               []*alert.Alert          `json:"alerts"`
	UpcomingMaintenances []*maintenance.Schedule `json:"upcomingMaintenances"`
}
