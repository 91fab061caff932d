package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/parc-info/internal/activity"
	"github.com/frahmantamala/parc-info/internal/alert"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"github.com/frahmantamala/parc-info/internal/maintenance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

var statsDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "parc_dashboard_stats_duration_seconds",
	Help:    "Time spent computing dashboard statistics.",
	Buckets: prometheus.DefBuckets,
})

type EquipmentSource interface {
	Count(ctx context.Context) (int64, error)
	StatusBreakdown(ctx context.Context) ([]equipment.StatusCount, error)
}

type TicketSource interface {
	CountOpen(ctx context.Context) (int64, error)
	Timeline(ctx context.Context, since time.Time) (created, resolved []time.Time, err error)
}

type UserSource interface {
	CountActive(ctx context.Context) (int64, error)
}

type AlertSource interface {
	Open(ctx context.Context, limit int) ([]*alert.Alert, error)
}

type MaintenanceSource interface {
	Upcoming(ctx context.Context, days, limit int) ([]*maintenance.Schedule, error)
}

type ActivitySource interface {
	Recent(ctx context.Context, limit int) ([]*activity.Activity, error)
}

type Sources struct {
	Equipment   EquipmentSource
	Tickets     TicketSource
	Users       UserSource
	Alerts      AlertSource
	Maintenance MaintenanceSource
	Activities  ActivitySource
}

type Service struct {
	src    Sources
	logger *slog.Logger
	now    func() time.Time
}

func NewService(src Sources, logger *slog.Logger) *Service {
	return &Service{
		src:    src,
		logger: logger,
		now:    time.Now,
	}
}

// Stats runs the independent queries concurrently. The first failure cancels
// the others.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	timer := prometheus.NewTimer(statsDuration)
	defer timer.ObserveDuration()

	today := s.now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -(TicketWindowDays - 1))

	var (
		stats             Stats
		created, resolved []time.Time
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalEquipment, err = s.src.Equipment.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.EquipmentByStatus, err = s.src.Equipment.StatusBreakdown(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.OpenTickets, err = s.src.Tickets.CountOpen(ctx)
		return err
	})
	g.Go(func() (err error) {
		created, resolved, err = s.src.Tickets.Timeline(ctx, windowStart)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveUsers, err = s.src.Users.CountActive(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Alerts, err = s.src.Alerts.Open(ctx, AlertLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.UpcomingMaintenances, err = s.src.Maintenance.Upcoming(ctx, UpcomingDays, UpcomingLimit)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentActivities, err = s.src.Activities.Recent(ctx, ActivityLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to compute dashboard stats", "error", err)
		return nil, err
	}

	stats.TicketsByDay = bucketByDay(windowStart, TicketWindowDays, created, resolved)
	ensureSlices(&stats)
	return &stats, nil
}

// bucketByDay zero-fills one entry per UTC day starting at start.
func bucketByDay(start time.Time, days int, created, resolved []time.Time) []DayCount {
	out := make([]DayCount, days)
	index := make(map[string]int, days)
	for i := range out {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		out[i].Date = date
		index[date] = i
	}
	for _, t := range created {
		if i, ok := index[t.UTC().Format("2006-01-02")]; ok {
			out[i].Created++
		}
	}
	for _, t := range resolved {
		if i, ok := index[t.UTC().Format("2006-01-02")]; ok {
			out[i].Resolved++
		}
	}
	return out
}

func ensureSlices(s *Stats) {
	if s.EquipmentByStatus == nil {
		s.EquipmentByStatus = []equipment.StatusCount{}
	}
	if s.RecentActivities == nil {
		s.RecentActivities = []*activity.Activity{}
	}
	if s.Alerts == nil {
		s.Alerts = []*alert.Alert{}
	}
	if s.UpcomingMaintenances == nil {
		s.UpcomingMaintenances = []*maintenance.Schedule{}
	}
}
