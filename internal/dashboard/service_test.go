package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frahmantamala/parc-info/internal/activity"
	"github.com/frahmantamala/parc-info/internal/alert"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"github.com/frahmantamala/parc-info/internal/maintenance"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDashboard(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dashboard Suite")
}

type fakeSources struct {
	equipmentCount int64
	breakdown      []equipment.StatusCount
	openTickets    int64
	created        []time.Time
	resolved       []time.Time
	since          time.Time
	activeUsers    int64
	alerts         []*alert.Alert
	alertLimit     int
	upcoming       []*maintenance.Schedule
	upcomingArgs   [2]int
	activities     []*activity.Activity
	activityLimit  int
	failTickets    error
}

func (f *fakeSources) Count(context.Context) (int64, error) { return f.equipmentCount, nil }

func (f *fakeSources) StatusBreakdown(context.Context) ([]equipment.StatusCount, error) {
	return f.breakdown, nil
}

func (f *fakeSources) CountOpen(context.Context) (int64, error) {
	if f.failTickets != nil {
		return 0, f.failTickets
	}
	return f.openTickets, nil
}

func (f *fakeSources) Timeline(_ context.Context, since time.Time) ([]time.Time, []time.Time, error) {
	f.since = since
	return f.created, f.resolved, nil
}

func (f *fakeSources) CountActive(context.Context) (int64, error) { return f.activeUsers, nil }

func (f *fakeSources) Open(_ context.Context, limit int) ([]*alert.Alert, error) {
	f.alertLimit = limit
	return f.alerts, nil
}

func (f *fakeSources) Upcoming(_ context.Context, days, limit int) ([]*maintenance.Schedule, error) {
	f.upcomingArgs = [2]int{days, limit}
	return f.upcoming, nil
}

func (f *fakeSources) Recent(_ context.Context, limit int) ([]*activity.Activity, error) {
	f.activityLimit = limit
	return f.activities, nil
}

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	Expect(err).NotTo(HaveOccurred())
	return t
}

var _ = Describe("Dashboard Service", func() {
	var (
		fake    *fakeSources
		service *Service
	)

	BeforeEach(func() {
		fake = &fakeSources{}
		service = NewService(Sources{
			Equipment:   fake,
			Tickets:     fake,
			Users:       fake,
			Alerts:      fake,
			Maintenance: fake,
			Activities:  fake,
		}, logger.Discard())
		service.now = func() time.Time { return at("2025-06-10T15:30:00Z") }
	})

	It("collects counters and passes the fixed limits", func() {
		fake.equipmentCount = 12
		fake.openTickets = 4
		fake.activeUsers = 3
		fake.breakdown = []equipment.StatusCount{{Status: equipment.StatusInService, Count: 10}, {Status: equipment.StatusRetired, Count: 2}}

		stats, err := service.Stats(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.TotalEquipment).To(Equal(int64(12)))
		Expect(stats.OpenTickets).To(Equal(int64(4)))
		Expect(stats.ActiveUsers).To(Equal(int64(3)))
		Expect(stats.ExpiringLicenses).To(Equal(0))
		Expect(stats.EquipmentByStatus).To(HaveLen(2))

		Expect(fake.alertLimit).To(Equal(AlertLimit))
		Expect(fake.upcomingArgs).To(Equal([2]int{UpcomingDays, UpcomingLimit}))
		Expect(fake.activityLimit).To(Equal(ActivityLimit))
	})

	It("buckets tickets over the last seven days, zero-filled", func() {
		fake.created = []time.Time{
			at("2025-06-04T08:00:00Z"),
			at("2025-06-10T09:00:00Z"),
			at("2025-06-10T10:00:00Z"),
		}
		fake.resolved = []time.Time{at("2025-06-09T17:00:00Z")}

		stats, err := service.Stats(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(fake.since).To(Equal(at("2025-06-04T00:00:00Z")))
		Expect(stats.TicketsByDay).To(HaveLen(TicketWindowDays))
		Expect(stats.TicketsByDay[0]).To(Equal(DayCount{Date: "2025-06-04", Created: 1}))
		Expect(stats.TicketsByDay[1]).To(Equal(DayCount{Date: "2025-06-05"}))
		Expect(stats.TicketsByDay[5]).To(Equal(DayCount{Date: "2025-06-09", Resolved: 1}))
		Expect(stats.TicketsByDay[6]).To(Equal(DayCount{Date: "2025-06-10", Created: 2}))
	})

	It("returns empty arrays rather than nulls", func() {
		stats, err := service.Stats(context.Background())
		Expect(err).NotTo(HaveOccurred())

		body, err := json.Marshal(stats)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring(`"equipmentByStatus":[]`))
		Expect(string(body)).To(ContainSubstring(`"alerts":[]`))
		Expect(string(body)).To(ContainSubstring(`"upcomingMaintenances":[]`))
		Expect(string(body)).To(ContainSubstring(`"recentActivities":[]`))
	})

	It("fails when any query fails", func() {
		fake.failTickets = errors.New("connection reset")

		_, err := service.Stats(context.Background())
		Expect(err).To(MatchError("connection reset"))
	})

	Describe("Handler", func() {
		It("serves the stats as JSON", func() {
			fake.equipmentCount = 2
			handler := NewHandler(transport.NewBaseHandler(logger.Discard()), service)

			rec := httptest.NewRecorder()
			handler.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["totalEquipment"]).To(BeEquivalentTo(2))
			Expect(body["ticketsByDay"]).To(HaveLen(TicketWindowDays))
		})

		It("hides internal failures behind a 500", func() {
			fake.failTickets = errors.New("connection reset")
			handler := NewHandler(transport.NewBaseHandler(logger.Discard()), service)

			rec := httptest.NewRecorder()
			handler.Stats(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).NotTo(ContainSubstring("connection reset"))
		})
	})
})
