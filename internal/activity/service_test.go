package activity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frahmantamala/parc-info/internal/activity"
	activityPostgres "github.com/frahmantamala/parc-info/internal/activity/postgres"
	"github.com/frahmantamala/parc-info/internal/core/database"
	"github.com/frahmantamala/parc-info/internal/core/entity"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestActivity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Activity Suite")
}

var _ = Describe("Activity Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *activity.Service
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		service = activity.NewService(activityPostgres.NewActivityRepository(db), logger.Discard())
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	It("builds the equipment audit texts", func() {
		added := activity.EquipmentAdded("eq-1", "ThinkPad T14", "ordinateur")
		Expect(added.Title).To(Equal("ThinkPad T14 ajouté"))
		Expect(added.Description).To(Equal("Nouvel équipement de type ordinateur"))
		Expect(added.Status).To(Equal(activity.StatusNew))

		updated := activity.EquipmentUpdated("eq-1", "ThinkPad T14")
		Expect(updated.Title).To(Equal("ThinkPad T14 mis à jour"))
		Expect(updated.Entity).To(Equal(entity.Ref{Kind: entity.KindEquipment, ID: "eq-1"}))
	})

	It("records and returns the most recent entries first", func() {
		for i, model := range []string{"A", "B", "C"} {
			_, err := service.Record(ctx, activity.EquipmentAdded("eq-"+model, model, "serveur"))
			Expect(err).NotTo(HaveOccurred(), "entry %d", i)
			time.Sleep(2 * time.Millisecond)
		}

		recent, err := service.Recent(ctx, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(recent).To(HaveLen(2))
		Expect(recent[0].Title).To(Equal("C ajouté"))
		Expect(recent[1].Title).To(Equal("B ajouté"))
	})

	It("refuses an entry without a valid entity reference", func() {
		_, err := service.Record(ctx, &activity.Activity{Type: "x", Title: "x", Description: "x", Status: "x"})
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("ParseLimit",
		func(raw string, want int, ok bool) {
			got, appErr := activity.ParseLimit(raw)
			if !ok {
				Expect(appErr).NotTo(BeNil())
				return
			}
			Expect(appErr).To(BeNil())
			Expect(got).To(Equal(want))
		},
		Entry("default", "", activity.DefaultLimit, true),
		Entry("explicit", "5", 5, true),
		Entry("capped", "1000", activity.MaxLimit, true),
		Entry("zero", "0", 0, false),
		Entry("garbage", "abc", 0, false),
	)

	It("serves GET /api/activities", func() {
		_, err := service.Record(ctx, activity.EquipmentAdded("eq-1", "Dell R740", "serveur"))
		Expect(err).NotTo(HaveOccurred())

		handler := activity.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
		w := httptest.NewRecorder()
		handler.Recent(w, httptest.NewRequest(http.MethodGet, "/api/activities?limit=3", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Dell R740 ajouté"))
		Expect(w.Body.String()).To(ContainSubstring(`"kind":"equipment"`))

		w = httptest.NewRecorder()
		handler.Recent(w, httptest.NewRequest(http.MethodGet, "/api/activities?limit=-1", nil))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
