package license_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	appErrors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/database"
	"github.com/frahmantamala/parc-info/internal/core/events"
	"github.com/frahmantamala/parc-info/internal/license"
	licensePostgres "github.com/frahmantamala/parc-info/internal/license/postgres"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestLicense(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "License Suite")
}

func intPtr(n int) *int { return &n }

type recordingPublisher struct {
	mu     sync.Mutex
	events []*events.LicenseUsageChangedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if usage, ok := e.(*events.LicenseUsageChangedEvent); ok {
		p.events = append(p.events, usage)
	}
	return nil
}

var _ = Describe("License Service", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		publisher *recordingPublisher
		service   *license.Service
	)

	office := license.CreateLicenseDTO{Name: "Office 365", Vendor: "Microsoft", Type: "Bureautique", MaxUsers: intPtr(10), CurrentUsers: 4}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		publisher = &recordingPublisher{}
		service = license.NewService(licensePostgres.NewLicenseRepository(db), publisher, logger.Discard())
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	It("publishes usage on create", func() {
		created, err := service.Create(ctx, office)
		Expect(err).NotTo(HaveOccurred())
		Expect(publisher.events).To(HaveLen(1))
		Expect(publisher.events[0].LicenseID).To(Equal(created.ID))
		Expect(publisher.events[0].OverCapacity()).To(BeFalse())
		Expect(*created.SeatsLeft()).To(Equal(6))
	})

	It("publishes again only when seat counts change", func() {
		created, err := service.Create(ctx, office)
		Expect(err).NotTo(HaveOccurred())

		_, err = service.Update(ctx, created.ID, license.UpdateLicenseDTO{Name: strPtr("Microsoft 365")})
		Expect(err).NotTo(HaveOccurred())
		Expect(publisher.events).To(HaveLen(1))

		_, err = service.Update(ctx, created.ID, license.UpdateLicenseDTO{CurrentUsers: intPtr(10)})
		Expect(err).NotTo(HaveOccurred())
		Expect(publisher.events).To(HaveLen(2))
		Expect(publisher.events[1].OverCapacity()).To(BeTrue())
	})

	It("drops the seat limit on an explicit null", func() {
		created, err := service.Create(ctx, office)
		Expect(err).NotTo(HaveOccurred())

		updated, err := service.Update(ctx, created.ID, license.UpdateLicenseDTO{MaxUsers: nullable.Null[int]()})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.MaxUsers).To(BeNil())
		Expect(updated.SeatsLeft()).To(BeNil())
		Expect(updated.CurrentUsers).To(Equal(4))
	})

	It("rejects negative counts", func() {
		dto := office
		dto.CurrentUsers = -1
		_, err := service.Create(ctx, dto)
		appErr, ok := appErrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Details.(appErrors.ValidationErrors).Errors[0].Field).To(Equal("currentUsers"))

		created, err := service.Create(ctx, office)
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Update(ctx, created.ID, license.UpdateLicenseDTO{MaxUsers: nullable.Of(-3)})
		_, ok = appErrors.IsAppError(err)
		Expect(ok).To(BeTrue())
	})

	Describe("Handler", func() {
		It("answers the expiring endpoint with an empty array", func() {
			h := license.NewHandler(transport.NewBaseHandler(logger.Discard()), service)
			router := chi.NewRouter()
			router.Get("/api/licenses/expiring/{days}", h.Expiring)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/licenses/expiring/30", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
			var body []interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body).NotTo(BeNil())
			Expect(body).To(BeEmpty())

			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/licenses/expiring/soon", nil))
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

func strPtr(s string) *string { return &s }
