package equipment_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	appErrors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/activity"
	activityPostgres "github.com/frahmantamala/parc-info/internal/activity/postgres"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/database"
	inventoryDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/inventory"
	maintenanceDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/maintenance"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/employee"
	employeePostgres "github.com/frahmantamala/parc-info/internal/employee/postgres"
	"github.com/frahmantamala/parc-info/internal/equipment"
	equipmentPostgres "github.com/frahmantamala/parc-info/internal/equipment/postgres"
	"github.com/frahmantamala/parc-info/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestEquipment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Equipment Suite")
}

func strPtr(s string) *string { return &s }

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, *activity.Activity) (*activity.Activity, error) {
	return nil, errors.New("activity store unavailable")
}

func statusOf(err error) int {
	appErr, ok := appErrors.IsAppError(err)
	Expect(ok).To(BeTrue(), "expected an AppError, got %v", err)
	return appErr.StatusCode
}

var _ = Describe("Equipment Service", func() {
	var (
		ctx        context.Context
		db         *gorm.DB
		repo       equipment.RepositoryAPI
		activities *activity.Service
		employees  *employee.Service
		service    *equipment.Service
	)

	laptop := func(serial string) equipment.CreateEquipmentDTO {
		return equipment.CreateEquipmentDTO{
			Type:         equipment.TypeComputer,
			Model:        "ThinkPad T14",
			SerialNumber: serial,
			PurchaseDate: "2024-03-01",
		}
	}

	BeforeEach(func() {
		var err error
		ctx = appErrors.ContextWithUserID(context.Background(), "user-1")
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Create(&userDatamodel.User{ID: "user-1", Email: "user1@parc.fr", PasswordHash: "x", Role: "technicien", IsActive: true}).Error).To(Succeed())

		repo = equipmentPostgres.NewEquipmentRepository(db)
		activities = activity.NewService(activityPostgres.NewActivityRepository(db), logger.Discard())
		employees = employee.NewService(employeePostgres.NewEmployeeRepository(db), logger.Discard())
		service = equipment.NewService(repo, activities, employees, database.NewTxManager(db), logger.Discard())
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	Describe("Create", func() {
		It("defaults the status and records an activity", func() {
			created, err := service.Create(ctx, laptop("SN-1"))
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(equipment.StatusInService))
			Expect(created.PurchaseDate.Format("2006-01-02")).To(Equal("2024-03-01"))

			recent, err := activities.Recent(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(recent).To(HaveLen(1))
			Expect(recent[0].Type).To(Equal(activity.TypeEquipmentAdded))
			Expect(recent[0].Title).To(Equal("ThinkPad T14 ajouté"))
			Expect(recent[0].Entity.ID).To(Equal(created.ID))
		})

		It("rejects an unknown type and a bad date", func() {
			dto := laptop("SN-1")
			dto.Type = "tablette"
			dto.PurchaseDate = "01/03/2024"
			_, err := service.Create(ctx, dto)
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			details := appErr.Details.(appErrors.ValidationErrors)
			fields := []string{}
			for _, e := range details.Errors {
				fields = append(fields, e.Field)
			}
			Expect(fields).To(ConsistOf("type", "purchaseDate"))
		})

		It("rejects a duplicate serial number", func() {
			_, err := service.Create(ctx, laptop("SN-1"))
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(ctx, laptop("SN-1"))
			Expect(statusOf(err)).To(Equal(409))
		})

		It("rejects an assignee that does not exist", func() {
			dto := laptop("SN-1")
			dto.AssignedTo = strPtr("missing")
			_, err := service.Create(ctx, dto)
			Expect(statusOf(err)).To(Equal(400))
		})

		It("rolls the insert back when the activity cannot be written", func() {
			broken := equipment.NewService(repo, failingRecorder{}, employees, database.NewTxManager(db), logger.Discard())
			_, err := broken.Create(ctx, laptop("SN-1"))
			Expect(statusOf(err)).To(Equal(500))

			all, err := service.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		var created *equipment.Equipment

		BeforeEach(func() {
			var err error
			created, err = service.Create(ctx, laptop("SN-1"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("writes a history entry with the changed fields only", func() {
			_, err := service.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{
				Status: strPtr(equipment.StatusMaintenance),
				Model:  strPtr("ThinkPad T14"),
			})
			Expect(err).NotTo(HaveOccurred())

			history, err := service.History(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].UpdatedBy).To(Equal("user-1"))

			var changes map[string]map[string]string
			Expect(json.Unmarshal([]byte(history[0].Changes), &changes)).To(Succeed())
			Expect(changes).To(HaveKey("status"))
			Expect(changes).NotTo(HaveKey("model"))
			Expect(changes["status"]["from"]).To(Equal(equipment.StatusInService))
			Expect(changes["status"]["to"]).To(Equal(equipment.StatusMaintenance))
		})

		It("records an update activity", func() {
			_, err := service.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{Model: strPtr("ThinkPad T16")})
			Expect(err).NotTo(HaveOccurred())

			recent, err := activities.Recent(ctx, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(recent).To(HaveLen(2))
			types := []string{recent[0].Type, recent[1].Type}
			Expect(types).To(ContainElement(activity.TypeEquipmentUpdated))
		})

		It("clears the assignee on an explicit null", func() {
			emp, err := employees.Create(ctx, employee.CreateEmployeeDTO{
				Name: "Alice", Email: "alice@parc.fr", Department: "IT", Position: "Dev",
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{AssignedTo: nullable.Of(emp.ID)})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AssignedTo).To(HaveValue(Equal(emp.ID)))

			mine, err := service.ListByEmployee(ctx, emp.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(mine).To(HaveLen(1))

			updated, err = service.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{AssignedTo: nullable.Null[string]()})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AssignedTo).To(BeNil())
		})

		It("rejects taking another item's serial number", func() {
			_, err := service.Create(ctx, laptop("SN-2"))
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{SerialNumber: strPtr("SN-2")})
			Expect(statusOf(err)).To(Equal(409))
		})

		It("returns 404 for an unknown id", func() {
			_, err := service.Update(ctx, "nope", equipment.UpdateEquipmentDTO{})
			Expect(statusOf(err)).To(Equal(404))
		})

		It("keeps the old values when the transaction fails", func() {
			broken := equipment.NewService(repo, failingRecorder{}, employees, database.NewTxManager(db), logger.Discard())
			_, err := broken.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{Status: strPtr(equipment.StatusRetired)})
			Expect(err).To(HaveOccurred())

			got, err := service.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(equipment.StatusInService))
			history, err := service.History(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		var created *equipment.Equipment

		BeforeEach(func() {
			var err error
			created, err = service.Create(ctx, laptop("SN-1"))
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes history and maintenance links with the equipment", func() {
			_, err := service.Update(ctx, created.ID, equipment.UpdateEquipmentDTO{Status: strPtr(equipment.StatusRetired)})
			Expect(err).NotTo(HaveOccurred())
			Expect(db.Create(&maintenanceDatamodel.Schedule{
				ID: "m-1", Type: "preventive", Title: "Révision", Description: "d",
				StartDate: time.Now().UTC(), EndDate: time.Now().UTC(), Status: "planifie",
			}).Error).To(Succeed())
			Expect(db.Create(&maintenanceDatamodel.Equipment{MaintenanceID: "m-1", EquipmentID: created.ID}).Error).To(Succeed())

			Expect(service.Delete(ctx, created.ID)).To(Succeed())

			_, err = service.GetByID(ctx, created.ID)
			Expect(statusOf(err)).To(Equal(404))
			var links int64
			Expect(db.Model(&maintenanceDatamodel.Equipment{}).Count(&links).Error).To(Succeed())
			Expect(links).To(BeZero())
		})

		It("refuses while an inventory item points at it", func() {
			Expect(db.Create(&inventoryDatamodel.Item{EquipmentID: created.ID, Location: "Bureau 12", Condition: "fonctionnel"}).Error).To(Succeed())
			err := service.Delete(ctx, created.ID)
			Expect(statusOf(err)).To(Equal(409))
		})
	})

	Describe("assigned employee", func() {
		It("is cleared when the employee is deleted", func() {
			emp, err := employees.Create(ctx, employee.CreateEmployeeDTO{Name: "Alice Martin", Email: "alice@parc.fr", Department: "IT", Position: "Dev"})
			Expect(err).NotTo(HaveOccurred())
			dto := laptop("SN-7")
			dto.AssignedTo = strPtr(emp.ID)
			created, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())

			Expect(employees.Delete(ctx, emp.ID)).To(Succeed())

			got, err := service.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AssignedTo).To(BeNil())
		})
	})
})
