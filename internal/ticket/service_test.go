package ticket_test

import (
	"context"
	"testing"
	"time"

	appErrors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	"github.com/frahmantamala/parc-info/internal/core/database"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/ticket"
	ticketPostgres "github.com/frahmantamala/parc-info/internal/ticket/postgres"
	"github.com/frahmantamala/parc-info/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestTicket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ticket Suite")
}

func strPtr(s string) *string { return &s }

type knownUsers map[string]bool

func (k knownUsers) Exists(_ context.Context, id string) (bool, error) {
	return k[id], nil
}

var _ = Describe("Ticket Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		service *ticket.Service
	)

	BeforeEach(func() {
		var err error
		ctx = appErrors.ContextWithUser(context.Background(), "alice", "utilisateur")
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		for _, id := range []string{"alice", "bob"} {
			Expect(db.Create(&userDatamodel.User{ID: id, Email: id + "@parc.fr", PasswordHash: "x", Role: "utilisateur", IsActive: true}).Error).To(Succeed())
		}
		users := knownUsers{"alice": true, "bob": true}
		service = ticket.NewService(ticketPostgres.NewTicketRepository(db), users, logger.Discard())
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	It("defaults creator, status and priority", func() {
		created, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "Écran noir", Description: "Plus d'affichage"})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.CreatedBy).To(Equal("alice"))
		Expect(created.Status).To(Equal(ticket.StatusOpen))
		Expect(created.Priority).To(Equal(ticket.PriorityMedium))

		got, err := service.GetByID(ctx, created.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Title).To(Equal("Écran noir"))
	})

	It("rejects unknown enum values", func() {
		_, err := service.Create(ctx, ticket.CreateTicketDTO{
			Title: "x", Description: "y", Status: "fermé", Priority: "urgente",
		})
		appErr, ok := appErrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Details.(appErrors.ValidationErrors).Errors).To(HaveLen(2))
	})

	It("rejects an assignee that is not a user", func() {
		_, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "x", Description: "y", AssignedTo: strPtr("ghost")})
		appErr, ok := appErrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(400))
	})

	It("filters by creator and assignee", func() {
		_, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "a", Description: "a", AssignedTo: strPtr("bob")})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(ctx, ticket.CreateTicketDTO{Title: "b", Description: "b", CreatedBy: strPtr("bob")})
		Expect(err).NotTo(HaveOccurred())

		mine, err := service.ListByCreator(ctx, "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(mine).To(HaveLen(1))

		bobs, err := service.ListByAssignee(ctx, "bob")
		Expect(err).NotTo(HaveOccurred())
		Expect(bobs).To(HaveLen(1))
		Expect(bobs[0].Title).To(Equal("a"))

		all, err := service.List(ctx, ticket.Filter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
	})

	It("unassigns on an explicit null and leaves the rest alone", func() {
		created, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "a", Description: "a", AssignedTo: strPtr("bob")})
		Expect(err).NotTo(HaveOccurred())

		updated, err := service.Update(ctx, created.ID, ticket.UpdateTicketDTO{AssignedTo: nullable.Null[string]()})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.AssignedTo).To(BeNil())
		Expect(updated.Title).To(Equal("a"))
		Expect(updated.Priority).To(Equal(ticket.PriorityMedium))
	})

	It("counts open tickets and reports the timeline", func() {
		a, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "a", Description: "a"})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(ctx, ticket.CreateTicketDTO{Title: "b", Description: "b", Status: ticket.StatusInProgress})
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(ctx, ticket.CreateTicketDTO{Title: "c", Description: "c", Status: ticket.StatusClosed})
		Expect(err).NotTo(HaveOccurred())

		_, err = service.Update(ctx, a.ID, ticket.UpdateTicketDTO{Status: strPtr(ticket.StatusResolved)})
		Expect(err).NotTo(HaveOccurred())

		open, err := service.CountOpen(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(open).To(Equal(int64(1)))

		created, resolved, err := service.Timeline(ctx, time.Now().Add(-time.Hour))
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(HaveLen(3))
		Expect(resolved).To(HaveLen(1))
	})

	It("returns 404 when deleting twice", func() {
		created, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "a", Description: "a"})
		Expect(err).NotTo(HaveOccurred())
		Expect(service.Delete(ctx, created.ID)).To(Succeed())
		err = service.Delete(ctx, created.ID)
		Expect(err).To(MatchError(ticket.ErrTicketNotFound))
	})

	Describe("when a referenced user row goes away", func() {
		It("unassigns tickets of a deleted assignee", func() {
			created, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "a", Description: "a", AssignedTo: strPtr("bob")})
			Expect(err).NotTo(HaveOccurred())

			Expect(db.Delete(&userDatamodel.User{ID: "bob"}).Error).To(Succeed())

			got, err := service.GetByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.AssignedTo).To(BeNil())
		})

		It("refuses to delete the creator of a ticket", func() {
			_, err := service.Create(ctx, ticket.CreateTicketDTO{Title: "a", Description: "a"})
			Expect(err).NotTo(HaveOccurred())

			err = db.Delete(&userDatamodel.User{ID: "alice"}).Error
			Expect(err).To(MatchError(gorm.ErrForeignKeyViolated))
		})
	})
})
