package postgres_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/parc-info/internal/core/database"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/user"
	userPostgres "github.com/frahmantamala/parc-info/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestUserPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Postgres Suite")
}

var _ = Describe("User Repository", func() {
	var (
		ctx  context.Context
		db   *gorm.DB
		repo user.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		repo = userPostgres.NewUserRepository(db)
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	newUser := func(email string, active bool) *userDatamodel.User {
		return &userDatamodel.User{Email: email, PasswordHash: "hash", Role: "utilisateur", IsActive: active}
	}

	It("assigns an id and timestamps on create", func() {
		u := newUser("a@parc.fr", true)
		Expect(repo.Create(ctx, u)).To(Succeed())
		Expect(u.ID).To(HaveLen(36))
		Expect(u.CreatedAt).NotTo(BeZero())
	})

	It("translates a duplicate email into ErrDuplicatedKey", func() {
		Expect(repo.Create(ctx, newUser("a@parc.fr", true))).To(Succeed())
		err := repo.Create(ctx, newUser("a@parc.fr", true))
		Expect(err).To(MatchError(gorm.ErrDuplicatedKey))
	})

	It("returns nil for unknown ids and emails", func() {
		u, err := repo.GetByID(ctx, "missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(BeNil())

		u, err = repo.GetByEmail(ctx, "missing@parc.fr")
		Expect(err).NotTo(HaveOccurred())
		Expect(u).To(BeNil())
	})

	It("stores an inactive flag and counts only active users", func() {
		Expect(repo.Create(ctx, newUser("a@parc.fr", true))).To(Succeed())
		Expect(repo.Create(ctx, newUser("b@parc.fr", false))).To(Succeed())

		n, err := repo.CountActive(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(1)))
	})

	It("updates and deletes", func() {
		u := newUser("a@parc.fr", true)
		Expect(repo.Create(ctx, u)).To(Succeed())

		u.Role = "admin"
		Expect(repo.Update(ctx, u)).To(Succeed())
		got, err := repo.GetByEmail(ctx, "a@parc.fr")
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Role).To(Equal("admin"))

		Expect(repo.Delete(ctx, u.ID)).To(Succeed())
		all, err := repo.GetAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(BeEmpty())
	})
})
