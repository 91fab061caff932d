package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/frahmantamala/parc-info/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestDatabase(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Database Suite")
}

var _ = Describe("TxManager", func() {
	var (
		db  *gorm.DB
		txm *database.TxManager
		ctx context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		txm = database.NewTxManager(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	insert := func(ctx context.Context, email string) error {
		return database.Conn(ctx, db).Create(&employeeDatamodel.Employee{
			Name: "Alice", Email: email, Department: "IT", Position: "Dev",
		}).Error
	}

	count := func() int64 {
		var n int64
		Expect(db.Model(&employeeDatamodel.Employee{}).Count(&n).Error).To(Succeed())
		return n
	}

	It("commits every write when fn succeeds", func() {
		err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
			if err := insert(ctx, "a@example.com"); err != nil {
				return err
			}
			return insert(ctx, "b@example.com")
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(count()).To(Equal(int64(2)))
	})

	It("rolls back earlier writes when a later step fails", func() {
		boom := errors.New("boom")
		err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
			Expect(insert(ctx, "a@example.com")).To(Succeed())
			return boom
		})
		Expect(err).To(MatchError(boom))
		Expect(count()).To(BeZero())
	})

	It("rolls back and re-panics on panic", func() {
		Expect(func() {
			_ = txm.RunInTransaction(ctx, func(ctx context.Context) error {
				Expect(insert(ctx, "a@example.com")).To(Succeed())
				panic("kaboom")
			})
		}).To(PanicWith("kaboom"))
		Expect(count()).To(BeZero())
	})

	It("reports unique violations as duplicated keys", func() {
		Expect(insert(ctx, "dup@example.com")).To(Succeed())
		err := insert(ctx, "dup@example.com")
		Expect(errors.Is(err, gorm.ErrDuplicatedKey)).To(BeTrue())
	})
})
