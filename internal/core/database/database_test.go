package database_test

import (
	"time"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/core/database"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Open", func() {
	It("enforces foreign keys on sqlite", func() {
		db, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(database.Close, db)

		err = db.Create(&equipmentDatamodel.Equipment{
			Type: "Portable", Model: "Latitude", SerialNumber: "SN-1",
			PurchaseDate: time.Now().UTC(), Status: "en service", AssignedTo: strPtr("ghost"),
		}).Error
		Expect(err).To(MatchError(gorm.ErrForeignKeyViolated))
	})

	It("keeps an explicit foreign key setting in the source", func() {
		db, err := database.Open(internal.DatabaseConfig{Driver: database.DriverSQLite, Source: ":memory:?_foreign_keys=off", MaxOpenConns: 1})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(database.Close, db)

		var on int
		Expect(db.Raw("PRAGMA foreign_keys").Scan(&on).Error).To(Succeed())
		Expect(on).To(Equal(0))
	})

	It("rejects unknown drivers", func() {
		_, err := database.Open(internal.DatabaseConfig{Driver: "oracle"})
		Expect(err).To(MatchError(ContainSubstring("unsupported")))
	})
})

func strPtr(s string) *string { return &s }
