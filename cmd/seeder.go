package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/parc-info/internal/core/database"
	employeeDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/employee"
	equipmentDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/equipment"
	licenseDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/license"
	userDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/user"
	"github.com/frahmantamala/parc-info/internal/equipment"
	"github.com/frahmantamala/parc-info/internal/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample accounts, employees, equipment and licenses for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := database.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer database.Close(db)

		if cfg.Database.Driver == database.DriverSQLite {
			if err := database.AutoMigrate(db); err != nil {
				log.Fatalf("failed to migrate sqlite db: %v", err)
			}
		}

		if clearData {
			if err := clearTables(db); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		if err := seed(db, cfg.Security.BCryptCost); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
		fmt.Println("Sample data seeded successfully")
	},
}

// clearTables empties every table, children first.
func clearTables(db *gorm.DB) error {
	models := database.Models()
	return db.Transaction(func(tx *gorm.DB) error {
		for i := len(models) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
				return fmt.Errorf("clear %T: %w", models[i], err)
			}
		}
		return nil
	})
}

func strPtr(s string) *string { return &s }

func seed(db *gorm.DB, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	accounts := []userDatamodel.User{
		{Email: "admin@parc.local", FirstName: strPtr("Claire"), LastName: strPtr("Martin"), Role: string(user.RoleAdmin)},
		{Email: "tech@parc.local", FirstName: strPtr("Hugo"), LastName: strPtr("Bernard"), Role: string(user.RoleTechnician)},
		{Email: "user@parc.local", FirstName: strPtr("Léa"), LastName: strPtr("Petit"), Role: string(user.RoleUser)},
	}
	for i := range accounts {
		accounts[i].PasswordHash = string(hash)
		accounts[i].IsActive = true
		if err := firstOrCreate(db, &accounts[i], "email = ?", accounts[i].Email); err != nil {
			return err
		}
		fmt.Println("Seeded user:", accounts[i].Email)
	}

	employees := []employeeDatamodel.Employee{
		{Name: "Julien Moreau", Email: "julien.moreau@parc.local", Department: "Comptabilité", Position: "Comptable"},
		{Name: "Sophie Laurent", Email: "sophie.laurent@parc.local", Department: "Ressources humaines", Position: "Chargée RH"},
		{Name: "Thomas Girard", Email: "thomas.girard@parc.local", Department: "Informatique", Position: "Développeur"},
	}
	for i := range employees {
		if err := firstOrCreate(db, &employees[i], "email = ?", employees[i].Email); err != nil {
			return err
		}
	}
	fmt.Printf("Seeded %d employees\n", len(employees))

	purchased := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	devices := []equipmentDatamodel.Equipment{
		{Type: equipment.TypeComputer, Model: "Dell Latitude 5440", SerialNumber: "DL5440-0001", PurchaseDate: purchased, Status: equipment.StatusInService, AssignedTo: &employees[0].ID},
		{Type: equipment.TypeComputer, Model: "Lenovo ThinkPad T14", SerialNumber: "TP14-0002", PurchaseDate: purchased, Status: equipment.StatusInService, AssignedTo: &employees[2].ID},
		{Type: equipment.TypeServer, Model: "HPE ProLiant DL380", SerialNumber: "HPE380-0003", PurchaseDate: purchased.AddDate(-1, 0, 0), Status: equipment.StatusMaintenance},
		{Type: equipment.TypePeripheral, Model: "Brother HL-L2350", SerialNumber: "BRHL-0004", PurchaseDate: purchased, Status: equipment.StatusRetired},
	}
	for i := range devices {
		if err := firstOrCreate(db, &devices[i], "serial_number = ?", devices[i].SerialNumber); err != nil {
			return err
		}
	}
	fmt.Printf("Seeded %d equipment\n", len(devices))

	seats := func(n int) *int { return &n }
	cents := func(n int64) *int64 { return &n }
	licenses := []licenseDatamodel.License{
		{Name: "Microsoft 365 Business", Vendor: "Microsoft", Type: "abonnement", MaxUsers: seats(25), CurrentUsers: 18, Cost: cents(26400)},
		{Name: "Adobe Acrobat Pro", Vendor: "Adobe", Type: "abonnement", MaxUsers: seats(5), CurrentUsers: 5, Cost: cents(23988)},
	}
	for i := range licenses {
		if err := firstOrCreate(db, &licenses[i], "name = ?", licenses[i].Name); err != nil {
			return err
		}
	}
	fmt.Printf("Seeded %d licenses\n", len(licenses))

	return nil
}

// firstOrCreate inserts row unless a record matching the condition exists, in
// which case row is loaded from it.
func firstOrCreate(db *gorm.DB, row interface{}, query string, args ...interface{}) error {
	if err := db.Where(query, args...).FirstOrCreate(row).Error; err != nil {
		return fmt.Errorf("seed %T: %w", row, err)
	}
	return nil
}
