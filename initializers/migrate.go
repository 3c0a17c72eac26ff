package initializers

import (
	"log"

	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"

	"girolimob/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.Product{},
		&models.ProductImage{},
		&models.Employee{},
		&models.ProjectShowcase{},
		&models.ProjectShowcaseImage{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
		&models.ProductClick{},
		&models.SiteVisit{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

// SeedAdmin creates the back-office account on first boot. Existing rows are
// left alone so a rotated ADMIN_PASSWORD does not overwrite a live one.
func SeedAdmin(config *Config) {
	if config.AdminEmail == "" || config.AdminPassword == "" {
		return
	}

	var count int64
	DB.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(config.AdminPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.Admin{
		ID:       uuid.NewV4(),
		Email:    config.AdminEmail,
		Password: string(hashed),
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	log.Printf("Seeded admin account %s", admin.Email)
}
