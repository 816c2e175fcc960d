package configs

import (
	"log"

	"github.com/cristianbbs/kolder-backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedSuperAdmin creates the platform super admin on first boot.
func SeedSuperAdmin() error {
	db := DB()
	email := getEnv("SUPER_ADMIN_EMAIL", "")
	pass := getEnv("SUPER_ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding super admin: missing SUPER_ADMIN_EMAIL/SUPER_ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("super admin already exists:", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Super Admin",
		Role:         entity.RoleSuperAdmin,
	}
	return db.Create(&admin).Error
}

// SeedLookups makes sure the single global-config row exists and, on an empty
// catalog, loads a small demo data set.
func SeedLookups() error {
	db := DB()

	var cfgCount int64
	db.Model(&entity.GlobalConfig{}).Count(&cfgCount)
	if cfgCount == 0 {
		fee := float64(5000)
		hours := "08:00-13:00"
		days := "Lun-Sab"
		if err := db.Create(&entity.GlobalConfig{
			EmergencyExtraCost: &fee,
			EmergencyHours:     &hours,
			EmergencyDays:      &days,
		}).Error; err != nil {
			return err
		}
	}

	var catCount int64
	db.Model(&entity.Category{}).Count(&catCount)
	if catCount > 0 {
		return nil
	}

	ice := entity.Category{Name: "Hielo"}
	acc := entity.Category{Name: "Accesorios"}
	if err := db.Create(&ice).Error; err != nil {
		return err
	}
	if err := db.Create(&acc).Error; err != nil {
		return err
	}

	products := []entity.Product{
		{Title: "Bolsa de Hielo 5 kg", Detail: "Hielo en cubos", CategoryID: ice.ID},
		{Title: "Hielo Molido 10 kg", Detail: "Hielo molido", CategoryID: ice.ID},
		{Title: "Cooler 20L", Detail: "Conserva por horas", CategoryID: acc.ID},
	}
	return db.Create(&products).Error
}

// SeedDemoData loads a demo company with admin/user accounts and a partial
// allow-list. Gated behind SEED_DEMO=1; never runs against a non-empty table.
func SeedDemoData() error {
	if getEnv("SEED_DEMO", "") != "1" {
		return nil
	}
	db := DB()

	var companyCount int64
	db.Model(&entity.Company{}).Count(&companyCount)
	if companyCount > 0 {
		return nil
	}

	company := entity.Company{
		Name:        "Distribuidora Demo",
		Rut:         "76.543.210-K",
		ContactName: "Ana Demo",
		Email:       "contacto@demo.cl",
	}
	if err := db.Create(&company).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := []entity.User{
		{Email: "admin@demo.cl", Name: "Admin Demo", Role: entity.RoleCompanyAdmin, CompanyID: &company.ID, PasswordHash: string(hash)},
		{Email: "user@demo.cl", Name: "Usuario Demo", Role: entity.RoleUser, CompanyID: &company.ID, PasswordHash: string(hash)},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Enable the ice products only; accessories stay off the allow-list so
	// the catalog filter is visible out of the box.
	var iceProducts []entity.Product
	if err := db.Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.name = ?", "Hielo").
		Find(&iceProducts).Error; err != nil {
		return err
	}
	for _, prod := range iceProducts {
		if err := db.Create(&entity.CompanyProduct{CompanyID: company.ID, ProductID: prod.ID}).Error; err != nil {
			return err
		}
	}
	log.Println("demo data seeded: company", company.ID)
	return nil
}
