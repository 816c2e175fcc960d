package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database migrated with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "open test db")
	require.NoError(t, db.AutoMigrate(
		&entity.Company{}, &entity.User{},
		&entity.Category{}, &entity.Product{},
		&entity.CompanyProduct{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusLog{},
		&entity.GlobalConfig{},
	), "migrate test db")
	return db
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewConfigRepository(db),
	)
}

func newAllowListService(db *gorm.DB) *AllowListService {
	return NewAllowListService(
		db,
		repository.NewProductRepository(db),
		repository.NewCompanyProductRepository(db),
	)
}

func newCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewProductRepository(db),
		repository.NewCompanyProductRepository(db),
	)
}

// ----- fixtures -----

func seedCompany(t *testing.T, db *gorm.DB, name string) *entity.Company {
	t.Helper()
	c := entity.Company{Name: name}
	require.NoError(t, db.Create(&c).Error, "seed company")
	return &c
}

func seedProduct(t *testing.T, db *gorm.DB, title string, categoryID uint) *entity.Product {
	t.Helper()
	p := entity.Product{Title: title, CategoryID: categoryID}
	require.NoError(t, db.Create(&p).Error, "seed product")
	return &p
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	c := entity.Category{Name: name}
	require.NoError(t, db.Create(&c).Error, "seed category")
	return &c
}

func seedFee(t *testing.T, db *gorm.DB, fee float64) {
	t.Helper()
	require.NoError(t, db.Create(&entity.GlobalConfig{EmergencyExtraCost: &fee}).Error, "seed config")
}

func userPrincipal(id, companyID uint) entity.Principal {
	return entity.Principal{ID: id, CompanyID: &companyID, Role: entity.RoleUser}
}

func adminPrincipal(id, companyID uint) entity.Principal {
	return entity.Principal{ID: id, CompanyID: &companyID, Role: entity.RoleCompanyAdmin}
}

func superPrincipal(id uint) entity.Principal {
	return entity.Principal{ID: id, Role: entity.RoleSuperAdmin}
}
