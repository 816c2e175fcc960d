package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/repository"
	"github.com/cristianbbs/kolder-backend/services"
	"github.com/cristianbbs/kolder-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:ctrl%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

// newOrderRouter registers the order routes behind a stub that injects the
// principal directly, so requests skip JWT handling.
func newOrderRouter(db *gorm.DB, p entity.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewConfigRepository(db),
	)
	ctrl := NewOrderController(svc)

	r := gin.New()
	orders := r.Group("/orders", func(c *gin.Context) { utils.SetPrincipal(c, p) })
	{
		orders.GET("", ctrl.List)
		orders.POST("", ctrl.Create)
		orders.GET("/:id", ctrl.Detail)
		orders.POST("/:id/repeat", ctrl.Repeat)
		orders.PUT("/:id/status", ctrl.ChangeStatus)
	}
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed), "%s %s: body %q", method, path, w.Body.String())
	return w, parsed
}

func seedCatalog(t *testing.T, db *gorm.DB) (companyID, productID uint) {
	t.Helper()
	company := entity.Company{Name: "C1"}
	require.NoError(t, db.Create(&company).Error)
	cat := entity.Category{Name: "Hielo"}
	require.NoError(t, db.Create(&cat).Error)
	prod := entity.Product{Title: "Bolsa 5kg", CategoryID: cat.ID}
	require.NoError(t, db.Create(&prod).Error)
	return company.ID, prod.ID
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	db := newTestDB(t)
	companyID, productID := seedCatalog(t, db)

	user := newOrderRouter(db, entity.Principal{ID: 1, CompanyID: &companyID, Role: entity.RoleUser})
	admin := newOrderRouter(db, entity.Principal{ID: 2, CompanyID: &companyID, Role: entity.RoleCompanyAdmin})

	// Create as a plain user.
	w, body := do(t, user, "POST", "/orders", gin.H{
		"items": []gin.H{{"productId": productID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", body)
	require.Equal(t, true, body["ok"])
	require.Equal(t, "SUBMITTED", body["status"])
	orderID := int(body["id"].(float64))

	// Jumping straight to DELIVERED is rejected with 409.
	w, body = do(t, admin, "PUT", fmt.Sprintf("/orders/%d/status", orderID), gin.H{"status": "DELIVERED"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "INVALID_TRANSITION", body["code"])

	// The legal next step succeeds.
	w, body = do(t, admin, "PUT", fmt.Sprintf("/orders/%d/status", orderID), gin.H{"status": "PREPARING"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["ok"])
	order := body["order"].(map[string]any)
	require.Equal(t, "PREPARING", order["status"])
}

func TestOrderCreateValidationOverHTTP(t *testing.T) {
	db := newTestDB(t)
	companyID, _ := seedCatalog(t, db)
	user := newOrderRouter(db, entity.Principal{ID: 1, CompanyID: &companyID, Role: entity.RoleUser})

	// Empty items array fails binding.
	w, body := do(t, user, "POST", "/orders", gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "BAD_BODY", body["code"])

	// Zero quantity fails binding.
	w, body = do(t, user, "POST", "/orders", gin.H{
		"items": []gin.H{{"productId": 1, "quantity": 0}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "BAD_BODY", body["code"])

	// Unknown product is a domain error carrying the offending ids.
	w, body = do(t, user, "POST", "/orders", gin.H{
		"items": []gin.H{{"productId": 9999, "quantity": 1}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "PRODUCT_NOT_FOUND", body["code"])
	issues, ok := body["issues"].([]any)
	require.True(t, ok, "issues: %v", body["issues"])
	require.Len(t, issues, 1)
}

func TestOrderBadIDOverHTTP(t *testing.T) {
	db := newTestDB(t)
	companyID, _ := seedCatalog(t, db)
	user := newOrderRouter(db, entity.Principal{ID: 1, CompanyID: &companyID, Role: entity.RoleUser})

	for _, path := range []string{"/orders/abc", "/orders/0", "/orders/-3"} {
		w, body := do(t, user, "GET", path, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
		require.Equal(t, "BAD_ID", body["code"], path)
	}
}

func TestExistenceHidingOverHTTP(t *testing.T) {
	db := newTestDB(t)
	c1, productID := seedCatalog(t, db)
	c2 := entity.Company{Name: "C2"}
	require.NoError(t, db.Create(&c2).Error)

	owner := newOrderRouter(db, entity.Principal{ID: 1, CompanyID: &c1, Role: entity.RoleUser})
	foreign := newOrderRouter(db, entity.Principal{ID: 2, CompanyID: &c2.ID, Role: entity.RoleCompanyAdmin})

	w, body := do(t, owner, "POST", "/orders", gin.H{
		"items": []gin.H{{"productId": productID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", body)
	orderID := int(body["id"].(float64))

	wScoped, _ := do(t, foreign, "GET", fmt.Sprintf("/orders/%d", orderID), nil)
	wMissing, _ := do(t, foreign, "GET", "/orders/99999", nil)

	require.Equal(t, http.StatusNotFound, wScoped.Code)
	// Byte-identical responses: nothing distinguishes hidden from missing.
	require.Equal(t, wMissing.Body.String(), wScoped.Body.String())
}

func TestRepeatOverHTTP(t *testing.T) {
	db := newTestDB(t)
	companyID, productID := seedCatalog(t, db)
	user := newOrderRouter(db, entity.Principal{ID: 1, CompanyID: &companyID, Role: entity.RoleUser})

	w, body := do(t, user, "POST", "/orders", gin.H{
		"items":     []gin.H{{"productId": productID, "quantity": 2}},
		"emergency": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %v", body)
	orderID := int(body["id"].(float64))

	w, body = do(t, user, "POST", fmt.Sprintf("/orders/%d/repeat", orderID), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "SUBMITTED", body["status"])
	require.NotEqual(t, orderID, int(body["id"].(float64)), "repeat must return a fresh order id")
	items := body["items"].([]any)
	require.Len(t, items, 1)
}
