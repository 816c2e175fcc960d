package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/cristianbbs/kolder-backend/entity"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
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

func TestUpdateStatusGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	order := entity.Order{Status: entity.StatusSubmitted, UserID: 1, CompanyID: 1}
	require.NoError(t, db.Create(&order).Error)

	t.Run("matching from wins", func(t *testing.T) {
		affected, err := repo.UpdateStatusGuard(db, order.ID, entity.StatusSubmitted, entity.StatusPreparing)
		require.NoError(t, err)
		require.EqualValues(t, 1, affected)

		var reloaded entity.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		require.Equal(t, entity.StatusPreparing, reloaded.Status)
	})

	t.Run("stale from is a no-op", func(t *testing.T) {
		// The order is in PREPARING now; a guard still expecting SUBMITTED
		// models a caller whose read went stale.
		affected, err := repo.UpdateStatusGuard(db, order.ID, entity.StatusSubmitted, entity.StatusEnRoute)
		require.NoError(t, err)
		require.Zero(t, affected)

		var reloaded entity.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		require.Equal(t, entity.StatusPreparing, reloaded.Status, "a zero-row guard must leave the status alone")
	})

	t.Run("unknown order is a no-op", func(t *testing.T) {
		affected, err := repo.UpdateStatusGuard(db, 99999, entity.StatusSubmitted, entity.StatusPreparing)
		require.NoError(t, err)
		require.Zero(t, affected)
	})
}
