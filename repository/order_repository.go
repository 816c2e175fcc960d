package repository

import (
	"github.com/cristianbbs/kolder-backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderTx reads the order inside the caller's transaction so status checks
// and the subsequent guarded update share one isolation boundary.
func (r *OrderRepository) GetOrderTx(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders newest-first under the caller's visibility scope:
// both filters nil = all orders, companyID only = whole company, both set =
// a single user's orders.
func (r *OrderRepository) List(companyID, userID *uint) ([]entity.Order, error) {
	q := r.DB.Model(&entity.Order{}).Preload("Items")
	if companyID != nil {
		q = q.Where("company_id = ?", *companyID)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var out []entity.Order
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

// AdminList is the paginated back-office listing with optional filters.
// Callers pass normalized page/limit; services.OrderService.AdminList owns
// the defaults.
func (r *OrderRepository) AdminList(companyID *uint, status *entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	offset := (page - 1) * limit

	q := r.DB.Model(&entity.Order{})
	if companyID != nil {
		q = q.Where("company_id = ?", *companyID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := q.Preload("Items").
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&out).Error
	return out, total, err
}

// UpdateStatusGuard moves the order from -> to only if it is still in `from`,
// so a concurrent transition that won the race makes this one a no-op.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

// ---------------- Status log (append-only) ----------------

func (r *OrderRepository) CreateStatusLog(tx *gorm.DB, l *entity.OrderStatusLog) error {
	return tx.Create(l).Error
}

// GetStatusLogs returns the full timeline in chronological order.
func (r *OrderRepository) GetStatusLogs(orderID uint) ([]entity.OrderStatusLog, error) {
	var logs []entity.OrderStatusLog
	err := r.DB.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&logs).Error
	return logs, err
}
