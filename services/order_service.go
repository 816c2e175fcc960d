package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/repository"

	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	ConfigRepo  *repository.ConfigRepository
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	configRepo *repository.ConfigRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, ProductRepo: productRepo, ConfigRepo: configRepo}
}

// ----- DTOs from controllers -----

type OrderItemIn struct {
	ProductID uint `json:"productId" binding:"required,min=1"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=999"`
}

type CreateOrderReq struct {
	Items     []OrderItemIn `json:"items" binding:"required,min=1,dive"`
	Note      string        `json:"note" binding:"omitempty,max=500"`
	Emergency bool          `json:"emergency"`
}

type OrderItemOut struct {
	ProductID    uint   `json:"productId"`
	Quantity     int    `json:"quantity"`
	ProductTitle string `json:"productTitle"`
}

type OrderOut struct {
	ID        uint               `json:"id"`
	Status    entity.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	Emergency bool               `json:"emergency"`
	ExtraCost *float64           `json:"extraCost"`
	Note      *string            `json:"note,omitempty"`
	CompanyID uint               `json:"companyId"`
	UserID    uint               `json:"userId"`
	Items     []OrderItemOut     `json:"items"`
}

type StatusLogOut struct {
	ID        uint                `json:"id"`
	From      *entity.OrderStatus `json:"from"`
	To        entity.OrderStatus  `json:"to"`
	ChangedBy uint                `json:"changedBy"`
	Note      *string             `json:"note,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
}

// OrderDetail is an order plus its complete audit timeline.
type OrderDetail struct {
	OrderOut
	StatusLogs []StatusLogOut `json:"statusLogs"`
}

func toOrderOut(o *entity.Order) OrderOut {
	items := make([]OrderItemOut, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOut{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			ProductTitle: it.ProductTitle,
		})
	}
	return OrderOut{
		ID:        o.ID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Emergency: o.Emergency,
		ExtraCost: o.ExtraCost,
		Note:      o.Note,
		CompanyID: o.CompanyID,
		UserID:    o.UserID,
		Items:     items,
	}
}

func toLogOuts(logs []entity.OrderStatusLog) []StatusLogOut {
	out := make([]StatusLogOut, 0, len(logs))
	for _, l := range logs {
		out = append(out, StatusLogOut{
			ID:        l.ID,
			From:      l.From,
			To:        l.To,
			ChangedBy: l.ChangedBy,
			Note:      l.Note,
			CreatedAt: l.CreatedAt,
		})
	}
	return out
}

// ----- List -----

func (s *OrderService) List(p entity.Principal) ([]OrderOut, error) {
	scope, err := ListScopeFor(p)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.List(scope.CompanyID, scope.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]OrderOut, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderOut(&orders[i]))
	}
	return out, nil
}

// ----- Create -----

// Create builds a new order transactionally: order row, item rows with title
// snapshots, and the initial SUBMITTED log entry are all-or-nothing.
func (s *OrderService) Create(p entity.Principal, req *CreateOrderReq) (*OrderOut, error) {
	if !p.HasCompany() {
		return nil, apperr.NoCompany()
	}
	if len(req.Items) == 0 {
		return nil, apperr.BadBody("items is required")
	}
	for _, it := range req.Items {
		if it.ProductID == 0 || it.Quantity < 1 || it.Quantity > 999 {
			return nil, apperr.BadBody("invalid item")
		}
	}
	if len(req.Note) > 500 {
		return nil, apperr.BadBody("note too long")
	}

	titleByID, err := s.resolveProductTitles(req.Items)
	if err != nil {
		return nil, err
	}

	// Snapshot the emergency surcharge now; later config edits must not
	// retroactively change this order. A missing config row means fee 0.
	var extraCost *float64
	if req.Emergency {
		fee := float64(0)
		cfg, err := s.ConfigRepo.Get()
		if err != nil {
			return nil, err
		}
		if cfg != nil && cfg.EmergencyExtraCost != nil {
			fee = *cfg.EmergencyExtraCost
		}
		extraCost = &fee
	}

	var note *string
	if trimmed := strings.TrimSpace(req.Note); trimmed != "" {
		note = &trimmed
	}

	var out OrderOut
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Status:    entity.StatusSubmitted,
			Emergency: req.Emergency,
			ExtraCost: extraCost,
			Note:      note,
			UserID:    p.ID,
			CompanyID: *p.CompanyID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, it := range req.Items {
			oi := entity.OrderItem{
				OrderID:      order.ID,
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				ProductTitle: titleByID[it.ProductID],
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		if err := s.Repo.CreateStatusLog(tx, &entity.OrderStatusLog{
			OrderID:   order.ID,
			From:      nil,
			To:        entity.StatusSubmitted,
			ChangedBy: p.ID,
		}); err != nil {
			return err
		}

		out = toOrderOut(&order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) resolveProductTitles(items []OrderItemIn) (map[uint]string, error) {
	seen := make(map[uint]bool, len(items))
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	products, err := s.ProductRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	titleByID := make(map[uint]string, len(products))
	for _, prod := range products {
		titleByID[prod.ID] = prod.Title
	}
	if len(titleByID) != len(ids) {
		var invalid []uint
		for _, id := range ids {
			if _, ok := titleByID[id]; !ok {
				invalid = append(invalid, id)
			}
		}
		return nil, apperr.ProductNotFound(invalid)
	}
	return titleByID, nil
}

// ----- Repeat -----

// Repeat clones a prior order of the same user into a fresh SUBMITTED one.
// Emergency flag and fee snapshot are never carried over; the user re-flags
// if the new request is urgent.
func (s *OrderService) Repeat(p entity.Principal, baseOrderID uint) (*OrderOut, error) {
	if !p.HasCompany() {
		return nil, apperr.NoCompany()
	}

	base, err := s.Repo.GetOrder(baseOrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, err
	}
	if base.UserID != p.ID {
		// not the requester's order: hide its existence
		return nil, apperr.NotFound("order")
	}

	baseItems, err := s.Repo.GetOrderItems(base.ID)
	if err != nil {
		return nil, err
	}
	if len(baseItems) == 0 {
		return nil, apperr.BaseEmpty()
	}

	var out OrderOut
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			Status:    entity.StatusSubmitted,
			Emergency: false,
			ExtraCost: nil,
			Note:      base.Note,
			UserID:    p.ID,
			CompanyID: *p.CompanyID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		for _, it := range baseItems {
			oi := entity.OrderItem{
				OrderID:      order.ID,
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				ProductTitle: it.ProductTitle, // keep the original snapshot
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		if err := s.Repo.CreateStatusLog(tx, &entity.OrderStatusLog{
			OrderID:   order.ID,
			To:        entity.StatusSubmitted,
			ChangedBy: p.ID,
		}); err != nil {
			return err
		}

		out = toOrderOut(&order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ----- Detail -----

func (s *OrderService) Detail(p entity.Principal, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrder(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order")
	}
	if err != nil {
		return nil, err
	}
	if !CanViewOrder(p, o) {
		// same body and status as a genuinely missing order
		return nil, apperr.NotFound("order")
	}

	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	logs, err := s.Repo.GetStatusLogs(o.ID)
	if err != nil {
		return nil, err
	}

	return &OrderDetail{OrderOut: toOrderOut(o), StatusLogs: toLogOuts(logs)}, nil
}

// ----- Status transition -----

const defaultCancelReason = "Cancelled by admin"

// ChangeStatus applies one legal transition with full audit. The status is
// re-read and guarded inside the transaction, so two concurrent requests can
// never both move the order out of the same state.
func (s *OrderService) ChangeStatus(p entity.Principal, orderID uint, to entity.OrderStatus, reason string) (*OrderDetail, error) {
	if !p.Role.IsOrderAdmin() {
		return nil, apperr.Forbidden()
	}
	if !to.Valid() {
		return nil, apperr.BadBody("unknown status")
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderTx(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order")
		}
		if err != nil {
			return err
		}
		if err := CheckMutateOrder(p, o); err != nil {
			return err
		}

		if IsFinalStatus(o.Status) {
			return apperr.OrderFinalState(string(o.Status))
		}
		if !CanTransition(o.Status, to) {
			return apperr.InvalidTransition(string(o.Status), string(to))
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			// lost the race against a concurrent transition
			return apperr.InvalidTransition(string(o.Status), string(to))
		}

		logEntry := entity.OrderStatusLog{
			OrderID:   o.ID,
			From:      &o.Status,
			To:        to,
			ChangedBy: p.ID,
		}
		if note := cancelNote(to, reason); note != nil {
			logEntry.Note = note
		}
		return s.Repo.CreateStatusLog(tx, &logEntry)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ORDERS] status change order=%d to=%s by=%d", orderID, to, p.ID)
	return s.Detail(p, orderID)
}

// cancelNote keeps caller-supplied reasons on any transition and defaults one
// for cancellations so the audit row never lacks context.
func cancelNote(to entity.OrderStatus, reason string) *string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		if to != entity.StatusCancelled {
			return nil
		}
		reason = defaultCancelReason
	}
	return &reason
}

// ----- Back-office listing -----

type AdminOrderList struct {
	Items []OrderOut `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"pageSize"`
}

func (s *OrderService) AdminList(companyID *uint, status *entity.OrderStatus, page, limit int) (*AdminOrderList, error) {
	// Normalized once here; the repository and the echoed page/pageSize
	// always agree.
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	orders, total, err := s.Repo.AdminList(companyID, status, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]OrderOut, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderOut(&orders[i]))
	}
	return &AdminOrderList{Items: items, Total: total, Page: page, Limit: limit}, nil
}
